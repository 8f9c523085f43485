package router

import (
	"net/http"

	mem "pet-vaccination-api/internal/adapters/storage/memory"
	"pet-vaccination-api/internal/domain/pets"
	"pet-vaccination-api/internal/domain/vaccines"
	"pet-vaccination-api/internal/middleware"
	"pet-vaccination-api/internal/platform/response"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Options struct {
	Logger *zap.Logger

	// Repos inyectados (DynamoDB en deploy real). Si vienen nil se usan
	// los in-memory, que es lo que queremos en dev local y en tests.
	PetsRepo     pets.Repository
	VaccinesRepo vaccines.Repository
}

func NewRouter(opts Options) *chi.Mux {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	petRepo := opts.PetsRepo
	if petRepo == nil {
		petRepo = mem.NewPetRepo()
	}
	vaccineRepo := opts.VaccinesRepo
	if vaccineRepo == nil {
		vaccineRepo = mem.NewVaccineRepo()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))
	// Preflight de CORS para cualquier ruta: el gateway real lo resuelve
	// solo, pero en dev local lo atendemos nosotros. Va como middleware
	// para cubrir también las rutas de los subrouters.
	r.Use(middleware.Preflight)

	// Fallbacks con envelope para que hasta el 404 de ruta lleve los
	// headers fijos.
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "Resource")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Services por módulo
	petsSvc := pets.NewService(petRepo)
	vaccinesSvc := vaccines.NewService(vaccineRepo)

	// Rutas por módulo
	pets.RegisterRoutes(r, petsSvc, log)
	vaccines.RegisterRoutes(r, vaccinesSvc, petsSvc, log)

	return r
}
