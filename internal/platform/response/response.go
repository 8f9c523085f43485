package response

import (
	"encoding/json"
	"net/http"
)

// Envelope es el formato uniforme de todas las respuestas del API:
// {"success": true, "data": ...} o {"success": false, "error": "..."}.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Headers fijos en TODA respuesta (éxito y error por igual).
// El frontend consume el API desde otros orígenes, así que CORS va siempre.
func setHeaders(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
}

func write(w http.ResponseWriter, status int, env Envelope) {
	setHeaders(w)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// Success escribe {"success": true, "data": data} con el status dado.
func Success(w http.ResponseWriter, status int, data any) {
	write(w, status, Envelope{Success: true, Data: data})
}

// OK es Success con 200.
func OK(w http.ResponseWriter, data any) {
	Success(w, http.StatusOK, data)
}

// Error escribe {"success": false, "error": msg}. Para fallas internas
// el mensaje es genérico; el detalle real va al log, nunca al cliente.
func Error(w http.ResponseWriter, status int, msg string) {
	write(w, status, Envelope{Success: false, Error: msg})
}

// InternalError es Error con 500.
func InternalError(w http.ResponseWriter, msg string) {
	Error(w, http.StatusInternalServerError, msg)
}

// NotFound escribe "<resource> not found" con 404.
func NotFound(w http.ResponseWriter, resource string) {
	if resource == "" {
		resource = "Resource"
	}
	Error(w, http.StatusNotFound, resource+" not found")
}

// ValidationError escribe "Validation error: <msg>" con 400.
func ValidationError(w http.ResponseWriter, msg string) {
	Error(w, http.StatusBadRequest, "Validation error: "+msg)
}

// Preflight responde un OPTIONS de CORS: solo headers, sin body.
func Preflight(w http.ResponseWriter) {
	setHeaders(w)
	w.WriteHeader(http.StatusOK)
}
