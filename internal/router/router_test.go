package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-vaccination-api/internal/router"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_PetLifecycle(t *testing.T) {
	ts := newTestServer(t)

	// 1) Crear
	petID := createPet(t, ts.URL, map[string]any{
		"name":       "Rex",
		"species":    "dog",
		"breed":      "mixed",
		"age":        3,
		"weight":     20,
		"ownerId":    "o1",
		"ownerName":  "Ana",
		"ownerEmail": "a@x.com",
	})

	// 2) Get by id devuelve lo creado
	{
		st, env := doReq(t, ts.URL, "GET", "/pets/"+petID, nil)
		if st != http.StatusOK || !env.Success {
			t.Fatalf("get pet: status %d env %+v", st, env)
		}
		var pet map[string]any
		mustUnmarshal(t, env.Data, &pet)
		if pet["name"] != "Rex" || pet["species"] != "dog" || pet["ownerId"] != "o1" {
			t.Fatalf("unexpected pet: %v", pet)
		}
		if pet["createdAt"] != pet["updatedAt"] {
			t.Fatalf("createdAt != updatedAt on fresh pet: %v", pet)
		}
	}

	// 3) Get all lo incluye
	{
		st, env := doReq(t, ts.URL, "GET", "/pets", nil)
		if st != http.StatusOK {
			t.Fatalf("list pets: status %d", st)
		}
		var items []map[string]any
		mustUnmarshal(t, env.Data, &items)
		if len(items) != 1 || items[0]["id"] != petID {
			t.Fatalf("unexpected list: %v", items)
		}
	}

	// 4) Update parcial: solo weight; el resto se conserva
	{
		st, env := doReq(t, ts.URL, "PUT", "/pets/"+petID, map[string]any{
			"weight": 22.5,
		})
		if st != http.StatusOK {
			t.Fatalf("update pet: status %d env %+v", st, env)
		}
		var pet map[string]any
		mustUnmarshal(t, env.Data, &pet)
		if pet["weight"] != 22.5 || pet["name"] != "Rex" || pet["breed"] != "mixed" {
			t.Fatalf("partial update broke merge: %v", pet)
		}
		if pet["id"] != petID {
			t.Fatalf("update changed id: %v", pet["id"])
		}
	}

	// 5) Get by owner
	{
		st, env := doReq(t, ts.URL, "GET", "/pets/owner/o1", nil)
		if st != http.StatusOK {
			t.Fatalf("get by owner: status %d", st)
		}
		var items []map[string]any
		mustUnmarshal(t, env.Data, &items)
		if len(items) != 1 {
			t.Fatalf("expected 1 pet for o1, got %d", len(items))
		}
	}
	{
		st, env := doReq(t, ts.URL, "GET", "/pets/owner/o9", nil)
		if st != http.StatusOK {
			t.Fatalf("get by unknown owner: status %d", st)
		}
		var items []map[string]any
		mustUnmarshal(t, env.Data, &items)
		if len(items) != 0 {
			t.Fatalf("expected empty list for o9, got %v", items)
		}
	}

	// 6) Delete y luego 404
	{
		st, env := doReq(t, ts.URL, "DELETE", "/pets/"+petID, nil)
		if st != http.StatusOK || !env.Success {
			t.Fatalf("delete pet: status %d env %+v", st, env)
		}
		var msg map[string]string
		mustUnmarshal(t, env.Data, &msg)
		if msg["message"] != "Pet deleted successfully" {
			t.Fatalf("unexpected delete message: %v", msg)
		}
	}
	{
		st, env := doReq(t, ts.URL, "GET", "/pets/"+petID, nil)
		if st != http.StatusNotFound || env.Error != "Pet not found" {
			t.Fatalf("expected 404 after delete, got %d %+v", st, env)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/pets/"+petID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 deleting twice, got %d", st)
		}
	}
}

func TestHTTP_PetValidation(t *testing.T) {
	ts := newTestServer(t)

	// Sin body
	{
		st, env := doReq(t, ts.URL, "POST", "/pets", nil)
		if st != http.StatusBadRequest || env.Error != "Validation error: Request body is required" {
			t.Fatalf("missing body: %d %+v", st, env)
		}
	}

	// Campos requeridos ausentes
	{
		st, env := doReq(t, ts.URL, "POST", "/pets", map[string]any{"name": "Rex"})
		if st != http.StatusBadRequest || env.Error != "Validation error: Name, species, ownerId and ownerName are required" {
			t.Fatalf("missing fields: %d %+v", st, env)
		}
	}

	// age < 0 y weight <= 0 cortan antes de escribir
	for _, payload := range []map[string]any{
		{"name": "Rex", "species": "dog", "ownerId": "o1", "ownerName": "Ana", "age": -1, "weight": 20},
		{"name": "Rex", "species": "dog", "ownerId": "o1", "ownerName": "Ana", "age": 3, "weight": 0},
	} {
		st, env := doReq(t, ts.URL, "POST", "/pets", payload)
		if st != http.StatusBadRequest {
			t.Fatalf("invalid numbers accepted: %d %+v payload %v", st, env, payload)
		}
	}
	{
		st, env := doReq(t, ts.URL, "GET", "/pets", nil)
		if st != http.StatusOK {
			t.Fatalf("list: %d", st)
		}
		var items []map[string]any
		mustUnmarshal(t, env.Data, &items)
		if len(items) != 0 {
			t.Fatalf("validation failures wrote records: %v", items)
		}
	}

	// Update con age negativa
	{
		st, env := doReq(t, ts.URL, "PUT", "/pets/some-id", map[string]any{"age": -2})
		if st != http.StatusBadRequest || env.Error != "Validation error: Age must be positive" {
			t.Fatalf("negative age on update: %d %+v", st, env)
		}
	}

	// Update sobre id inexistente (payload válido) => 404
	{
		st, _ := doReq(t, ts.URL, "PUT", "/pets/some-id", map[string]any{"name": "Ghost"})
		if st != http.StatusNotFound {
			t.Fatalf("update missing pet: %d", st)
		}
	}
}

func TestHTTP_VaccineFlow(t *testing.T) {
	ts := newTestServer(t)

	petID := createPet(t, ts.URL, map[string]any{
		"name":       "Rex",
		"species":    "dog",
		"age":        3,
		"weight":     20,
		"ownerId":    "o1",
		"ownerName":  "Ana",
		"ownerEmail": "a@x.com",
	})

	// Mascota inexistente referenciada en create => 400, no 404
	{
		st, env := doReq(t, ts.URL, "POST", "/vaccines", map[string]any{
			"petId":           "missing-pet",
			"vaccineName":     "Rabies shot",
			"applicationDate": "2024-01-01",
			"expirationDate":  "2025-01-01",
		})
		if st != http.StatusBadRequest || env.Error != "Validation error: Pet not found" {
			t.Fatalf("create with missing pet: %d %+v", st, env)
		}
	}

	// Fechas inválidas
	{
		st, env := doReq(t, ts.URL, "POST", "/vaccines", map[string]any{
			"petId":           petID,
			"vaccineName":     "Rabies shot",
			"applicationDate": "not-a-date",
		})
		if st != http.StatusBadRequest || env.Error != "Validation error: Invalid application date" {
			t.Fatalf("bad application date: %d %+v", st, env)
		}
	}
	{
		st, env := doReq(t, ts.URL, "POST", "/vaccines", map[string]any{
			"petId":           petID,
			"vaccineName":     "Rabies shot",
			"applicationDate": "2024-01-01",
		})
		if st != http.StatusBadRequest || env.Error != "Validation error: Invalid expiration date" {
			t.Fatalf("missing expiration date: %d %+v", st, env)
		}
	}

	// Vencimiento no posterior a aplicación
	{
		st, env := doReq(t, ts.URL, "POST", "/vaccines", map[string]any{
			"petId":           petID,
			"vaccineName":     "Rabies shot",
			"applicationDate": "2024-01-01",
			"expirationDate":  "2024-01-01",
		})
		if st != http.StatusBadRequest || env.Error != "Validation error: Expiration date must be after application date" {
			t.Fatalf("equal dates accepted: %d %+v", st, env)
		}
	}

	// Pet existente pero sin vacunas: 200 con lista vacía
	{
		st, env := doReq(t, ts.URL, "GET", "/vaccines/pet/"+petID, nil)
		if st != http.StatusOK {
			t.Fatalf("list vaccines of fresh pet: %d", st)
		}
		var items []map[string]any
		mustUnmarshal(t, env.Data, &items)
		if len(items) != 0 {
			t.Fatalf("expected no vaccines, got %v", items)
		}
	}

	// Crear vacuna válida
	var vaccineID string
	{
		st, env := doReq(t, ts.URL, "POST", "/vaccines", map[string]any{
			"petId":            petID,
			"vaccineName":      "Rabies shot",
			"vaccineType":      "rabies",
			"applicationDate":  "2024-01-01",
			"expirationDate":   "2025-01-01",
			"veterinarianName": "Dr. X",
			"clinic":           "VetCo",
		})
		if st != http.StatusCreated || !env.Success {
			t.Fatalf("create vaccine: %d %+v", st, env)
		}
		var v map[string]any
		mustUnmarshal(t, env.Data, &v)
		vaccineID, _ = v["id"].(string)
		if vaccineID == "" {
			t.Fatalf("create vaccine: missing id %v", v)
		}
		if v["applicationDate"] != "2024-01-01" || v["expirationDate"] != "2025-01-01" {
			t.Fatalf("dates were normalized: %v", v)
		}
	}

	// Listado por mascota con un elemento
	{
		st, env := doReq(t, ts.URL, "GET", "/vaccines/pet/"+petID, nil)
		if st != http.StatusOK {
			t.Fatalf("list vaccines: %d", st)
		}
		var items []map[string]any
		mustUnmarshal(t, env.Data, &items)
		if len(items) != 1 || items[0]["id"] != vaccineID {
			t.Fatalf("unexpected vaccines: %v", items)
		}
	}

	// Listado por mascota inexistente => 404 (asimetría con create)
	{
		st, env := doReq(t, ts.URL, "GET", "/vaccines/pet/missing-pet", nil)
		if st != http.StatusNotFound || env.Error != "Pet not found" {
			t.Fatalf("list by missing pet: %d %+v", st, env)
		}
	}

	// Update parcial: fecha inválida presente se rechaza
	{
		st, env := doReq(t, ts.URL, "PUT", "/vaccines/"+vaccineID, map[string]any{
			"expirationDate": "garbage",
		})
		if st != http.StatusBadRequest || env.Error != "Validation error: Invalid expiration date" {
			t.Fatalf("bad date on update: %d %+v", st, env)
		}
	}

	// Update parcial válido: la relación entre fechas NO se re-chequea
	{
		st, env := doReq(t, ts.URL, "PUT", "/vaccines/"+vaccineID, map[string]any{
			"expirationDate": "2023-01-01",
			"notes":          "flagged for review",
		})
		if st != http.StatusOK {
			t.Fatalf("update vaccine: %d %+v", st, env)
		}
		var v map[string]any
		mustUnmarshal(t, env.Data, &v)
		if v["expirationDate"] != "2023-01-01" || v["notes"] != "flagged for review" {
			t.Fatalf("update not applied: %v", v)
		}
		if v["vaccineName"] != "Rabies shot" {
			t.Fatalf("update clobbered fields: %v", v)
		}
	}

	// Borrar la mascota NO borra sus vacunas (huérfanas a propósito)
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/pets/"+petID, nil)
		if st != http.StatusOK {
			t.Fatalf("delete pet: %d", st)
		}
		st, env := doReq(t, ts.URL, "GET", "/vaccines/"+vaccineID, nil)
		if st != http.StatusOK || !env.Success {
			t.Fatalf("orphan vaccine should survive: %d %+v", st, env)
		}
	}

	// Delete de la vacuna y 404 posterior
	{
		st, env := doReq(t, ts.URL, "DELETE", "/vaccines/"+vaccineID, nil)
		if st != http.StatusOK {
			t.Fatalf("delete vaccine: %d %+v", st, env)
		}
		var msg map[string]string
		mustUnmarshal(t, env.Data, &msg)
		if msg["message"] != "Vaccine deleted successfully" {
			t.Fatalf("unexpected delete message: %v", msg)
		}
		st, env = doReq(t, ts.URL, "GET", "/vaccines/"+vaccineID, nil)
		if st != http.StatusNotFound || env.Error != "Vaccine not found" {
			t.Fatalf("expected 404 after delete: %d %+v", st, env)
		}
	}
}

func TestHTTP_CORSHeaders(t *testing.T) {
	ts := newTestServer(t)

	check := func(t *testing.T, res *http.Response) {
		t.Helper()
		if got := res.Header.Get("Access-Control-Allow-Origin"); got != "*" {
			t.Fatalf("Allow-Origin = %q", got)
		}
		if got := res.Header.Get("Access-Control-Allow-Methods"); got != "GET, POST, PUT, DELETE, OPTIONS" {
			t.Fatalf("Allow-Methods = %q", got)
		}
		if got := res.Header.Get("Access-Control-Allow-Headers"); got != "Content-Type, Authorization" {
			t.Fatalf("Allow-Headers = %q", got)
		}
	}

	// Éxito
	res, err := http.Get(ts.URL + "/pets")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	res.Body.Close()
	check(t, res)
	if ct := res.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type = %q", ct)
	}

	// Error de validación
	req, _ := http.NewRequest("POST", ts.URL+"/pets", nil)
	res, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	res.Body.Close()
	check(t, res)

	// Not found
	res, err = http.Get(ts.URL + "/pets/nope")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	res.Body.Close()
	check(t, res)

	// Preflight
	req, _ = http.NewRequest("OPTIONS", ts.URL+"/pets", nil)
	res, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("preflight status = %d", res.StatusCode)
	}
	check(t, res)
}

func createPet(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()

	st, env := doReq(t, baseURL, "POST", "/pets", payload)
	if st != http.StatusCreated || !env.Success {
		t.Fatalf("expected 201 create pet, got %d env %+v", st, env)
	}

	var pet struct {
		ID string `json:"id"`
	}
	mustUnmarshal(t, env.Data, &pet)
	if pet.ID == "" {
		t.Fatalf("create pet: missing id")
	}
	return pet.ID
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, envelope) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	raw, _ := io.ReadAll(res.Body)
	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("unmarshal envelope: %v body=%s", err, string(raw))
		}
	}
	return res.StatusCode, env
}

func mustUnmarshal(t *testing.T, raw json.RawMessage, v any) {
	t.Helper()
	if err := json.Unmarshal(raw, v); err != nil {
		t.Fatalf("unmarshal data: %v raw=%s", err, string(raw))
	}
}
