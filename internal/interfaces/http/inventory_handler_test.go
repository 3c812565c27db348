package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnneKitsune/inventory-managoat/internal/application/inventory"
	apphttp "github.com/AnneKitsune/inventory-managoat/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// buildTestApp construye una aplicación Fiber con un Store vacío y reloj fijo.
func buildTestApp() *fiber.App {
	store := inventory.NewStore(inventory.WithClock(func() time.Time { return baseTime }))
	app := fiber.New()
	apphttp.Router(app, apphttp.NewInventoryHandler(store))
	return app
}

// doJSON lanza una petición con cuerpo JSON opcional y devuelve la respuesta.
func doJSON(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// createType da de alta un tipo vía API y devuelve su id.
func createType(t *testing.T, app *fiber.App, body string) int64 {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/types", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID int64 `json:"id"`
	}
	decodeBody(t, resp, &created)
	return created.ID
}

// createInstance da de alta una instancia vía API y devuelve su id.
func createInstance(t *testing.T, app *fiber.App, body string) int64 {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/instances", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID int64 `json:"id"`
	}
	decodeBody(t, resp, &created)
	return created.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Tipos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateType_RespondeIdYAparaceEnElListado(t *testing.T) {
	app := buildTestApp()

	id := createType(t, app, `{"name":"arroz","minimum_quantity":"2"}`)
	assert.Equal(t, int64(1), id)

	resp := doJSON(t, app, http.MethodGet, "/api/types", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var types []map[string]any
	decodeBody(t, resp, &types)
	require.Len(t, types, 1)
	assert.Equal(t, "arroz", types[0]["name"])
}

func TestListTypes_FiltroPorNombre(t *testing.T) {
	app := buildTestApp()
	createType(t, app, `{"name":"Leche entera"}`)
	createType(t, app, `{"name":"café"}`)

	resp := doJSON(t, app, http.MethodGet, "/api/types?name=leche", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var types []map[string]any
	decodeBody(t, resp, &types)
	require.Len(t, types, 1)
	assert.Equal(t, "Leche entera", types[0]["name"])
}

func TestGetType_Inexistente404(t *testing.T) {
	app := buildTestApp()

	resp := doJSON(t, app, http.MethodGet, "/api/types/9", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "UNKNOWN_ITEM_TYPE", body["code"], "el cuerpo de error lleva código y mensaje")
	assert.NotEmpty(t, body["message"])
}

func TestUpdateType_PatchYClearTTL(t *testing.T) {
	app := buildTestApp()
	id := createType(t, app, `{"name":"yogur","ttl":3600}`)

	resp := doJSON(t, app, http.MethodPatch, "/api/types/1", `{"clear_ttl":true}`)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/types/1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got map[string]any
	decodeBody(t, resp, &got)
	assert.Equal(t, "yogur", got["name"])
	_, hasTTL := got["ttl"]
	assert.False(t, hasTTL, "tras clear_ttl el campo no debe aparecer")
	_ = id
}

func TestDeleteType_CascadaYIdempotencia(t *testing.T) {
	app := buildTestApp()
	createType(t, app, `{"name":"pan"}`)
	createInstance(t, app, `{"item_type":1}`)

	resp := doJSON(t, app, http.MethodDelete, "/api/types/1", "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Las instancias del tipo caen en cascada con él.
	resp = doJSON(t, app, http.MethodGet, "/api/types/1/instances", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Idempotente.
	resp = doJSON(t, app, http.MethodDelete, "/api/types/1", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Instancias y consumo
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateInstance_TipoInexistente404(t *testing.T) {
	app := buildTestApp()

	resp := doJSON(t, app, http.MethodPost, "/api/instances", `{"item_type":5}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "UNKNOWN_ITEM_TYPE", body["code"])
}

func TestUseType_DerrameYCantidadRestante(t *testing.T) {
	app := buildTestApp()
	createType(t, app, `{"name":"avena"}`)
	createInstance(t, app, `{"item_type":1,"quantity":"1"}`)
	createInstance(t, app, `{"item_type":1,"quantity":"2"}`)

	resp := doJSON(t, app, http.MethodPost, "/api/types/1/use", `{"quantity":"2.5"}`)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	var qty struct {
		Quantity string `json:"quantity"`
	}
	resp = doJSON(t, app, http.MethodGet, "/api/types/1/quantity", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &qty)
	assert.Equal(t, "0.5", qty.Quantity)

	// La primera instancia se agotó y quedó en la papelera.
	resp = doJSON(t, app, http.MethodGet, "/api/types/1/instances", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var active []map[string]any
	decodeBody(t, resp, &active)
	require.Len(t, active, 1)
	assert.Equal(t, float64(2), active[0]["id"])
}

func TestUseType_SinInstancias409(t *testing.T) {
	app := buildTestApp()
	createType(t, app, `{"name":"té"}`)

	resp := doJSON(t, app, http.MethodPost, "/api/types/1/use", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "NO_MATCHING_INSTANCE", body["code"])
}

func TestTrashInstance_DesapareceDeLasVistasActivas(t *testing.T) {
	app := buildTestApp()
	createType(t, app, `{"name":"galletas"}`)
	createInstance(t, app, `{"item_type":1,"quantity":"3"}`)

	resp := doJSON(t, app, http.MethodPost, "/api/instances/1/trash", "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/types/1/instances", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var active []map[string]any
	decodeBody(t, resp, &active)
	assert.Empty(t, active)
}

func TestDeleteInstance_Inexistente404(t *testing.T) {
	app := buildTestApp()

	resp := doJSON(t, app, http.MethodDelete, "/api/instances/3", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "UNKNOWN_ITEM_INSTANCE", body["code"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Informes
// ──────────────────────────────────────────────────────────────────────────────

func TestReports_MissingYExpired(t *testing.T) {
	app := buildTestApp()
	createType(t, app, `{"name":"aceite","minimum_quantity":"2"}`)
	createType(t, app, `{"name":"sal"}`)
	createInstance(t, app, `{"item_type":1,"quantity":"1"}`)

	expired := baseTime.Add(-time.Hour).Format(time.RFC3339)
	createInstance(t, app, `{"item_type":2,"expires_at":"`+expired+`"}`)

	resp := doJSON(t, app, http.MethodGet, "/api/reports/missing", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var missing []map[string]any
	decodeBody(t, resp, &missing)
	require.Len(t, missing, 1)
	assert.Equal(t, "aceite", missing[0]["name"])

	resp = doJSON(t, app, http.MethodGet, "/api/reports/expired", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var expiredList []map[string]any
	decodeBody(t, resp, &expiredList)
	require.Len(t, expiredList, 1)
	assert.Equal(t, float64(2), expiredList[0]["id"])
}
