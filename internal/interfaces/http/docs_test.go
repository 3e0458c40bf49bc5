package http_test

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/superindo-api/internal/interfaces/http"
	"github.com/jhoicas/superindo-api/pkg/logger"
)

const docsFile = "../../../docs/swagger.json"

func TestDocs_SirveSwaggerUI(t *testing.T) {
	app := apphttp.NewApp("test", logger.Nop())
	require.NoError(t, apphttp.Docs(app, docsFile))

	status, body := call(t, app, http.MethodGet, "/docs", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body)

	status, _ = call(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestDocs_ArchivoInexistente(t *testing.T) {
	app := apphttp.NewApp("test", logger.Nop())
	assert.Error(t, apphttp.Docs(app, "./no-existe.json"))
}

// swaggerPath convierte /api/v1/invoices/:id/status en /api/v1/invoices/{id}/status.
func swaggerPath(route string) string {
	if len(route) > 1 {
		route = strings.TrimSuffix(route, "/")
	}
	parts := strings.Split(route, "/")
	for i, p := range parts {
		if strings.HasPrefix(p, ":") {
			parts[i] = "{" + p[1:] + "}"
		}
	}
	return strings.Join(parts, "/")
}

func TestDocs_DocumentaTodasLasRutas(t *testing.T) {
	raw, err := os.ReadFile(docsFile)
	require.NoError(t, err)
	var doc struct {
		Swagger string                            `json:"swagger"`
		Paths   map[string]map[string]interface{} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "2.0", doc.Swagger)

	methods := map[string]bool{"GET": true, "POST": true, "PUT": true, "PATCH": true, "DELETE": true}
	checked := 0
	for _, r := range newTestApp(t).GetRoutes(true) {
		if !methods[r.Method] {
			continue
		}
		p := swaggerPath(r.Path)
		ops, ok := doc.Paths[p]
		if !assert.Truef(t, ok, "ruta %s sin documentar", p) {
			continue
		}
		assert.Containsf(t, ops, strings.ToLower(r.Method), "%s %s sin documentar", r.Method, p)
		checked++
	}
	assert.GreaterOrEqual(t, checked, 30)
}
