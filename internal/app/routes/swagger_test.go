package routes

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAPIDocumentServed(t *testing.T) {
	r, _, _ := newTestRouter()
	SetupSwagger(r)

	w := do(r, http.MethodGet, OpenAPIPath, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "3.0.3", doc["openapi"])

	ui := do(r, http.MethodGet, "/swagger/index.html", "", "")
	assert.Equal(t, http.StatusOK, ui.Code)
	assert.Contains(t, ui.Body.String(), OpenAPIPath)
}

func TestOpenAPIDocumentCoversEveryRoute(t *testing.T) {
	r, _, _ := newTestRouter()

	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(openAPIDocument, &doc))

	served := make(map[string]bool)
	for _, route := range r.Routes() {
		if strings.HasPrefix(route.Path, "/api/v1") {
			continue
		}
		ops, ok := doc.Paths[route.Path]
		if assert.True(t, ok, "undocumented path %s", route.Path) {
			_, ok = ops[strings.ToLower(route.Method)]
			assert.True(t, ok, "undocumented operation %s %s", route.Method, route.Path)
		}
		served[route.Path] = true
	}
	require.NotEmpty(t, served)
	for path := range doc.Paths {
		assert.True(t, served[path], "documented path %s has no route", path)
	}
}
