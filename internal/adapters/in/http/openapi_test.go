package http_test

import (
	"net/http"
	"regexp"
	"strings"
	"testing"

	api "footprint/internal/adapters/in/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var echoParam = regexp.MustCompile(`:(\w+)`)

func TestLoadOpenAPI_IsValid(t *testing.T) {
	doc, err := api.LoadOpenAPI(t.Context())

	require.NoError(t, err)
	assert.Equal(t, "3.0.3", doc.OpenAPI)
}

func TestOpenAPI_DescribesEveryRoute(t *testing.T) {
	doc, err := api.LoadOpenAPI(t.Context())
	require.NoError(t, err)

	e := newTestEcho(t, handlers{})
	api.RegisterOpenAPI(e, doc)

	methods := map[string]bool{
		http.MethodGet: true, http.MethodPost: true, http.MethodPatch: true, http.MethodPut: true, http.MethodDelete: true,
	}
	checked := 0
	for _, route := range e.Routes() {
		if !methods[route.Method] || strings.HasPrefix(route.Path, api.SwaggerUIPrefix) {
			continue
		}
		path := echoParam.ReplaceAllString(route.Path, "{$1}")
		item := doc.Paths.Find(path)
		if !assert.NotNil(t, item, "undocumented path %s", path) {
			continue
		}
		assert.NotNil(t, item.GetOperation(route.Method), "undocumented %s %s", route.Method, path)
		checked++
	}
	assert.Equal(t, 7, checked)
}

func TestOpenAPI_ServedAsJSON(t *testing.T) {
	doc, err := api.LoadOpenAPI(t.Context())
	require.NoError(t, err)
	e := newTestEcho(t, handlers{})
	api.RegisterOpenAPI(e, doc)

	rec := do(e, http.MethodGet, "/api/openapi.json", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "3.0.3", body["openapi"])
	assert.Contains(t, body["paths"], "/api/admin/orders/bulk-status")
}

func TestOpenAPI_SwaggerUIReadsServedDocument(t *testing.T) {
	doc, err := api.LoadOpenAPI(t.Context())
	require.NoError(t, err)
	e := newTestEcho(t, handlers{})
	api.RegisterOpenAPI(e, doc)

	rec := do(e, http.MethodGet, "/swagger/index.html", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "openapi.json")
}
