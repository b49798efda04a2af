package http

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const (
	openAPIPath = "/api/openapi.json"

	// SwaggerUIPrefix is where the interactive API browser is mounted.
	SwaggerUIPrefix = "/swagger/"
)

//go:embed openapi.yaml
var openAPIDocument []byte

// LoadOpenAPI parses and validates the embedded API description.
func LoadOpenAPI(ctx context.Context) (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(openAPIDocument)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI document: %w", err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
	}
	return doc, nil
}

// RegisterOpenAPI serves doc as JSON at GET /api/openapi.json and a Swagger UI
// reading that document under /swagger/.
func RegisterOpenAPI(e *echo.Echo, doc *openapi3.T) {
	e.GET(openAPIPath, func(c echo.Context) error {
		return c.JSON(http.StatusOK, doc)
	})
	e.GET(SwaggerUIPrefix+"*", echoSwagger.EchoWrapHandler(echoSwagger.URL(openAPIPath)))
}
