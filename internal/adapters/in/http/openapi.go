package http

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openapiYAML []byte

// LoadSpec parses and validates the embedded OpenAPI document.
func LoadSpec(ctx context.Context) (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(openapiYAML)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

// swaggerDoc feeds the document to echo-swagger through the swag registry.
type swaggerDoc struct {
	json string
}

func (d swaggerDoc) ReadDoc() string {
	return d.json
}

// registerSwagger is safe to call more than once; swag keeps the first
// registration under a name.
func registerSwagger(doc *openapi3.T) error {
	b, err := doc.MarshalJSON()
	if err != nil {
		return err
	}
	if _, err = swag.ReadDoc(swag.Name); err == nil {
		return nil
	}
	swag.Register(swag.Name, swaggerDoc{json: string(b)})
	return nil
}
