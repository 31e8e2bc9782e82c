package api

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var openapiYAML []byte

var (
	docOnce sync.Once
	docJSON []byte
	docErr  error
)

// LoadOpenAPI parses and validates the embedded API description.
func LoadOpenAPI(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openapiYAML)
	if err != nil {
		return nil, fmt.Errorf("load openapi: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi: %w", err)
	}
	return doc, nil
}

func openAPIJSON(ctx context.Context) ([]byte, error) {
	docOnce.Do(func() {
		doc, err := LoadOpenAPI(ctx)
		if err != nil {
			docErr = err
			return
		}
		docJSON, docErr = json.Marshal(doc)
	})
	return docJSON, docErr
}

// OpenAPI serves the API description as JSON.
func (h *Handler) OpenAPI(w http.ResponseWriter, r *http.Request) {
	body, err := openAPIJSON(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
