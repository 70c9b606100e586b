package handlers

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"

	"gopkg.in/yaml.v3"
)

//go:embed api_info.yaml
var apiInfoYAML []byte

// NewAPIInfoHandler returns the handler for GET /, which describes the available endpoints.
//
// The description is maintained as YAML and converted to JSON once, when the handler is created.
//
//	@Summary		API description
//	@Description	Lists the gateway endpoints with their parameters and responses
//	@Tags			Common
//	@Produce		json
//	@Success		200	{object}	map[string]any
//	@Router			/ [get]
func NewAPIInfoHandler() (http.HandlerFunc, error) {
	var info map[string]any
	if err := yaml.Unmarshal(apiInfoYAML, &info); err != nil {
		return nil, fmt.Errorf("failed to parse API description: %w", err)
	}

	body, err := json.Marshal(info)
	if err != nil {
		return nil, fmt.Errorf("failed to encode API description: %w", err)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}, nil
}
