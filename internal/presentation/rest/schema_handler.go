package rest

import (
	"net/http"
	"strconv"
)

// SchemaHandler serves the input schema document.
type SchemaHandler struct {
	document []byte
}

// NewSchemaHandler creates a handler for the given schema document.
func NewSchemaHandler(document []byte) *SchemaHandler {
	return &SchemaHandler{document: document}
}

// ServeHTTP writes the schema document.
func (h *SchemaHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/schema+json")
	w.Header().Set("Content-Length", strconv.Itoa(len(h.document)))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.document)
}
