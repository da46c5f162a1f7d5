package handlers

import (
	"fair_rps/internal/presets"
)

// Handler serves the verification API. It holds no per-player state.
type Handler struct {
	Presets *presets.Catalog
}

func NewHandler(catalog *presets.Catalog) *Handler {
	if catalog == nil {
		catalog = presets.NewCatalog()
	}
	return &Handler{Presets: catalog}
}
