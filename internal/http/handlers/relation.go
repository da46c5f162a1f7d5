package handlers

import (
	"net/http"

	"fair_rps/internal/game"

	"github.com/gin-gonic/gin"
)

type RelationRequest struct {
	Moves []string `json:"moves" binding:"required"`
}

// RelationResponse rows are read from the row move's point of view.
type RelationResponse struct {
	Moves []string   `json:"moves"`
	Table [][]string `json:"table"`
}

// Relation returns the outcome table for a move list.
func (h *Handler) Relation(c *gin.Context) {
	var req RelationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	moves, err := game.NewMoveSet(req.Moves)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rel, err := game.BuildRelation(moves)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, RelationResponse{
		Moves: moves.Labels(),
		Table: rel.Rows(),
	})
}

// ListPresets lists the named move sets.
func (h *Handler) ListPresets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"names": h.Presets.Names(), "presets": h.Presets.All()})
}
