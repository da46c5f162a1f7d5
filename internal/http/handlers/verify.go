package handlers

import (
	"errors"
	"net/http"

	"fair_rps/internal/fairness"

	"github.com/gin-gonic/gin"
)

type VerifyRequest struct {
	Key  string `json:"key" binding:"required"`
	Move string `json:"move" binding:"required"`
	HMAC string `json:"hmac" binding:"required"`
}

type VerifyResponse struct {
	Valid    bool   `json:"valid"`
	Computed string `json:"computed"`
}

// Verify recomputes HMAC-SHA256(key, move) and compares it with the digest
// the game published before the round.
func (h *Handler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	ok, err := fairness.Verify(req.Key, req.Move, req.HMAC)
	if err != nil {
		if errors.Is(err, fairness.ErrMalformedKey) || errors.Is(err, fairness.ErrMalformedDigest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "verify failed"})
		return
	}

	// key already parsed by Verify
	key, _ := fairness.ParseKey(req.Key)
	c.JSON(http.StatusOK, VerifyResponse{
		Valid:    ok,
		Computed: fairness.Digest(key, req.Move),
	})
}
