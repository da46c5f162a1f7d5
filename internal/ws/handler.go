package ws

import (
	"net/http"
	"strings"

	"fair_rps/internal/game"
	"fair_rps/internal/logger"
	"fair_rps/internal/presets"
	"fair_rps/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type Options struct {
	Presets       *presets.Catalog
	KeyPolicy     session.KeyPolicy
	AllowedOrigin string
}

// HandleWS upgrades the request and plays one session over the connection.
// The move set comes from ?moves=a,b,c or ?preset=name (default classic).
func HandleWS(opts Options) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if opts.AllowedOrigin == "" {
				return true
			}
			return r.Header.Get("Origin") == opts.AllowedOrigin
		},
	}

	return func(c *gin.Context) {
		moves, err := movesFromQuery(c, opts.Presets)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		s, err := session.New(moves, session.WithKeyPolicy(opts.KeyPolicy))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start session"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("ws upgrade error", "error", err)
			return
		}

		go NewClient(conn, s).Run()
	}
}

func movesFromQuery(c *gin.Context, catalog *presets.Catalog) (game.MoveSet, error) {
	if raw := c.Query("moves"); raw != "" {
		parts := strings.Split(raw, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return game.NewMoveSet(parts)
	}

	name := c.Query("preset")
	if name == "" {
		name = "classic"
	}
	if catalog == nil {
		catalog = presets.NewCatalog()
	}
	return catalog.Lookup(name)
}
