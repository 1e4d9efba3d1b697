package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/dynbilliards/backend/internal/auth"
	"github.com/dynbilliards/backend/internal/billiards"
	"github.com/dynbilliards/backend/internal/config"
	"github.com/dynbilliards/backend/internal/runs"
	"github.com/dynbilliards/backend/internal/session"
	"github.com/gin-gonic/gin"
)

// CreateSession issues a ticket for a new configuration session. The session
// itself only exists once the ticket is presented on the WebSocket.
func CreateSession(cfg *config.Config, catalog *billiards.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			TableType string `json:"table_type" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "table_type required"})
			return
		}

		spec, err := catalog.Lookup(billiards.TableType(req.TableType))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "table not found"})
			return
		}

		sessionID := session.NewID()
		ttl := time.Duration(cfg.SessionTimeoutMin) * time.Minute
		ticket, exp, err := auth.IssueTicket(cfg.JWTSecret, sessionID, string(spec.Type), ttl)
		if err != nil {
			log.Printf("Failed to sign ticket: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"session_id": sessionID,
			"ticket":     ticket,
			"expires_at": exp.UTC().Format(time.RFC3339),
			"ws_path":    "/api/v1/sessions/ws?ticket=" + ticket,
			"table":      spec,
		})
	}
}

// ListRuns returns recently dispatched simulation requests
func ListRuns(journal *runs.Journal) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		list, err := journal.Recent(c.Request.Context(), c.Query("table_type"), limit)
		if err != nil {
			log.Printf("[DB] %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"runs": list, "journal_enabled": journal.Enabled()})
	}
}
