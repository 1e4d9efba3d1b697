package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dynbilliards/backend/internal/billiards"
	"github.com/gin-gonic/gin"
)

// ListTables returns the table catalog in tab order
func ListTables(catalog *billiards.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"tables": catalog.Tables()})
	}
}

type tableResponse struct {
	billiards.TableSpec
	DefaultBalls [billiards.NumBalls]billiards.BallState `json:"default_balls"`
}

// GetTable returns one table definition with the ball states a new session
// on it starts from
func GetTable(catalog *billiards.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		spec, err := catalog.Lookup(billiards.TableType(c.Param("type")))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "table not found"})
			return
		}
		c.JSON(http.StatusOK, tableResponse{
			TableSpec:    spec,
			DefaultBalls: billiards.SeedStates(spec.Domain),
		})
	}
}

// TablePreview serves the static preview bitmap named by the table's preview key
func TablePreview(catalog *billiards.Catalog, previewDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		spec, err := catalog.Lookup(billiards.TableType(c.Param("type")))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "table not found"})
			return
		}

		path := filepath.Join(previewDir, filepath.Base(spec.PreviewKey))
		if _, err := os.Stat(path); err != nil {
			log.Printf("[PREVIEW] missing preview %s for table %s", path, spec.Type)
			c.JSON(http.StatusNotFound, gin.H{"error": "preview not available"})
			return
		}
		c.File(path)
	}
}
