package api

import (
	"net/http"
	"time"

	"topstories/shared/rss"

	"github.com/gin-gonic/gin"
)

var startedAt = time.Now()

// RegisterHealthRoutes registers liveness endpoints.
func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/api/health", handleHealth)
	r.HEAD("/api/health", handleHealth)
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"feeds":     len(rss.FeedSources()),
		"homepages": len(rss.HomepageSources()),
		"uptime":    time.Since(startedAt).Round(time.Second).String(),
	})
}
