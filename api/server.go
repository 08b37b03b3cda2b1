package api

import (
	"topstories/extractor"
	"topstories/rssfeeds"

	"github.com/gin-gonic/gin"
)

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(col *rssfeeds.Collector, ext *extractor.Extractor) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	// Register resource routers
	RegisterHealthRoutes(r)
	RegisterRSSRoutes(r, col)
	RegisterArticleRoutes(r, ext)
	return r
}
