package api

import (
	"net/http"

	"topstories/rssfeeds"
	"topstories/shared/rss"

	"github.com/gin-gonic/gin"
)

// RegisterRSSRoutes registers feed source and link collection endpoints.
func RegisterRSSRoutes(r *gin.Engine, col *rssfeeds.Collector) {
	g := r.Group("/api/rss")
	g.GET("/sources", handleListSources)
	g.GET("/links", handleCollectLinks(col))
}

func handleListSources(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"feeds":     rss.FeedSources(),
		"homepages": rss.HomepageSources(),
	})
}

// handleCollectLinks runs one collection pass. Repeat ?source= to pick feeds
// by preset name or URL; with none, every preset is collected.
// ?homepages=true adds the homepage sources.
func handleCollectLinks(col *rssfeeds.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		sources, err := rss.SelectSources(c.QueryArray("source"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		links := col.CollectAll(c.Request.Context(), sources)
		if c.Query("homepages") == "true" {
			links = append(links, col.CollectHomepages(c.Request.Context(), rss.HomepageSources())...)
		}

		c.JSON(http.StatusOK, gin.H{
			"sources": links,
			"count":   links.Total(),
		})
	}
}
