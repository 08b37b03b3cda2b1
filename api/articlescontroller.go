package api

import (
	"net/http"
	"sort"

	"topstories/extractor"
	"topstories/types"

	"github.com/gin-gonic/gin"
)

type extractRequest struct {
	URLs []string `json:"urls" binding:"required,min=1"`
}

type extractBySourceRequest struct {
	Sources map[string][]string `json:"sources" binding:"required,min=1"`
}

// RegisterArticleRoutes registers article extraction endpoints.
func RegisterArticleRoutes(r *gin.Engine, ext *extractor.Extractor) {
	g := r.Group("/api/articles")
	g.POST("/extract", handleExtract(ext))
	g.POST("/extract-by-source", handleExtractBySource(ext))
}

// handleExtract returns articles keyed by URL plus the URLs that failed.
func handleExtract(ext *extractor.Extractor) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req extractRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		results := ext.ExtractResults(c.Request.Context(), req.URLs)
		articles := make(map[string]*types.Article, len(results))
		failed := []string{}
		for _, r := range results {
			if r.OK() {
				articles[r.URL] = r.Article
			} else {
				failed = append(failed, r.URL)
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"articles": articles,
			"failed":   failed,
		})
	}
}

func handleExtractBySource(ext *extractor.Extractor) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req extractBySourceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// JSON objects are unordered; process sources by name for stable logs
		names := make([]string, 0, len(req.Sources))
		for name := range req.Sources {
			names = append(names, name)
		}
		sort.Strings(names)

		sets := make(types.LinkSets, 0, len(names))
		for _, name := range names {
			sets = append(sets, types.SourceLinks{Source: name, Links: req.Sources[name]})
		}

		c.JSON(http.StatusOK, gin.H{"sources": ext.ExtractBySource(c.Request.Context(), sets)})
	}
}
