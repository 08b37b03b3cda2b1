package main

import (
	"log"
	"net/http"

	"topstories/api"
	"topstories/config"
	"topstories/orchestrator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	runner := orchestrator.NewRunner(cfg)
	r := api.NewRouter(runner.Collector, runner.Extractor)

	addr := ":" + cfg.Port
	log.Printf("Starting API server on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  GET  /api/health")
	log.Println("  GET  /api/rss/sources")
	log.Println("  GET  /api/rss/links?source=<name|url>&homepages=true")
	log.Println("  POST /api/articles/extract")
	log.Println("  POST /api/articles/extract-by-source")

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
