package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"topstories/config"
	"topstories/extractor"
	"topstories/orchestrator"
	"topstories/rssfeeds"
	"topstories/shared/rss"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

func main() {
	// Log to stderr so results on stdout stay clean
	log.SetOutput(os.Stderr)

	root := &cobra.Command{
		Use:           "topstories",
		Short:         "Collect top-story links from news feeds and extract article text",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		sourcesCmd(),
		linksCmd(),
		scrapeCmd(),
		runCmd(),
		watchCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func sourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List the built-in feed and homepage sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render("Feeds"))
			for _, s := range rss.FeedSources() {
				fmt.Fprintf(out, "  %-18s %s\n", s.Name, s.URL)
			}
			fmt.Fprintln(out, titleStyle.Render("Homepages"))
			for _, s := range rss.HomepageSources() {
				fmt.Fprintf(out, "  %-18s %s  (%s)\n", s.Name, s.URL, s.Selector)
			}
			return nil
		},
	}
}

func linksCmd() *cobra.Command {
	var homepages, asJSON bool
	cmd := &cobra.Command{
		Use:   "links [source...]",
		Short: "Collect today's article links per source",
		Long:  "Collect article links from the named feed presets or feed URLs (all presets when none are given).",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			names := args
			if len(names) == 0 {
				names = cfg.Sources
			}
			sources, err := rss.SelectSources(names)
			if err != nil {
				return err
			}

			col := rssfeeds.NewCollector()
			col.UserAgent = cfg.UserAgent
			links := col.CollectAll(cmd.Context(), sources)
			if homepages || cfg.IncludeHomepages {
				links = append(links, col.CollectHomepages(cmd.Context(), rss.HomepageSources())...)
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), links.Map())
			}
			printLinks(cmd.OutOrStdout(), links)
			return nil
		},
	}
	cmd.Flags().BoolVar(&homepages, "homepages", false, "Also scrape homepage sources")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print a JSON object of source to links")
	return cmd
}

func scrapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scrape <url>...",
		Short: "Extract article content from one or more URLs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ext := extractor.NewExtractor()
			ext.FallbackUserAgent = cfg.UserAgent
			ext.Workers = cfg.ExtractWorkers

			articles := ext.ExtractAll(cmd.Context(), args)
			log.Printf("Extracted %d/%d article(s)", len(articles), len(args))
			return printJSON(cmd.OutOrStdout(), articles)
		},
	}
}

func runCmd() *cobra.Command {
	var extract, asJSON bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Collect links and optionally extract every article once",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			opts, err := orchestrator.OptionsFromConfig(cfg, extract)
			if err != nil {
				return err
			}

			report, err := orchestrator.NewRunner(cfg).RunOnce(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if asJSON || extract {
				return printJSON(cmd.OutOrStdout(), report)
			}
			printLinks(cmd.OutOrStdout(), report.Links)
			return nil
		},
	}
	cmd.Flags().BoolVar(&extract, "extract", false, "Extract article content for every collected link")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full report as JSON")
	return cmd
}

func watchCmd() *cobra.Command {
	var schedule string
	var extract bool
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Repeat the run on a cron schedule until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if schedule == "" {
				schedule = cfg.WatchSchedule
			}
			opts, err := orchestrator.OptionsFromConfig(cfg, extract)
			if err != nil {
				return err
			}
			runner := orchestrator.NewRunner(cfg)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			c := cron.New()
			if _, err := c.AddFunc(schedule, func() {
				log.Println("Cron triggered: starting run")
				report, err := runner.RunOnce(ctx, opts)
				if err != nil {
					log.Printf("Cron run error: %v", err)
					return
				}
				printLinks(cmd.OutOrStdout(), report.Links)
			}); err != nil {
				return fmt.Errorf("failed to add cron job: %w", err)
			}

			c.Start()
			log.Printf("Watching with schedule %q (Ctrl-C to stop)", schedule)
			<-ctx.Done()

			log.Println("Stopping scheduler...")
			<-c.Stop().Done()
			return nil
		},
	}
	cmd.Flags().StringVar(&schedule, "schedule", "", "Cron schedule (default from WATCH_SCHEDULE)")
	cmd.Flags().BoolVar(&extract, "extract", false, "Extract article content on each run")
	return cmd
}
