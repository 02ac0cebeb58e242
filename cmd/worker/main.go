package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/swot-auditor/swot-backend/config"
	"github.com/swot-auditor/swot-backend/internal/bootstrap"
	"github.com/swot-auditor/swot-backend/internal/platform/logger"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: worker purge-expired [-passes n]")
	}

	switch os.Args[1] {
	case "purge-expired":
		os.Exit(runPurge(os.Args[2:]))
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
}

// runPurge runs retention passes until one purges nothing or the pass limit
// is hit. It returns the process exit code so deferred cleanup always runs.
func runPurge(args []string) int {
	fs := flag.NewFlagSet("purge-expired", flag.ExitOnError)
	passes := fs.Int("passes", 1, "maximum number of retention passes")
	_ = fs.Parse(args)

	cfg, err := config.Load()
	if err != nil {
		log.Printf("config: %v", err)
		return 1
	}
	lg, err := logger.New(logger.Options{Mode: cfg.App.Environment, Level: cfg.App.LogLevel, Redact: true, Salt: cfg.App.LogSalt})
	if err != nil {
		log.Printf("logger: %v", err)
		return 1
	}
	defer lg.Sync()

	ctx := context.Background()
	app, err := bootstrap.Build(ctx, cfg, lg)
	if err != nil {
		lg.Error("bootstrap failed", "error", err)
		return 1
	}
	defer app.Close()

	total := 0
	for i := 0; i < *passes; i++ {
		rep, err := app.Retention.RunOnce(ctx)
		if err != nil {
			lg.Error("purge pass failed", "pass", i+1, "error", err)
			return 1
		}
		total += rep.Purged
		if rep.Purged == 0 {
			break
		}
	}
	lg.Info("purge-expired finished", "purged", total)
	return 0
}
