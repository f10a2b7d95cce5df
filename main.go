package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"storescrapers/catalogworker/config"
	"storescrapers/catalogworker/internal/engine"
	"storescrapers/catalogworker/internal/pipeline"
	"storescrapers/catalogworker/internal/scraper"
	"storescrapers/catalogworker/logger"
	"storescrapers/catalogworker/services/cache"
	"storescrapers/catalogworker/services/publisher"
	"storescrapers/catalogworker/services/storage"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()

	// Inside Lambda the scraper name arrives in the event payload
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		lambda.Start(handleEvent)
		return
	}

	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// scrapeEvent is the Lambda invocation payload
type scrapeEvent struct {
	ScraperName string `json:"scraper_name"`
}

// handleEvent runs one scraper per Lambda invocation. The scraper name
// falls back to the SCRAPER_NAME environment variable.
func handleEvent(ctx context.Context, event scrapeEvent) error {
	name := event.ScraperName
	if name == "" {
		name = os.Getenv("SCRAPER_NAME")
	}
	if name == "" {
		logger.Error("Please provide scraper_name to run the scraper for!")
		return nil
	}
	return run(ctx, name)
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "catalogworker",
		Short: "Extracts store catalog data and persists it to object storage",
	}

	runCmd := &cobra.Command{
		Use:   "run [scraper]",
		Short: "Run one scraper to completion",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			if name == "" {
				name = os.Getenv("SCRAPER_NAME")
			}
			if name == "" {
				logger.Error("Please provide a scraper name (argument or SCRAPER_NAME), one of %v", scraper.Names())
				return nil
			}

			// Set up context with cancellation on shutdown signals
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			go func() {
				sig := <-sigChan
				logger.Default.Info().
					Str("signal", sig.String()).
					Msg("Received shutdown signal")
				cancel()
			}()

			return run(ctx, name)
		},
	}

	root.AddCommand(runCmd)
	return root
}

// run wires the services together and drains one scraper's request
// graph
func run(ctx context.Context, name string) error {
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	cfg.ScraperName = name
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("Invalid configuration")
		return err
	}

	s, err := scraper.Create(name, cfg)
	if err != nil {
		log.Error().Err(err).Msg("Unknown scraper")
		return err
	}

	// The run timestamp is computed once and shared by every write
	runTimestamp := time.Now().UTC().Format(pipeline.RunTimestampLayout)

	var backend storage.Backend
	if cfg.DebugMode {
		backend = storage.NewFilesystemBackend(cfg.OutputDir)
	} else {
		backend, err = storage.NewS3Backend(ctx, cfg.AWSBucketName)
		if err != nil {
			log.Error().Err(err).Msg("Failed to initialize S3 backend")
			return err
		}
	}

	pipelines := []pipeline.Pipeline{
		pipeline.NewNormalizer(),
		pipeline.NewImageWriter(backend, s.Domain(), runTimestamp, s.FolderPrefix()),
		pipeline.NewProductWriter(backend, s.Domain(), runTimestamp, s.FolderPrefix()),
	}

	if cfg.RedisAddr != "" {
		pub := publisher.NewRedisPublisher(ctx, cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream, cfg.RedisStreamMaxLen)
		defer pub.Close()
		pipelines = append(pipelines, pipeline.NewStreamPublisher(pub, s.Domain()))
		log.Info().Str("addr", cfg.RedisAddr).Str("stream", cfg.RedisStream).Msg("Publishing products to Redis")
	}

	var cacheSvc cache.CacheService
	if cfg.MemcacheAddr != "" {
		cacheSvc = cache.NewMemcacheService(cfg.MemcacheAddr)
	}

	eng := engine.New(engine.Options{
		Pipelines:   pipelines,
		Cache:       cacheSvc,
		Concurrency: cfg.Concurrency,
	})

	log.Info().
		Str("scraper", s.Name()).
		Str("backend", backend.Name()).
		Str("run_timestamp", runTimestamp).
		Int("concurrency", cfg.Concurrency).
		Msg("Starting scrape run")

	if err := eng.Run(ctx, s); err != nil {
		log.Error().Err(err).Msg("Run aborted")
		return err
	}

	log.Info().Msg("Completed scraping")
	return nil
}
