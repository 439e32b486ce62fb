package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acmecommerce/knowledge-agent/api"
	"github.com/acmecommerce/knowledge-agent/chat"
	"github.com/acmecommerce/knowledge-agent/config"
	"github.com/acmecommerce/knowledge-agent/corpus"
	"github.com/acmecommerce/knowledge-agent/database"
	"github.com/acmecommerce/knowledge-agent/embeddings"
	"github.com/acmecommerce/knowledge-agent/ingestion"
	"github.com/acmecommerce/knowledge-agent/knowledge"
	"github.com/acmecommerce/knowledge-agent/llm"
	"github.com/acmecommerce/knowledge-agent/ratelimit"
)

func main() {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := config.Load()

	switch os.Args[1] {
	case "serve":
		serveCmd(cfg, logger, os.Args[2:])
	case "seed":
		seedCmd(cfg, logger, os.Args[2:])
	case "ask":
		askCmd(cfg, logger, os.Args[2:])
	case "clear":
		clearCmd(cfg, logger, os.Args[2:])
	default:
		logger.Printf("unknown command: %s", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func serveCmd(cfg config.Config, logger *log.Logger, args []string) {
	flags := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := flags.String("addr", cfg.HTTPAddr, "listen address")
	if err := flags.Parse(args); err != nil {
		logger.Fatalf("parse serve flags: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pool := mustPool(ctx, cfg, logger)
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool, cfg.Embeddings.Dimension); err != nil {
		logger.Fatalf("ensure schema: %v", err)
	}

	embedder, err := embeddings.NewEmbedder(cfg)
	if err != nil {
		logger.Fatalf("embedder setup: %v", err)
	}

	llmClient, err := llm.NewClient(cfg)
	if err != nil {
		logger.Fatalf("llm setup: %v", err)
	}

	store := corpus.NewPostgresStore(pool)
	index := corpus.NewIndex()
	ingestSvc := ingestion.NewService(store, index, embedder, logger)

	loaded, err := ingestSvc.Reload(ctx)
	if err != nil {
		logger.Fatalf("load corpus: %v", err)
	}
	logger.Printf("corpus loaded: %d chunks", loaded)

	chatSvc := chat.NewService(index, embedder, llmClient, logger)
	limiter := ratelimit.New(cfg.DailyLimit)
	server := api.NewServer(chatSvc, ingestSvc, store, limiter, cfg.SeedSecret, logger)

	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Printf("shutdown: %v", err)
		}
	}()

	logger.Printf("listening on %s", *addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("serve: %v", err)
	}
}

func seedCmd(cfg config.Config, logger *log.Logger, args []string) {
	flags := flag.NewFlagSet("seed", flag.ExitOnError)
	if err := flags.Parse(args); err != nil {
		logger.Fatalf("parse seed flags: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pool := mustPool(ctx, cfg, logger)
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool, cfg.Embeddings.Dimension); err != nil {
		logger.Fatalf("ensure schema: %v", err)
	}

	embedder, err := embeddings.NewEmbedder(cfg)
	if err != nil {
		logger.Fatalf("embedder setup: %v", err)
	}

	store := corpus.NewPostgresStore(pool)
	svc := ingestion.NewService(store, corpus.NewIndex(), embedder, logger)

	logger.Printf("seeding corpus using %s/%s embeddings", strings.ToUpper(cfg.Embeddings.Provider), cfg.Embeddings.Model)

	stats, err := svc.Ingest(ctx, knowledge.SeedDocuments())
	if err != nil {
		logger.Fatalf("seed failed: %v", err)
	}

	logger.Printf("seeded %d resources, %d chunks", stats.Resources, stats.Chunks)
	for resourceType, count := range stats.ByType {
		logger.Printf("  %s: %d", resourceType, count)
	}
}

func askCmd(cfg config.Config, logger *log.Logger, args []string) {
	flags := flag.NewFlagSet("ask", flag.ExitOnError)
	question := flags.String("question", "", "question to ask the knowledge base")
	if err := flags.Parse(args); err != nil {
		logger.Fatalf("parse ask flags: %v", err)
	}

	if strings.TrimSpace(*question) == "" && flags.NArg() > 0 {
		*question = strings.Join(flags.Args(), " ")
	}
	if strings.TrimSpace(*question) == "" {
		logger.Fatal("provide a question with --question or as arguments")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pool := mustPool(ctx, cfg, logger)
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool, cfg.Embeddings.Dimension); err != nil {
		logger.Fatalf("ensure schema: %v", err)
	}

	embedder, err := embeddings.NewEmbedder(cfg)
	if err != nil {
		logger.Fatalf("embedder setup: %v", err)
	}

	llmClient, err := llm.NewClient(cfg)
	if err != nil {
		logger.Fatalf("llm setup: %v", err)
	}

	store := corpus.NewPostgresStore(pool)
	index := corpus.NewIndex()
	if _, err := ingestion.NewService(store, index, embedder, logger).Reload(ctx); err != nil {
		logger.Fatalf("load corpus: %v", err)
	}

	svc := chat.NewService(index, embedder, llmClient, logger)

	answer, err := svc.AskStream(ctx, *question, func(chunk string) error {
		fmt.Print(chunk)
		return nil
	})
	if err != nil {
		logger.Fatalf("ask failed: %v", err)
	}

	fmt.Println()
	if len(answer.Sources) > 0 {
		fmt.Println()
		fmt.Println("Sources:")
		for idx, source := range answer.Sources {
			fmt.Printf("%d. [%s] %s (%s)\n", idx+1, strings.ToUpper(source.Type), source.Title, source.SourceID)
		}
	}
}

func clearCmd(cfg config.Config, logger *log.Logger, args []string) {
	flags := flag.NewFlagSet("clear", flag.ExitOnError)
	confirmed := flags.Bool("confirm", false, "skip confirmation prompt")
	if err := flags.Parse(args); err != nil {
		logger.Fatalf("parse clear flags: %v", err)
	}

	if !*confirmed {
		fmt.Print("This will permanently delete all ingested resources and embeddings. Continue? [y/N]: ")
		var answer string
		if _, err := fmt.Scanln(&answer); err != nil && err.Error() != "unexpected newline" {
			logger.Fatalf("read confirmation: %v", err)
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			logger.Println("clear aborted")
			return
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pool := mustPool(ctx, cfg, logger)
	defer pool.Close()

	if err := corpus.NewPostgresStore(pool).Clear(ctx); err != nil {
		logger.Fatalf("clear corpus: %v", err)
	}

	logger.Println("corpus cleared")
}

func mustPool(ctx context.Context, cfg config.Config, logger *log.Logger) *pgxpool.Pool {
	pool, err := database.NewPostgresPool(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Fatalf("postgres connection: %v", err)
	}
	return pool
}

func printUsage() {
	fmt.Println("Usage: knowledge-agent <command> [options]")
	fmt.Println("Commands:")
	fmt.Println("  serve    Start the HTTP API")
	fmt.Println("  seed     Rebuild the corpus from the seed documents")
	fmt.Println("  ask      Ask a question from the command line")
	fmt.Println("  clear    Delete all ingested resources and embeddings")
}
