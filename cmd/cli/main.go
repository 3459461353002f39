package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/pennywise-ai/pennywise/internal/classifier"
	"github.com/pennywise-ai/pennywise/internal/config"
	"github.com/pennywise-ai/pennywise/internal/domain"
	"github.com/pennywise-ai/pennywise/internal/gemini"
	"github.com/pennywise-ai/pennywise/internal/logger"
	"github.com/pennywise-ai/pennywise/internal/pipeline"
	"github.com/pennywise-ai/pennywise/internal/recurring"
	"github.com/pennywise-ai/pennywise/internal/store"
	"github.com/pennywise-ai/pennywise/internal/store/boltstore"
	"github.com/rs/zerolog"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "classify":
		runClassify(cfg, log)
	case "add":
		runAdd(cfg, log)
	case "list":
		runList(cfg, log)
	case "seed":
		runSeed(cfg, log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("PennyWise CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  pennywise <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  classify  Classify a transaction description without storing it")
	fmt.Println("  add       Categorize and store a transaction")
	fmt.Println("  list      List stored transactions")
	fmt.Println("  seed      Load the demo ledger into an empty store")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nRun 'pennywise <command> -h' for more information on a command.")
}

// openStore opens the configured storage backend. The CLI shares its store
// with the API server when both use the bolt backend.
func openStore(cfg *config.Config, log zerolog.Logger) (store.Store, func()) {
	if cfg.Backend != config.BackendBolt {
		log.Fatal().Msg("CLI storage commands need PENNYWISE_BACKEND=bolt; the memory backend does not outlive the process")
	}
	bs, err := boltstore.Open(cfg.BoltPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.BoltPath).Msg("Failed to open store")
	}
	return bs, func() { bs.Close() }
}

func newPipeline(ctx context.Context, cfg *config.Config, log zerolog.Logger) *pipeline.Service {
	rules := classifier.New()
	if cfg.RulesPath != "" {
		loaded, err := classifier.LoadRules(cfg.RulesPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.RulesPath).Msg("Failed to load rules file")
		}
		rules, err = classifier.NewWithRules(loaded)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.RulesPath).Msg("Invalid rules file")
		}
	}

	var ai pipeline.Categorizer
	if cfg.GeminiAPIKey != "" {
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create Gemini client")
		}
		ai = client
	}

	return pipeline.NewService(ai, rules, log)
}

func runClassify(cfg *config.Config, log zerolog.Logger) {
	fs := flag.NewFlagSet("classify", flag.ExitOnError)
	text := fs.String("text", "", "Transaction description to classify")
	amount := fs.Float64("amount", 0, "Transaction amount")
	fs.Parse(os.Args[2:])

	if *text == "" {
		log.Fatal().Msg("Error: --text is required")
	}
	if err := domain.ValidateNewTransaction(*text, *amount); err != nil {
		log.Fatal().Err(err).Msg("Invalid input")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cls := newPipeline(ctx, cfg, log).CategorizeTransaction(ctx, *text, *amount)
	printClassification(cls)
}

func runAdd(cfg *config.Config, log zerolog.Logger) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	text := fs.String("text", "", "Transaction description")
	amount := fs.Float64("amount", 0, "Transaction amount")
	date := fs.String("date", "", "Transaction date (YYYY-MM-DD, defaults to today)")
	fs.Parse(os.Args[2:])

	if *text == "" {
		log.Fatal().Msg("Error: --text is required")
	}
	if err := domain.ValidateNewTransaction(*text, *amount); err != nil {
		log.Fatal().Err(err).Msg("Invalid input")
	}

	when := time.Now()
	if *date != "" {
		parsed, err := time.Parse("2006-01-02", *date)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid date, want YYYY-MM-DD")
		}
		when = parsed
	}

	s, closeStore := openStore(cfg, log)
	defer closeStore()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cls := newPipeline(ctx, cfg, log).CategorizeTransaction(ctx, *text, *amount)

	tx := domain.Transaction{
		ID:          uuid.New().String(),
		RawText:     *text,
		Merchant:    cls.Merchant,
		Amount:      *amount,
		Date:        when,
		Category:    cls.Category,
		SubCategory: cls.SubCategory,
		Necessity:   cls.Necessity,
		Sentiment:   cls.Sentiment,
	}
	if err := s.Append(ctx, tx); err != nil {
		log.Fatal().Err(err).Msg("Failed to store transaction")
	}

	color.Green("Stored %s", tx.ID)
	printClassification(cls)
}

func runList(cfg *config.Config, log zerolog.Logger) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	fs.Parse(os.Args[2:])

	s, closeStore := openStore(cfg, log)
	defer closeStore()

	ctx := context.Background()
	txs, err := s.List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list transactions")
	}
	if len(txs) == 0 {
		fmt.Println("No transactions stored.")
		return
	}

	var total float64
	for _, tx := range recurring.Flag(txs) {
		marker := " "
		if tx.IsRecurring {
			marker = color.CyanString("R")
		}
		fmt.Printf("%s %s  %-28s %10.2f  %s/%s  %s\n",
			marker,
			tx.Date.Format("2006-01-02"),
			tx.Merchant,
			tx.Amount,
			tx.Category,
			tx.SubCategory,
			tx.Necessity,
		)
		total += tx.Amount
	}
	fmt.Println()
	color.Yellow("Total: %.2f across %d transactions", total, len(txs))
}

func runSeed(cfg *config.Config, log zerolog.Logger) {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	fs.Parse(os.Args[2:])

	s, closeStore := openStore(cfg, log)
	defer closeStore()

	n, err := store.SeedIfEmpty(context.Background(), s)
	if err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}
	if n == 0 {
		fmt.Println("Store already has transactions, nothing seeded.")
		return
	}
	color.Green("Seeded %d demo transactions", n)
}

func printClassification(cls domain.Classification) {
	fmt.Printf("Merchant:    %s\n", cls.Merchant)
	fmt.Printf("Category:    %s\n", color.CyanString(string(cls.Category)))
	fmt.Printf("SubCategory: %s\n", cls.SubCategory)
	fmt.Printf("Necessity:   %s\n", cls.Necessity)
	fmt.Printf("Sentiment:   %s\n", cls.Sentiment)
}
