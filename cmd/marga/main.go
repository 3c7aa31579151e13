package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"github.com/mecrobet/marga/internal/cli"
	"github.com/mecrobet/marga/internal/config"
	"github.com/mecrobet/marga/internal/db"
	"github.com/mecrobet/marga/internal/export"
	"github.com/mecrobet/marga/internal/intelligence"
	"github.com/mecrobet/marga/internal/llm"
	"github.com/mecrobet/marga/internal/logger"
	"github.com/mecrobet/marga/internal/repository"
	"github.com/mecrobet/marga/internal/roadmap"
	"github.com/mecrobet/marga/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(cfg.LogMode, logger.Options{Level: cfg.LogLevel, HashIDs: cfg.LogHashIDs})
	if err != nil {
		return err
	}
	defer log.Sync()

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	sessionRepo := repository.NewSQLiteStudySessionRepo(database)
	stateRepo := repository.NewSQLiteStateRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	// Wire the generation client. A missing API key is reported per call so
	// offline commands (steps, export, session) keep working.
	llmCfg := llm.LoadConfig()
	if !llmCfg.HasCredential() {
		log.Warn("no API key configured; generation commands will fail", "env", "GEMINI_API_KEY")
	}
	llmClient := llm.NewGeminiClient(llmCfg, llm.NewLogObserver(log))

	study := service.NewStudyService(
		sessionRepo,
		stateRepo,
		uow,
		intelligence.NewGenerator(llmClient),
		roadmap.HeadingSplitter{},
		export.NewBuilder(export.PatternRenderer{}),
		log,
		service.NewLogUseCaseObserver(log),
	)

	app := &cli.App{
		Study:       study,
		Log:         log,
		ExportDir:   cfg.ExportDir,
		Addr:        cfg.Addr,
		CORSOrigins: cfg.CORSOrigins,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	return cli.NewRootCmd(app).ExecuteContext(context.Background())
}
