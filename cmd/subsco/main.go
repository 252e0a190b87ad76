package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/subsco/subsco/internal/applog"
	"github.com/subsco/subsco/internal/config"
	"github.com/subsco/subsco/internal/model"
	"github.com/subsco/subsco/internal/storage"
	"github.com/subsco/subsco/internal/store"
	"github.com/subsco/subsco/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	if err := storage.RunMigrations(cfg.Database.Path); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := storage.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	// stdout belongs to the TUI, so the app log goes next to the database
	logger, closeLog := applog.Open(filepath.Join(filepath.Dir(cfg.Database.Path), "subsco.log"))
	defer closeLog()

	loc, err := time.LoadLocation(cfg.UI.Timezone)
	if err != nil {
		logger.Warn("using local timezone due to load failure", "err", err)
		loc = time.Local
	}

	st := store.New(db, logger, model.Language(cfg.UI.DefaultLanguage))

	p := tea.NewProgram(tui.New(ctx, cfg, st, logger, loc), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
