package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"indexdesk/internal/adapters/clipboard"
	"indexdesk/internal/adapters/editor"
	"indexdesk/internal/adapters/meili"
	"indexdesk/internal/adapters/sqlite"
	"indexdesk/internal/adapters/tui"
	"indexdesk/internal/config"
	"indexdesk/internal/logger"
	"indexdesk/internal/ports"
)

var rootCmd = &cobra.Command{
	Use:   "indexdesk",
	Short: "Terminal console for a Meilisearch index",
	Long: `indexdesk browses, searches and edits the documents of a
Meilisearch-compatible search engine from the terminal.

Settings are read from indexdesk.yaml, INDEXDESK_* environment variables
and the flags below, in increasing order of precedence.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	config.RegisterFlags(rootCmd.Flags())
	rootCmd.Flags().StringP("index", "i", "", "open this index directly")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath, cmd.Flags())
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.Level, cfg.LogPath())
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	engine := meili.New(cfg.Host,
		meili.WithAPIKey(cfg.APIKey),
		meili.WithTimeout(cfg.Timeout),
		meili.WithLogger(log),
	)

	// A nil journal disables the task history; the console still works.
	var journal ports.TaskJournal
	if !cfg.Journal.Disabled {
		path := cfg.Journal.Path
		if path == "" {
			path = sqlite.DefaultPath(cfg.Host)
		}
		j, err := sqlite.Open(path)
		if err != nil {
			log.Warn("task journal unavailable", zap.String("path", path), zap.Error(err))
		} else {
			j.SetRetention(cfg.Journal.Retention)
			defer j.Close()
			journal = j
		}
	}

	var clip ports.Clipboard
	if sys := (clipboard.System{}); sys.Available() {
		clip = sys
	}

	log.Info("starting indexdesk",
		zap.String("host", cfg.Host),
		zap.String("config", cfg.Source),
	)

	app := tui.NewApp(tui.Options{
		Engine:     engine,
		Journal:    journal,
		Clipboard:  clip,
		Editor:     editor.NewOpener(),
		Logger:     log,
		PollIndex:  cfg.Poll.Index,
		PollSearch: cfg.Poll.Search,
		ToastTTL:   cfg.Toast.Timeout,
		Index:      cfg.Index,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
