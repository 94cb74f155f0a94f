package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"indexdesk/internal/adapters/meili"
	"indexdesk/internal/adapters/sqlite"
	"indexdesk/internal/config"
	"indexdesk/internal/logger"
	"indexdesk/internal/ports"
)

var (
	cfg     *config.Config
	log     *zap.Logger
	engine  ports.SearchEngine
	journal *sqlite.Journal
	ctx     = context.Background()
	output  string
)

var rootCmd = &cobra.Command{
	Use:   "indexdesk-cli",
	Short: "CLI for a Meilisearch index",
	Long: `indexdesk-cli lists indexes, searches documents and enqueues
document mutations on a Meilisearch-compatible search engine.

Mutations are recorded in a local task journal so their status can be
looked up later with "indexdesk-cli tasks".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		cfgPath, _ := cmd.Flags().GetString("config")
		var err error
		cfg, err = config.Load(cfgPath, cmd.Flags())
		if err != nil {
			return err
		}

		log, err = logger.New(cfg.Log.Level, cfg.Log.File)
		if err != nil {
			return err
		}
		ctx = logger.ContextWithLogger(context.Background(), log)

		engine = meili.New(cfg.Host,
			meili.WithAPIKey(cfg.APIKey),
			meili.WithTimeout(cfg.Timeout),
			meili.WithLogger(log),
		)

		if cfg.Journal.Disabled {
			return nil
		}
		path := cfg.Journal.Path
		if path == "" {
			path = sqlite.DefaultPath(cfg.Host)
		}
		j, err := sqlite.Open(path)
		if err != nil {
			log.Warn("task journal unavailable", zap.String("path", path), zap.Error(err))
			return nil
		}
		j.SetRetention(cfg.Journal.Retention)
		journal = j
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if log != nil {
			_ = log.Sync()
		}
		if journal != nil {
			return journal.Close()
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "text", "output format: text, json, yaml")
}

// GetEngine returns the initialized search engine client
func GetEngine() ports.SearchEngine {
	return engine
}

// GetJournal returns the task journal, or nil when it is disabled or
// could not be opened
func GetJournal() ports.TaskJournal {
	if journal == nil {
		return nil
	}
	return journal
}

// GetContext returns a context carrying the command logger
func GetContext() context.Context {
	return ctx
}
