// Package cli implements the smartqueue command line interface. Every
// command operates in-process against the score document on disk, so the
// CLI works without the API server running.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"smart-queue-service/internal/app/service"
	"smart-queue-service/internal/infra/jsonstore"
	"smart-queue-service/internal/infra/library"
)

// AppContext carries the shared state every subcommand needs.
type AppContext struct {
	ScoreFile   string
	HistoryFile string
	Version     string
}

// Execute runs the root command and returns a process exit code.
func Execute(version string) int {
	app := &AppContext{Version: version}
	root := newRootCommand(app)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		return 1
	}
	return 0
}

func newRootCommand(app *AppContext) *cobra.Command {
	root := &cobra.Command{
		Use:   "smartqueue",
		Short: "Inspect and update the smart queue score document",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors:     true,
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}

	root.PersistentFlags().StringVarP(&app.ScoreFile, "file", "f", "data/video_scores.json", "Path to the score document")
	root.PersistentFlags().StringVar(&app.HistoryFile, "history", "data/download_history.json", "Path to the download history")

	root.AddCommand(newTopCommand(app))
	root.AddCommand(newStatsCommand(app))
	root.AddCommand(newPlayCommand(app))
	root.AddCommand(newRefreshCommand(app))
	root.AddCommand(newVersionCommand(app))

	return root
}

func newVersionCommand(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version info",
		Run: func(cmd *cobra.Command, args []string) {
			version := app.Version
			if version == "" {
				version = "dev"
			}
			fmt.Fprintln(cmd.OutOrStdout(), "smartqueue", version)
		},
	}
}

// services wires the shared service layer against the configured files.
// The CLI runs without Redis, so the cache is nil and every ranking is
// computed from the document directly.
func (app *AppContext) services() (*service.ScoringService, *service.RankingService) {
	log := zap.NewNop()
	store := jsonstore.New(app.ScoreFile, log)
	index := library.NewHistoryIndex(app.HistoryFile, log)

	scoring := service.NewScoringService(store, nil, log)
	ranking := service.NewRankingService(store, index, nil, 0, log)
	return scoring, ranking
}
