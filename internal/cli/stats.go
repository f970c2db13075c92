package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCommand(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize the score document",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ranking := app.services()

			stats, err := ranking.Stats(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Videos:        %d (%d scored, %d played)\n",
				stats.TotalVideos, stats.ScoredVideos, stats.PlayedVideos)
			fmt.Fprintf(out, "New releases:  %d\n", stats.NewReleases)
			fmt.Fprintf(out, "Playlists:     %d\n", stats.Playlists)
			fmt.Fprintf(out, "Average score: %.2f\n", stats.AverageScore)
			if stats.HighestScored != "" {
				fmt.Fprintf(out, "Top video:     %s (%.2f)\n", stats.HighestScored, stats.HighestScore)
			}
			if stats.LastUpdated != nil {
				fmt.Fprintf(out, "Last updated:  %s\n", stats.LastUpdated.Format("2006-01-02 15:04:05 MST"))
			}
			return nil
		},
	}
}
