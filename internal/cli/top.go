package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"smart-queue-service/internal/app/service"
	"smart-queue-service/internal/domain"
)

func newTopCommand(app *AppContext) *cobra.Command {
	var slot string
	var limit int
	var playlist string
	var noNew bool

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Print the ranked queue for a time slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ranking := app.services()

			params := service.QueueParams{
				Slot:               domain.SlotName(slot),
				Limit:              limit,
				IncludeNewReleases: !noNew,
				PlaylistID:         playlist,
			}

			ranked, resolvedSlot, err := ranking.TopVideos(cmd.Context(), params)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Time slot: %s\n\n", resolvedSlot)

			if len(ranked) == 0 {
				fmt.Fprintln(out, "No scored videos.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "#\tID\tSCORE\tVIEWS\tNEW\tTITLE")
			for i, v := range ranked {
				marker := ""
				if v.IsNewRelease {
					marker = "*"
				}
				fmt.Fprintf(w, "%d\t%s\t%.2f\t%d\t%s\t%s\n",
					i+1, v.ID, v.Score, v.YouTubeViews, marker, v.Title)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&slot, "slot", "s", "", "Time slot (defaults to the current UTC hour's slot)")
	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Number of videos to rank")
	cmd.Flags().StringVarP(&playlist, "playlist", "p", "", "Restrict ranking to one playlist")
	cmd.Flags().BoolVar(&noNew, "no-new", false, "Disable the new release quota")

	return cmd
}
