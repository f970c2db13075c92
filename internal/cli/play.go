package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"smart-queue-service/internal/domain"
)

func newPlayCommand(app *AppContext) *cobra.Command {
	var slot string
	var chat int
	var viewerChange int
	var avgViewers int
	var returningPct float64

	cmd := &cobra.Command{
		Use:   "play VIDEO_ID",
		Short: "Record a playback segment for a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoID := args[0]
			scoring, _ := app.services()

			resolvedSlot := domain.SlotName(slot)
			if resolvedSlot == "" {
				resolvedSlot = domain.SlotForHour(time.Now().UTC().Hour())
			}

			sample := domain.StreamMetrics{
				ChatMessages:              chat,
				ViewerChange:              viewerChange,
				AvgViewersDuringSegment:   avgViewers,
				ReturningViewerPercentage: returningPct,
			}

			known, err := scoring.RecordPlayEvent(cmd.Context(), videoID, resolvedSlot, sample)
			if err != nil {
				return err
			}
			if !known {
				return fmt.Errorf("video %q is not in the score document, refresh first", videoID)
			}

			rec, err := scoring.GetVideo(cmd.Context(), videoID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Recorded play %d for %s in %s\n",
				rec.StreamMetrics.TimesPlayed, videoID, resolvedSlot)
			if rec.Scores != nil {
				fmt.Fprintf(out, "Total score: %.2f (base %.2f, engagement %.2f)\n",
					rec.Scores.TotalScore, rec.Scores.EnhancedBaseScore, rec.Scores.EngagementScore)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&slot, "slot", "s", "", "Time slot (defaults to the current UTC hour's slot)")
	cmd.Flags().IntVar(&chat, "chat", 0, "Chat messages during the segment")
	cmd.Flags().IntVar(&viewerChange, "viewer-change", 0, "Viewer count change during the segment")
	cmd.Flags().IntVar(&avgViewers, "avg-viewers", 0, "Average viewers during the segment")
	cmd.Flags().Float64Var(&returningPct, "returning-pct", 0, "Returning viewer share (0..1)")

	return cmd
}
