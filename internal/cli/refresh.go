package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"smart-queue-service/internal/app/service"
	"smart-queue-service/internal/domain"
	"smart-queue-service/internal/infra/provider"
	"smart-queue-service/internal/infra/provider/metadata"
)

func newRefreshCommand(app *AppContext) *cobra.Command {
	var baseURL string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Pull fresh catalog metadata and rescore the library",
		RunE: func(cmd *cobra.Command, args []string) error {
			scoring, _ := app.services()

			source := metadata.New(provider.ClientConfig{
				BaseURL: baseURL,
				Timeout: timeout,
				Retry: provider.RetryConfig{
					MaxAttempts: 3,
					WaitTime:    time.Second,
					MaxWaitTime: 5 * time.Second,
				},
				CB: provider.CBConfig{
					MaxRequests:  3,
					Interval:     time.Minute,
					Timeout:      30 * time.Second,
					FailureRatio: 0.5,
				},
			}, zap.NewNop())

			refresh := service.NewRefreshService([]domain.VideoSource{source}, scoring, zap.NewNop())

			result, err := refresh.RefreshSource(cmd.Context(), source.Name())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Refreshed %d videos from %s in %s\n",
				result.Videos, baseURL, result.Duration.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "url", "http://localhost:8081", "Metadata source base URL")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	return cmd
}
