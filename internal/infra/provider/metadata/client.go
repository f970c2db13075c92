// Package metadata implements the catalog client for the downloader
// collaborator's metadata export.
package metadata

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"smart-queue-service/internal/domain"
	"smart-queue-service/internal/infra/provider"
)

// Endpoint is the API path for the collaborator's catalog export.
const Endpoint = "/api/catalog"

// SourceName identifies this source in logs and the admin API.
const SourceName = "metadata"

// Client implements domain.VideoSource for the metadata catalog.
type Client struct {
	name   string
	client *resty.Client
	cb     *gobreaker.CircuitBreaker[*resty.Response]
	logger *zap.Logger
}

// New creates a new catalog client.
func New(cfg provider.ClientConfig, logger *zap.Logger) *Client {
	return &Client{
		name:   SourceName,
		client: provider.NewRestyClient(cfg),
		cb:     provider.NewCircuitBreaker[*resty.Response](SourceName, cfg.CB),
		logger: logger,
	}
}

// Name returns the source identifier.
func (c *Client) Name() string {
	return c.name
}

// Fetch retrieves the current metadata catalog.
func (c *Client) Fetch(ctx context.Context) ([]domain.VideoMetadata, error) {
	resp, err := c.cb.Execute(func() (*resty.Response, error) {
		var result Response
		r, err := c.client.R().
			SetContext(ctx).
			SetResult(&result).
			Get(Endpoint)
		if err != nil {
			return nil, err
		}
		if r.IsError() {
			return nil, fmt.Errorf("metadata source returned status %d", r.StatusCode())
		}

		return r, nil
	})

	if err != nil {
		c.logger.Warn("metadata fetch failed",
			zap.Error(err),
			zap.String("state", c.cb.State().String()),
		)

		return nil, fmt.Errorf("fetching metadata catalog: %w", err)
	}

	result := resp.Result().(*Response)
	metas := make([]domain.VideoMetadata, 0, len(result.Videos))
	for _, item := range result.Videos {
		metas = append(metas, item.ToDomain())
	}

	c.logger.Info("metadata fetch completed",
		zap.Int("count", len(metas)),
	)

	return metas, nil
}

// HealthCheck verifies the source is accessible.
func (c *Client) HealthCheck(ctx context.Context) error {
	resp, err := c.client.R().
		SetContext(ctx).
		Get("/health")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("health check returned status %d", resp.StatusCode())
	}

	return nil
}
