package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"hostel-agent/config"
	apperrors "hostel-agent/errors"

	"go.uber.org/zap"
)

// Client fetches the dashboard summary snapshot the fact table is built
// from. It runs once at startup; there is no refresh loop and no retry —
// a failed fetch is fatal to the process.
type Client struct {
	cfg        *config.Config
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		logger:     logger,
	}
}

// FetchSummary retrieves the dashboard summary payload using the configured
// bearer credential and flattens it into a Summary.
func (c *Client) FetchSummary(ctx context.Context) (*Summary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.DashboardAPIURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create dashboard request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.DashboardAPIToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDashboardUnavailable, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read dashboard response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Wrapf(apperrors.ErrDashboardUnavailable, "dashboard server status %s: %s", resp.Status, string(body))
	}

	var envelope summaryEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode dashboard summary: %w", err)
	}
	if len(envelope.Data) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "dashboard summary carried no data")
	}

	summary := envelope.toSummary()
	c.logger.Info("Fetched dashboard summary", zap.Int("entries", len(summary.Entries)))
	return summary, nil
}
