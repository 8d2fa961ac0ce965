package promaster

import (
	"context"
	"net/http"

	"github.com/j-veylop/promaster-tui/internal/models"
)

// Dashboard fetches the dashboard payload of the signed-in user.
func (c *Client) Dashboard(ctx context.Context, token string) (*models.DashboardData, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	body, _, err := c.do(ctx, http.MethodGet, dashboardPath, token, nil)
	if err != nil {
		return nil, err
	}

	var data models.DashboardData
	if err := decodeResult(body, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Showcase lists projects matching the filter.
func (c *Client) Showcase(ctx context.Context, token string, filter models.ShowcaseFilter) ([]models.ShowcaseProject, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	body, _, err := c.do(ctx, http.MethodPost, showcasePath, token, filter)
	if err != nil {
		return nil, err
	}

	projects := make([]models.ShowcaseProject, 0)
	if err := decodeResult(body, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}
