// ABOUTME: Aggregate counters and backend health probe
// ABOUTME: Feeds the live monitor header and the readiness endpoint

package aira

import "context"

// GetStats fetches the aggregate call counters.
func (c *Client) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	err := c.get(ctx, "/api/stats", nil, &stats)
	if err != nil {
		if c.allowMock("stats.get", err) {
			return mockStats(), nil
		}
		return nil, err
	}
	return &stats, nil
}

// Health probes the backend health endpoint. No mock fallback: a dev console
// still needs to know the backend is actually down.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var status HealthStatus
	if err := c.get(ctx, "/api/health", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
