package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gcp-hcp/gcphcp/internal/clierr"
)

const healthCheckTimeout = 5 * time.Second

// CheckHealth probes the API's unauthenticated health endpoint. Used
// to verify an endpoint before persisting it.
func CheckHealth(ctx context.Context, endpoint string) error {
	base, err := url.Parse(endpoint)
	if err != nil {
		return clierr.Wrap(clierr.Config, "invalid api_endpoint", err)
	}
	u := *base
	u.Path = strings.TrimSuffix(u.Path, "/") + "/health"

	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return clierr.Wrap(clierr.Internal, "failed to build health request", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return clierr.Wrap(clierr.Network, "health check failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return clierr.Newf(clierr.Server, "health check returned HTTP %d", resp.StatusCode)
	}
	return nil
}
