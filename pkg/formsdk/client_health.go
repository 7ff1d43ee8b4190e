package formsdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrNotReady is returned by GetReadiness when the intake service answers
// but one of its backends is failing.
var ErrNotReady = errors.New("formulaire: service not ready")

// GetLiveness reports the build version and uptime of the intake service.
// It only proves the process answers; backends are not consulted.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/livez", nil, nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}

	return &health, nil
}

// GetReadiness asks whether the registrations database and the upload
// storage both answer. A degraded service still yields its report, together
// with an error wrapping ErrNotReady that names the failing backends.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/readyz", nil, nil)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusServiceUnavailable {
		var health HealthResponse
		if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
			return nil, err
		}
		return &health, nil
	}

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("formulaire: read readiness report: %w", err)
	}

	var health HealthResponse
	if err := json.Unmarshal(body, &health); err != nil || health.Checks == nil {
		return nil, parseErrorResponse(resp, body)
	}

	return &health, fmt.Errorf("%w: %s", ErrNotReady, failingChecks(health.Checks))
}

func failingChecks(checks *HealthChecks) string {
	var failing []string
	if checks.Database != "ok" {
		failing = append(failing, "database "+checks.Database)
	}
	if checks.Storage != "ok" {
		failing = append(failing, "storage "+checks.Storage)
	}
	if len(failing) == 0 {
		return "status degraded"
	}
	return strings.Join(failing, ", ")
}
