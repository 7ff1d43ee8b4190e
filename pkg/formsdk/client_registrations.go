package formsdk

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// ListRegistrations returns every registration, newest first.
func (c *SDKClient) ListRegistrations(ctx context.Context) ([]Registration, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/registrations", nil, nil)
	if err != nil {
		return nil, err
	}

	var out RegistrationsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Registrations, nil
}

// DeleteRegistration deletes a registration and its stored files.
func (c *SDKClient) DeleteRegistration(ctx context.Context, id string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/registrations?id="+url.QueryEscape(id), nil, nil)
	if err != nil {
		return err
	}

	var out MessageResponse
	return decodeJSON(resp, &out, http.StatusOK)
}

// GetStats returns registration counts.
func (c *SDKClient) GetStats(ctx context.Context) (*Stats, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/stats", nil, nil)
	if err != nil {
		return nil, err
	}

	var out StatsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Stats, nil
}

// ExportExcel downloads the xlsx export and returns its bytes along with the
// file name the service suggested.
func (c *SDKClient) ExportExcel(ctx context.Context) ([]byte, string, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/export-excel", nil, nil)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", parseErrorResponse(resp, body)
	}

	return body, attachmentName(resp.Header.Get("Content-Disposition")), nil
}
