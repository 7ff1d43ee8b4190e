package formsdk

import (
	"net/http"
	"strings"
	"time"
)

// SDKClient talks to one formulaire deployment.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// Prefix is prepended to every route, for example "/api" when the
	// service sits behind the same paths as the original deployment.
	Prefix string
}

// NewSDKClient creates a client for baseURL.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}
