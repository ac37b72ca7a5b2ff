package custody

import (
	"time"

	httpClient "github.com/keygrant/keygrant-api/internal/client/http"
)

// Client talks to the wallet custody provider's REST API. The provider holds
// the private-key shares and broadcasts signed transactions; this client only
// requests delegation challenges and reads their state.
type Client struct {
	httpClient *httpClient.HTTPClient
	apiKey     string
}

// Config holds the custody provider connection settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// NewClient creates a new custody provider client.
func NewClient(config Config) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: httpClient.NewHTTPClient(
			httpClient.WithBaseURL(config.BaseURL),
			httpClient.WithTimeout(timeout),
		),
		apiKey: config.APIKey,
	}
}
