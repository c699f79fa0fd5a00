package verify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shelftrack/shelftrack-api/internal/application/auth"
)

var _ auth.LibrarianVerifier = (*HTTPVerifier)(nil)

// HTTPVerifier checks a librarian id against an external staff registry:
// GET <base-url>?librarian_id=<id> with a bearer header. Any 2xx means
// verified; 4xx means rejected; anything else is an infrastructure error and
// registration fails without creating the account.
type HTTPVerifier struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPVerifier builds the verifier for the configured registry URL.
func NewHTTPVerifier(baseURL, token string) *HTTPVerifier {
	return &HTTPVerifier{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Verify calls the registry.
func (v *HTTPVerifier) Verify(ctx context.Context, librarianID string) (bool, error) {
	if librarianID == "" {
		return false, nil
	}
	u, err := url.Parse(v.baseURL)
	if err != nil {
		return false, fmt.Errorf("verify: parse url: %w", err)
	}
	q := u.Query()
	q.Set("librarian_id", librarianID)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return false, fmt.Errorf("verify: build request: %w", err)
	}
	if v.token != "" {
		req.Header.Set("Authorization", "Bearer "+v.token)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("verify: call registry: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return true, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return false, nil
	default:
		return false, fmt.Errorf("verify: registry returned %d", resp.StatusCode)
	}
}
