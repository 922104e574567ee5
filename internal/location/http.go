package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPProvider fetches the current fix from an HTTP endpoint, typically a
// companion app or gateway on the driver's device that exposes the last
// known position as JSON ({"latitude": .., "longitude": .., "accuracyMeters": ..,
// "timestamp": ..}).
type HTTPProvider struct {
	url    string
	client *http.Client
}

// NewHTTPProvider builds a provider polling the given URL. A nil client
// falls back to a client with a 10 second timeout.
func NewHTTPProvider(url string, client *http.Client) *HTTPProvider {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPProvider{url: url, client: client}
}

// CurrentFix requests the current position from the fix source.
// Any transport error, non-200 status, or malformed body fails the call;
// there is no retry or caching here.
func (p *HTTPProvider) CurrentFix(ctx context.Context) (Fix, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return Fix{}, fmt.Errorf("location.HTTPProvider.CurrentFix: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return Fix{}, fmt.Errorf("location.HTTPProvider.CurrentFix: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Fix{}, fmt.Errorf("location.HTTPProvider.CurrentFix: fix source returned %s", resp.Status)
	}

	var fix Fix
	if err := json.NewDecoder(resp.Body).Decode(&fix); err != nil {
		return Fix{}, fmt.Errorf("location.HTTPProvider.CurrentFix: decode: %w", err)
	}
	if fix.Timestamp.IsZero() {
		fix.Timestamp = time.Now()
	}

	return fix, nil
}
