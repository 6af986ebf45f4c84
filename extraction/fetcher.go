package extraction

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"substitution-plan-notifier/configuration"
)

// Fetcher downloads the plan PDF of a weekday.
type Fetcher struct {
	client   *http.Client
	settings configuration.SourceSettings
}

func NewFetcher(settings configuration.SourceSettings) *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: settings.Timeout}, settings: settings}
}

func (f *Fetcher) SourceUrl(weekday time.Weekday) string {
	return f.settings.Url(weekday)
}

func (f *Fetcher) FetchWeekday(ctx context.Context, weekday time.Weekday) ([]byte, error) {
	url := f.settings.Url(weekday)

	if url == "" {
		return nil, fmt.Errorf("no source url for %s", weekday)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)

	if err != nil {
		return nil, err
	}

	if f.settings.Username != "" {
		request.SetBasicAuth(f.settings.Username, f.settings.Password)
	}

	response, err := f.client.Do(request)

	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, response.Status)
	}

	return io.ReadAll(response.Body)
}
