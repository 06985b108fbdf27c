package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"miraiz/internal/config"
	"miraiz/internal/model"

	"github.com/sirupsen/logrus"
)

// Fetcher performs the bounded-timeout call to the partner catalog.
//
// The fetch is fail-open: any timeout, transport error, non-2xx status, or
// undecodable body yields an empty-but-successful response instead of an
// error. Catalog readers only need best-effort data; operators see the
// failure in the logs, clients never do.
type Fetcher struct {
	url    string
	apiKey string
	client *http.Client
	logger *logrus.Logger
}

// NewFetcher creates a fetcher for the configured catalog URL.
func NewFetcher(cfg config.CatalogConfig, logger *logrus.Logger) *Fetcher {
	return &Fetcher{
		url:    cfg.URL,
		apiKey: cfg.APIKey,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSecs) * time.Second,
		},
		logger: logger,
	}
}

// Fetch retrieves and normalizes the catalog. The returned response always
// has Success=true; on any upstream failure Data is empty.
func (f *Fetcher) Fetch(ctx context.Context) *model.CatalogResponse {
	resp, err := f.fetch(ctx)
	if err != nil {
		f.logger.WithError(err).Warn("catalog fetch failed, serving empty catalog")
		return &model.CatalogResponse{Success: true, Data: []*model.PropertyItem{}}
	}
	return resp
}

func (f *Fetcher) fetch(ctx context.Context) (*model.CatalogResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if f.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.apiKey)
	}

	res, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach catalog: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d", res.StatusCode)
	}

	var api model.CatalogResponse
	if err := json.NewDecoder(res.Body).Decode(&api); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}
	if api.Data == nil {
		api.Data = []*model.PropertyItem{}
	}

	// Collapse accented/plain key variants once, right after the fetch.
	for _, p := range api.Data {
		p.Normalize()
	}
	api.Success = true

	return &api, nil
}
