package market

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"

	"github.com/stellarpath/route-engine/internal/metrics"
)

// BackendSupplier fetches pair snapshots for one protocol from the pair
// aggregation backend.
type BackendSupplier struct {
	client   *http.Client
	baseURL  string
	apiKey   string
	network  string
	protocol string
	log      zerolog.Logger
}

func NewBackendSupplier(baseURL, apiKey, network, protocol string, log zerolog.Logger) *BackendSupplier {
	return &BackendSupplier{
		client:   &http.Client{Timeout: 10 * time.Second},
		baseURL:  baseURL,
		apiKey:   apiKey,
		network:  network,
		protocol: protocol,
		log:      log.With().Str("component", "pair-backend").Str("protocol", protocol).Logger(),
	}
}

func (s *BackendSupplier) Pairs(ctx context.Context) ([]PairRecord, error) {
	endpoint := fmt.Sprintf("%s/pairs/all?network=%s&protocols=%s",
		s.baseURL, url.QueryEscape(s.network), url.QueryEscape(s.protocol))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building pair request: %w", err)
	}
	req.Header.Set("apiKey", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		metrics.PairFetchFailures.WithLabelValues(s.protocol).Inc()
		return nil, fmt.Errorf("fetching pairs for %s: %w", s.protocol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.PairFetchFailures.WithLabelValues(s.protocol).Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		s.log.Warn().Int("status", resp.StatusCode).Bytes("body", body).Msg("pair backend returned non-200")
		return nil, fmt.Errorf("pair backend returned status %d for %s", resp.StatusCode, s.protocol)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.PairFetchFailures.WithLabelValues(s.protocol).Inc()
		return nil, fmt.Errorf("reading pair response: %w", err)
	}
	var records []PairRecord
	if err := sonic.Unmarshal(raw, &records); err != nil {
		metrics.PairFetchFailures.WithLabelValues(s.protocol).Inc()
		return nil, fmt.Errorf("decoding pair response for %s: %w", s.protocol, err)
	}

	metrics.PairsFetched.WithLabelValues(s.protocol).Set(float64(len(records)))
	s.log.Debug().Int("pairs", len(records)).Msg("fetched pair snapshot")
	return records, nil
}
