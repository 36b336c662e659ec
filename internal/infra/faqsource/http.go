package faqsource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yanqian/faq-assistant/internal/domain/faq"
)

const maxTableBytes = 8 << 20 // 8 MiB

// HTTPSource downloads the table with a single GET per load.
type HTTPSource struct {
	url        string
	httpClient *http.Client
}

// NewHTTPSource builds a source for url.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSource{
		url: strings.TrimSpace(url),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name implements faq.Source.
func (s *HTTPSource) Name() string {
	return "http:" + s.url
}

// Load implements faq.Source.
func (s *HTTPSource) Load(ctx context.Context) (faq.RecordSet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build faq request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("faq request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("faq request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	body, err := readTable(resp.Body, maxTableBytes)
	if err != nil {
		return nil, fmt.Errorf("read faq response: %w", err)
	}
	return faq.ParseRecords(body), nil
}

// readTable reads at most limit bytes and fails rather than parse a cut-off table.
func readTable(r io.Reader, limit int64) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > limit {
		return "", fmt.Errorf("faq table exceeds %d bytes", limit)
	}
	return string(data), nil
}

var _ faq.Source = (*HTTPSource)(nil)
