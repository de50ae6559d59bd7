package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/geoquick/pkg/buildinfo"
	"github.com/matzehuels/geoquick/pkg/errors"
	"github.com/matzehuels/geoquick/pkg/httputil"
	"github.com/matzehuels/geoquick/pkg/observability"
)

// DefaultFetchTTL is how long downloaded datasets stay fresh in the cache.
const DefaultFetchTTL = time.Hour

// maxDownload caps the size of a downloaded dataset.
const maxDownload = 64 << 20

// Fetcher downloads CSV datasets over HTTP.
// It handles Google Sheets link rewriting, caching and retries.
type Fetcher struct {
	http    *http.Client
	cache   *httputil.Cache
	refresh bool
}

// NewFetcher creates a Fetcher. A nil cache disables caching.
func NewFetcher(cache *httputil.Cache) *Fetcher {
	return &Fetcher{
		http:  &http.Client{Timeout: 30 * time.Second},
		cache: cache,
	}
}

// WithRefresh returns a copy of f that bypasses cached responses.
func (f *Fetcher) WithRefresh(refresh bool) *Fetcher {
	c := *f
	c.refresh = refresh
	return &c
}

// WithHTTPClient returns a copy of f that uses hc for requests.
func (f *Fetcher) WithHTTPClient(hc *http.Client) *Fetcher {
	c := *f
	c.http = hc
	return &c
}

// Fetch downloads rawURL and decodes it as comma-separated text.
// Google Sheets share links are rewritten with [SheetCSVURL] first.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Dataset, error) {
	if err := errors.ValidateURL(rawURL); err != nil {
		return nil, err
	}
	url := rawURL
	if IsSheetURL(rawURL) {
		u, err := SheetCSVURL(rawURL)
		if err != nil {
			return nil, err
		}
		url = u
	}

	text, err := f.cached(ctx, url)
	if err != nil {
		return nil, err
	}
	return ReadCSV(strings.NewReader(text), ',')
}

func (f *Fetcher) cached(ctx context.Context, url string) (string, error) {
	key := "csv:" + url
	var text string
	if f.cache != nil && !f.refresh {
		if ok, _ := f.cache.Get(key, &text); ok {
			observability.Cache().OnCacheHit(ctx, "dataset")
			return text, nil
		}
		observability.Cache().OnCacheMiss(ctx, "dataset")
	}

	err := httputil.RetryWithBackoff(ctx, func() error {
		var err error
		text, err = f.get(ctx, url)
		return err
	})
	if err != nil {
		return "", err
	}

	if f.cache != nil {
		if err := f.cache.Set(key, text); err == nil {
			observability.Cache().OnCacheSet(ctx, "dataset", len(text))
		}
	}
	return text, nil
}

func (f *Fetcher) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "build request")
	}
	req.Header.Set("Accept", "text/csv, text/plain, */*")
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	host, path := req.URL.Host, req.URL.Path
	observability.HTTP().OnRequest(ctx, req.Method, host, path)
	start := time.Now()
	resp, err := f.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, req.Method, host, path, err)
		return "", &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", url)}
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		return "", err
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownload))
	if err != nil {
		return "", &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "read %s", url)}
	}
	return string(data), nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeFileNotFound, "dataset not found (status %d)", code)
	case code >= 500:
		return &httputil.RetryableError{Err: errors.New(errors.ErrCodeNetwork, "status %d", code)}
	default:
		return errors.New(errors.ErrCodeNetwork, "status %d", code)
	}
}

// IsSheetURL reports whether rawURL points at a Google Sheets document.
func IsSheetURL(rawURL string) bool {
	return strings.Contains(rawURL, "docs.google.com/spreadsheets/")
}

// SheetCSVURL converts a Google Sheets link into its CSV export URL.
//
// Links that already request CSV ("export?format=csv" or "output=csv") are
// returned unchanged. Editor and viewer links ("/edit…", "/view…") are cut
// at that segment and given "/export?format=csv". Anything else is rejected.
func SheetCSVURL(rawURL string) (string, error) {
	switch {
	case strings.Contains(rawURL, "export?format=csv"), strings.Contains(rawURL, "output=csv"):
		return rawURL, nil
	case strings.Contains(rawURL, "/edit"):
		return strings.SplitN(rawURL, "/edit", 2)[0] + "/export?format=csv", nil
	case strings.Contains(rawURL, "/view"):
		return strings.SplitN(rawURL, "/view", 2)[0] + "/export?format=csv", nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "incorrect link to Google Sheets: %s", rawURL)
}

// Load reads src, which is either an http(s) URL fetched with f or a file
// path read with [Open].
func Load(ctx context.Context, src string, f *Fetcher) (*Dataset, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		if f == nil {
			f = NewFetcher(nil)
		}
		return f.Fetch(ctx, src)
	}
	if src == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no dataset given")
	}
	return Open(src)
}

// String summarizes the dataset shape, e.g. "42 rows × 7 columns".
func (d *Dataset) String() string {
	return fmt.Sprintf("%d rows × %d columns", d.Len(), len(d.Columns()))
}
