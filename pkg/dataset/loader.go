package dataset

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultFetchTimeout bounds a dataset fetch over HTTP.
const DefaultFetchTimeout = 3 * time.Second

// ErrBadStatus is returned when a dataset URL answers with a non-2xx status.
var ErrBadStatus = errors.New("unexpected HTTP status")

// Loader reads datasets from files or http(s) URLs.
type Loader struct {
	client  *http.Client
	timeout time.Duration
}

// NewLoader creates a loader whose URL fetches give up after timeout.
// A zero or negative timeout uses DefaultFetchTimeout.
func NewLoader(timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Loader{
		client:  &http.Client{},
		timeout: timeout,
	}
}

// WithClient swaps the HTTP client, mostly for tests.
func (l *Loader) WithClient(client *http.Client) *Loader {
	l.client = client
	return l
}

// IsURL reports whether source should be fetched over HTTP.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Load reads the dataset at source, a file path or an http(s) URL.
func (l *Loader) Load(ctx context.Context, source string) (*Dataset, error) {
	if source == "" {
		return nil, errors.New("no dataset source given")
	}
	start := time.Now()

	var (
		ds  *Dataset
		err error
	)
	if IsURL(source) {
		ds, err = l.fetch(ctx, source)
	} else {
		ds, err = l.readFile(source)
	}
	if err != nil {
		return nil, err
	}

	log.Debugf("Loaded dataset from %s in %v", source, time.Since(start))
	return ds, nil
}

func (l *Loader) readFile(path string) (*Dataset, error) {
	format := DetectFormat(path)
	if format == FormatUnknown {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", path, err)
	}
	defer file.Close()

	return Decode(file, format)
}

func (l *Loader) fetch(ctx context.Context, rawURL string) (*Dataset, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", rawURL, err)
	}
	req.Header.Set("Accept", "application/json, application/msgpack")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s from %s", ErrBadStatus, resp.Status, rawURL)
	}

	// extension wins over Content-Type, static hosts often serve
	// everything as application/octet-stream
	format := FormatUnknown
	if u, err := url.Parse(rawURL); err == nil {
		format = DetectFormat(u.Path)
	}
	if format == FormatUnknown {
		format = FormatFromContentType(resp.Header.Get("Content-Type"))
	}
	if format == FormatUnknown {
		log.Debugf("No format hint for %s, assuming JSON", rawURL)
		format = FormatJSON
	}

	return Decode(resp.Body, format)
}

// WriteFile encodes ds into path, picking the encoding from the extension.
func WriteFile(path string, ds *Dataset) error {
	format := DetectFormat(path)
	if format == FormatUnknown {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Encode(file, ds, format); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return file.Close()
}
