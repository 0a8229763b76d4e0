package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/jask/adminui/internal/member"
)

// Fetcher loads the full member list in one call.
type Fetcher interface {
	Fetch(ctx context.Context) (member.Batch, error)
	Origin() string
}

// StatusError is a non-2xx response from the source.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %s", e.Status)
}

// LoadError wraps any failure to obtain the member list.
type LoadError struct {
	Op  string
	URL string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// maxBody caps the payload read from the source.
const maxBody = 16 << 20

// HTTP fetches members with a single GET.
type HTTP struct {
	URL    string
	Client *http.Client
}

// NewHTTP returns an HTTP fetcher with its own client and timeout. A zero
// timeout means no timeout.
func NewHTTP(rawURL string, timeout time.Duration) *HTTP {
	return &HTTP{URL: rawURL, Client: &http.Client{Timeout: timeout}}
}

func (h *HTTP) Origin() string { return h.URL }

func (h *HTTP) Fetch(ctx context.Context) (member.Batch, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return member.Batch{}, &LoadError{Op: "build request", URL: h.URL, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return member.Batch{}, &LoadError{Op: "get", URL: h.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return member.Batch{}, &LoadError{Op: "get", URL: h.URL, Err: &StatusError{Code: resp.StatusCode, Status: resp.Status}}
	}
	batch, err := member.Decode(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return member.Batch{}, &LoadError{Op: "decode", URL: h.URL, Err: err}
	}
	return batch, nil
}

// File reads members from a local JSON file in the same format.
type File struct {
	Path string
}

func (f *File) Origin() string { return "file://" + f.Path }

func (f *File) Fetch(ctx context.Context) (member.Batch, error) {
	if err := ctx.Err(); err != nil {
		return member.Batch{}, &LoadError{Op: "open", URL: f.Origin(), Err: err}
	}
	fh, err := os.Open(f.Path)
	if err != nil {
		return member.Batch{}, &LoadError{Op: "open", URL: f.Origin(), Err: err}
	}
	defer fh.Close()
	batch, err := member.Decode(fh)
	if err != nil {
		return member.Batch{}, &LoadError{Op: "decode", URL: f.Origin(), Err: err}
	}
	return batch, nil
}

// ErrUnsupportedScheme is returned by New for URLs it cannot fetch.
var ErrUnsupportedScheme = errors.New("source: unsupported url scheme")

// New picks a fetcher for rawURL: http(s) URLs use HTTP, file:// URLs and
// bare paths use File.
func New(rawURL string, timeout time.Duration) (Fetcher, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, fmt.Errorf("source: empty url")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("source: parse url: %w", err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return NewHTTP(rawURL, timeout), nil
	case "file":
		p := u.Path
		if u.Host != "" {
			p = u.Host + p
		}
		return &File{Path: p}, nil
	case "":
		return &File{Path: rawURL}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}
