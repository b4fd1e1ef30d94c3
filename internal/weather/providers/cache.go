package providers

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"time"
)

// CachingTransport is an http.RoundTripper that serves GET responses from a
// directory of cached response files. Entries are keyed by the request
// signature (method plus full URL) and expire after TTL. Only successful
// responses are cached.
type CachingTransport struct {
	Base http.RoundTripper
	Dir  string
	TTL  time.Duration
}

// NewCachingTransport wraps base with an on-disk response cache rooted at dir.
func NewCachingTransport(base http.RoundTripper, dir string, ttl time.Duration) *CachingTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &CachingTransport{Base: base, Dir: dir, TTL: ttl}
}

func (t *CachingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet {
		return t.Base.RoundTrip(req)
	}

	path := t.entryPath(req)
	if resp, ok := t.readEntry(req, path); ok {
		return resp, nil
	}

	resp, err := t.Base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusOK {
		t.writeEntry(resp, path)
	}
	return resp, nil
}

func (t *CachingTransport) entryPath(req *http.Request) string {
	sum := sha256.Sum256([]byte(req.Method + " " + req.URL.String()))
	return filepath.Join(t.Dir, hex.EncodeToString(sum[:])+".httpcache")
}

// readEntry returns a cached response if the entry exists and is fresh.
func (t *CachingTransport) readEntry(req *http.Request, path string) (*http.Response, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if t.TTL > 0 && time.Since(info.ModTime()) >= t.TTL {
		os.Remove(path)
		return nil, false
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	resp, err := http.ReadResponse(bufio.NewReader(bytes.NewReader(raw)), req)
	if err != nil {
		os.Remove(path)
		return nil, false
	}
	return resp, true
}

// writeEntry persists the response. DumpResponse leaves resp.Body readable
// for the caller. Cache write failures are ignored; the response is served
// either way.
func (t *CachingTransport) writeEntry(resp *http.Response, path string) {
	raw, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return
	}

	if err := os.MkdirAll(t.Dir, 0o755); err != nil {
		return
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return
	}
	os.Rename(tmp, path)
}
