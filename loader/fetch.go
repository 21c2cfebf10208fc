package loader

import (
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/erraggy/jsonref/referrors"
)

// defaultHTTPTimeout bounds requests made with the default HTTP client.
const defaultHTTPTimeout = 30 * time.Second

// isHTTPURI determines if the given URI is an HTTP or HTTPS URL
func isHTTPURI(uri string) bool {
	return strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://")
}

// isFileURI determines if the given URI uses the file scheme
func isFileURI(uri string) bool {
	return strings.HasPrefix(uri, "file://")
}

// fileURIToPath converts a file:// URI to a filesystem path.
func fileURIToPath(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", &referrors.LoaderError{URI: uri, Message: "invalid file URI", Cause: err}
	}
	if u.Host != "" && u.Host != "localhost" {
		return "", &referrors.LoaderError{URI: uri, Message: "remote file URIs are not supported"}
	}
	if u.Path == "" {
		return "", &referrors.LoaderError{URI: uri, Message: "file URI has no path"}
	}
	return u.Path, nil
}

// cacheKey normalizes a URI for use as a cache key: the fragment is
// dropped and the remainder is normalized through net/url when parseable.
func cacheKey(uri string) string {
	base := uri
	if i := strings.IndexByte(base, '#'); i >= 0 {
		base = base[:i]
	}
	if u, err := url.Parse(base); err == nil {
		return u.String()
	}
	return base
}

// readFile reads a local document, enforcing the configured size limit
// when one is set.
func (l *Loader) readFile(uri, path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304 - path is user-provided input
	if err != nil {
		return nil, &referrors.LoaderError{URI: uri, Message: "failed to read file", Cause: err}
	}
	if limit := l.maxDocumentSize; limit > 0 && int64(len(data)) > limit {
		return nil, &referrors.LoaderError{
			URI:     uri,
			Message: fmt.Sprintf("document exceeds maximum size limit (%d bytes): file is %d bytes", limit, len(data)),
		}
	}
	return data, nil
}

// fetchHTTP fetches content from a URL and returns the bytes and
// Content-Type header, enforcing the configured size limit.
func (l *Loader) fetchHTTP(uri string) ([]byte, string, error) {
	// Use custom client if provided, otherwise create default
	var client *http.Client
	if l.httpClient != nil {
		client = l.httpClient
		if l.insecureSkipVerify {
			l.log().Warn("InsecureSkipVerify ignored when HTTPClient provided; configure TLS on your client's transport")
		}
	} else if l.insecureSkipVerify {
		transport := &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true, //nolint:gosec // User explicitly requested insecure mode
				MinVersion:         tls.VersionTLS12,
			},
		}
		client = &http.Client{
			Timeout:   defaultHTTPTimeout,
			Transport: transport,
		}
	} else {
		client = &http.Client{
			Timeout: defaultHTTPTimeout,
		}
	}

	req, err := http.NewRequest(http.MethodGet, uri, nil)
	if err != nil {
		return nil, "", &referrors.LoaderError{URI: uri, Message: "failed to create request", Cause: err}
	}

	userAgent := l.userAgent
	if userAgent == "" {
		userAgent = defaultUserAgent()
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req) //nolint:gosec // G704 - URL is user-provided input
	if err != nil {
		return nil, "", &referrors.LoaderError{URI: uri, Message: "failed to fetch URL", Cause: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, "", &referrors.LoaderError{
			URI:     uri,
			Message: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, resp.Status),
		}
	}

	// Read one byte past the limit, when one is set, so oversized
	// responses are detected without buffering the whole body.
	body := io.Reader(resp.Body)
	limit := l.maxDocumentSize
	if limit > 0 {
		body = io.LimitReader(resp.Body, limit+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, "", &referrors.LoaderError{URI: uri, Message: "failed to read response body", Cause: err}
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, "", &referrors.LoaderError{
			URI:     uri,
			Message: fmt.Sprintf("HTTP response exceeds maximum size limit (%d bytes)", limit),
		}
	}

	return data, resp.Header.Get("Content-Type"), nil
}
