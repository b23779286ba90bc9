package sheets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"couponview/appcontext"
)

var errHTTPUnexpectedStatusCode = errors.New("unexpected http status code")
var errHTTPBasePathFormatting = errors.New("error formatting HTTP base path")

// HTTPUnexpectedStatusCodeError is a error wrapper.
func HTTPUnexpectedStatusCodeError(statusCode int) error {
	return fmt.Errorf("%w, %d", errHTTPUnexpectedStatusCode, statusCode)
}

// HTTPBasePathFormattingError is returned when the base URL cannot be parsed.
func HTTPBasePathFormattingError(basePath string) error {
	return fmt.Errorf("%w, %s", errHTTPBasePathFormatting, basePath)
}

// HTTPSource fetches sheets relative to a base URL.
type HTTPSource struct {
	// a pointer to the http client to use.
	HTTPClient *http.Client
	// a pointer to the url every sheet name is resolved against.
	BasePath *url.URL
}

// NewHTTPSource creates a new HTTPSource.
func NewHTTPSource(httpClient *http.Client, basePath string) (*HTTPSource, error) {
	// Use a default http client if none is provided.
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	basePathURL, err := url.Parse(basePath)
	if err != nil || basePathURL.Scheme == "" || basePathURL.Host == "" {
		return nil, HTTPBasePathFormattingError(basePath)
	}

	return &HTTPSource{
		HTTPClient: httpClient,
		BasePath:   basePathURL,
	}, nil
}

// Fetch sends a GET request for BasePath/name and returns the body.
func (s *HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if strings.Contains(name, "..") {
		return nil, InvalidNameError(name)
	}
	sheetURL := s.BasePath.JoinPath(name)
	appcontext.LoggerFromContext(ctx).DebugContext(ctx, "Fetching sheet", "url", sheetURL.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sheetURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Add("Accept", "text/csv")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, NotFoundError(name)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, HTTPUnexpectedStatusCodeError(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	return body, nil
}
