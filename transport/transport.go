// Package transport issues HTTP requests to the service under test and records every response.
//
// It does not interpret status codes: a 404 or 500 is a successful round trip as far as this
// package is concerned. Only failures to get a response at all, such as a refused connection or
// a timeout, are reported as errors.
package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout bounds every request unless the caller configures something else.
const DefaultTimeout = time.Second * 10

// RequestIDHeader carries a unique ID for each request, for correlating harness logs with
// logs of the service under test.
const RequestIDHeader = "X-Request-Id"

// Logger is the subset of framework.Logger that the transport needs.
type Logger interface {
	Printf(message string, args ...interface{})
}

// Sink receives named artifacts describing each response.
type Sink interface {
	Attach(name, contentType string, data []byte)
}

// Transport sends requests relative to a base URL.
type Transport struct {
	baseURL string
	client  *http.Client
	sink    Sink
	logger  Logger
}

// Response is the outcome of a request that reached the service.
type Response struct {
	Method     string
	URL        string
	StatusCode int
	Header     http.Header
	Text       string

	// JSON is the decoded body, or nil if the body was empty or was not valid JSON.
	JSON interface{}
}

// OK returns true for a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// TransportError means that no HTTP response was received.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s failed: %s", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout returns true if the request failed because it exceeded the transport's timeout.
func (e *TransportError) Timeout() bool {
	var te interface{ Timeout() bool }
	return errors.As(e.Err, &te) && te.Timeout()
}

// New creates a Transport. A timeout of zero means DefaultTimeout. The sink and logger may be nil.
func New(baseURL string, timeout time.Duration, sink Sink, logger Logger) *Transport {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = nullLogger{}
	}
	return &Transport{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		sink:    sink,
		logger:  logger,
	}
}

// WithSink returns a copy of the transport that reports to a different sink and logger. The
// underlying HTTP client is shared.
func (t *Transport) WithSink(sink Sink, logger Logger) *Transport {
	if logger == nil {
		logger = nullLogger{}
	}
	t1 := *t
	t1.sink = sink
	t1.logger = logger
	return &t1
}

// BaseURL returns the base URL that paths are resolved against.
func (t *Transport) BaseURL() string {
	return t.baseURL
}

// Timeout returns the per-request timeout.
func (t *Transport) Timeout() time.Duration {
	return t.client.Timeout
}

func (t *Transport) Get(path string, query url.Values) (*Response, error) {
	return t.Do(http.MethodGet, path, query, nil)
}

func (t *Transport) Post(path string, body interface{}) (*Response, error) {
	return t.Do(http.MethodPost, path, nil, body)
}

func (t *Transport) Patch(path string, body interface{}) (*Response, error) {
	return t.Do(http.MethodPatch, path, nil, body)
}

func (t *Transport) Delete(path string) (*Response, error) {
	return t.Do(http.MethodDelete, path, nil, nil)
}

// Do sends a request. A non-nil body is sent as JSON. The query may be nil.
func (t *Transport) Do(method, path string, query url.Values, body interface{}) (*Response, error) {
	fullURL := t.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("could not serialize request body for %s %s: %w", method, fullURL, err)
		}
		t.logger.Printf(">> %s %s %s", method, fullURL, string(data))
		bodyReader = bytes.NewReader(data)
	} else {
		t.logger.Printf(">> %s %s", method, fullURL)
	}

	req, err := http.NewRequest(method, fullURL, bodyReader)
	if err != nil {
		return nil, &TransportError{Method: method, URL: fullURL, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	requestID := uuid.New().String()
	req.Header.Set(RequestIDHeader, requestID)

	resp, err := t.client.Do(req)
	if err != nil {
		t.logger.Printf("<< %s %s [%s] error: %s", method, fullURL, requestID, err)
		return nil, &TransportError{Method: method, URL: fullURL, Err: err}
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: fullURL, Err: fmt.Errorf("error reading response body: %w", err)}
	}

	r := &Response{
		Method:     method,
		URL:        fullURL,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Text:       string(data),
	}
	if len(bytes.TrimSpace(data)) > 0 {
		var parsed interface{}
		if json.Unmarshal(data, &parsed) == nil {
			r.JSON = parsed
		}
	}
	t.logger.Printf("<< %s %s [%s] %d %s", method, fullURL, requestID, r.StatusCode, r.Text)
	attachResponse(t.sink, r)
	return r, nil
}

type nullLogger struct{}

func (nullLogger) Printf(string, ...interface{}) {}
