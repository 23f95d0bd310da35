package transport

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	names []string
	data  map[string]string
}

func (s *recordingSink) Attach(name, contentType string, data []byte) {
	if s.data == nil {
		s.data = make(map[string]string)
	}
	s.names = append(s.names, name)
	s.data[name] = string(data)
}

func TestGetSendsQueryAndParsesJSON(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(
		httphelpers.HandlerWithJSONResponse(map[string]interface{}{"entity": []interface{}{}}, nil))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		sink := &recordingSink{}
		tr := New(server.URL+"/", time.Second, sink, nil)

		resp, err := tr.Get("/api/getall/", url.Values{"title": []string{"Foo bar"}})
		require.NoError(t, err)

		assert.Equal(t, 200, resp.StatusCode)
		assert.True(t, resp.OK())
		assert.Equal(t, map[string]interface{}{"entity": []interface{}{}}, resp.JSON)
		assert.Equal(t, server.URL+"/api/getall/?title=Foo+bar", resp.URL)

		r := <-requestsCh
		assert.Equal(t, "GET", r.Request.Method)
		assert.Equal(t, "/api/getall/", r.Request.URL.Path)
		assert.Equal(t, "Foo bar", r.Request.URL.Query().Get("title"))
		assert.NotEmpty(t, r.Request.Header.Get(RequestIDHeader))

		assert.Equal(t, []string{AttachmentResponse, AttachmentStatus, AttachmentHeaders, AttachmentURL}, sink.names)
		assert.Equal(t, "200", sink.data[AttachmentStatus])
		assert.Equal(t, resp.URL, sink.data[AttachmentURL])
		assert.Contains(t, sink.data[AttachmentHeaders], "Content-Type: application/json")
	})
}

func TestPostSendsJSONBody(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(
		httphelpers.HandlerWithResponse(200, nil, []byte("42")))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		tr := New(server.URL, 0, nil, nil)

		resp, err := tr.Post("/api/create", map[string]interface{}{"title": "x"})
		require.NoError(t, err)
		assert.Equal(t, "42", resp.Text)
		assert.Equal(t, float64(42), resp.JSON)

		r := <-requestsCh
		assert.Equal(t, "POST", r.Request.Method)
		assert.Equal(t, "application/json", r.Request.Header.Get("Content-Type"))
		assert.JSONEq(t, `{"title":"x"}`, string(r.Body))
	})
}

func TestDefaultTimeout(t *testing.T) {
	tr := New("http://localhost", 0, nil, nil)
	assert.Equal(t, DefaultTimeout, tr.Timeout())
}

func TestErrorStatusIsNotAnError(t *testing.T) {
	handler := httphelpers.HandlerWithResponse(500, nil, []byte(`{"error": "no rows in result set"}`))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		tr := New(server.URL, time.Second, nil, nil)

		resp, err := tr.Get("/api/get/1", nil)
		require.NoError(t, err)
		assert.Equal(t, 500, resp.StatusCode)
		assert.False(t, resp.OK())
		assert.Equal(t, map[string]interface{}{"error": "no rows in result set"}, resp.JSON)
	})
}

func TestNonJSONBodyKeepsTextOnly(t *testing.T) {
	handler := httphelpers.HandlerWithResponse(200, nil, []byte("not json"))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		sink := &recordingSink{}
		tr := New(server.URL, time.Second, sink, nil)

		resp, err := tr.Get("/", nil)
		require.NoError(t, err)
		assert.Nil(t, resp.JSON)
		assert.Equal(t, "not json", resp.Text)
		assert.Equal(t, "not json", sink.data[AttachmentResponse])
	})
}

func TestEmptyBodyIsAttachedAsPlaceholder(t *testing.T) {
	httphelpers.WithServer(httphelpers.HandlerWithStatus(204), func(server *httptest.Server) {
		sink := &recordingSink{}
		tr := New(server.URL, time.Second, sink, nil)

		resp, err := tr.Delete("/api/delete/1")
		require.NoError(t, err)
		assert.Equal(t, 204, resp.StatusCode)
		assert.Nil(t, resp.JSON)
		assert.Equal(t, "Empty response", sink.data[AttachmentResponse])
	})
}

func TestConnectionFailureIsTransportError(t *testing.T) {
	server := httptest.NewServer(httphelpers.HandlerWithStatus(200))
	serverURL := server.URL
	server.Close()

	sink := &recordingSink{}
	tr := New(serverURL, time.Second, sink, nil)
	_, err := tr.Get("/api/get/1", nil)
	require.Error(t, err)

	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "GET", te.Method)
	assert.Equal(t, serverURL+"/api/get/1", te.URL)
	assert.False(t, te.Timeout())
	assert.Empty(t, sink.names)
}

func TestTimeoutIsTransportError(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
		w.WriteHeader(200)
	})
	httphelpers.WithServer(slow, func(server *httptest.Server) {
		tr := New(server.URL, time.Millisecond*50, nil, nil)
		_, err := tr.Get("/", nil)

		var te *TransportError
		require.True(t, errors.As(err, &te))
		assert.True(t, te.Timeout())
	})
}

func TestWithSinkSharesClient(t *testing.T) {
	tr := New("http://localhost:8000", time.Second*3, nil, nil)
	sink := &recordingSink{}
	tr1 := tr.WithSink(sink, nil)
	assert.Equal(t, tr.BaseURL(), tr1.BaseURL())
	assert.Equal(t, time.Second*3, tr1.Timeout())
	assert.Nil(t, tr.sink)
	assert.Equal(t, sink, tr1.sink)
}
