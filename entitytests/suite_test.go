package entitytests

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/xyzbank/entity-contract-tests/config"
	"github.com/xyzbank/entity-contract-tests/framework"
	"github.com/xyzbank/entity-contract-tests/servicedef"
	"github.com/xyzbank/entity-contract-tests/twin"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTestLogger struct {
	lock     sync.Mutex
	errors   map[string][]string
	warnings map[string][]string
	finished []string
}

func newRecordingTestLogger() *recordingTestLogger {
	return &recordingTestLogger{errors: map[string][]string{}, warnings: map[string][]string{}}
}

func (l *recordingTestLogger) TestStarted(framework.TestID) {}

func (l *recordingTestLogger) TestError(id framework.TestID, err error) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.errors[id.String()] = append(l.errors[id.String()], err.Error())
}

func (l *recordingTestLogger) TestWarning(id framework.TestID, message string) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.warnings[id.String()] = append(l.warnings[id.String()], message)
}

func (l *recordingTestLogger) TestFinished(id framework.TestID, failed bool, _ framework.CapturedOutput) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.finished = append(l.finished, id.String())
}

func (l *recordingTestLogger) TestSkipped(framework.TestID, string) {}

func testConfig() config.Config {
	return config.Config{
		Timeout:      time.Second * 5,
		ProbeTimeout: time.Second * 2,
		Endpoints:    servicedef.DefaultEndpoints(),
	}
}

func runSuiteAgainst(t *testing.T, handler http.Handler, filter framework.Filter) (framework.Results, *recordingTestLogger) {
	var results framework.Results
	logger := newRecordingTestLogger()
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		cfg := testConfig()
		harness, err := framework.NewTestHarness(server.URL, cfg.Endpoints.GetAll, cfg.ProbeTimeout, nil, nil)
		require.NoError(t, err)
		results = RunTestSuite(harness, cfg, filter, logger)
	})
	return results, logger
}

func TestSuitePassesAgainstTwin(t *testing.T) {
	for _, updateReturnsBody := range []bool{false, true} {
		t.Run(map[bool]string{false: "update returns 204", true: "update returns body"}[updateReturnsBody], func(t *testing.T) {
			server := twin.NewServer(nil, twin.Options{UpdateReturnsBody: updateReturnsBody})
			results, logger := runSuiteAgainst(t, server, nil)

			assert.True(t, results.OK(), "errors: %v", logger.errors)
			assert.Empty(t, logger.warnings)
			passed, failed, skipped := results.Counts()
			assert.Equal(t, 0, failed)
			assert.Equal(t, 0, skipped)
			assert.Greater(t, passed, 20)
			assert.Equal(t, 0, server.Store().Len(), "entities were left behind")
		})
	}
}

func TestSuiteHonorsFilter(t *testing.T) {
	var filters framework.RegexFilters
	require.NoError(t, filters.MustMatch.Set("^get/"))
	server := twin.NewServer(nil, twin.Options{})
	results, logger := runSuiteAgainst(t, server, filters.AsFilter)

	assert.True(t, results.OK())
	require.NotEmpty(t, logger.finished)
	for _, id := range logger.finished {
		assert.True(t, id == "get" || strings.HasPrefix(id, "get/"), id)
	}
}

func TestSuiteDetectsDeleteThatDoesNothing(t *testing.T) {
	server := twin.NewServer(nil, twin.Options{})
	broken := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		server.ServeHTTP(w, r)
	})
	results, logger := runSuiteAgainst(t, broken, nil)

	assert.False(t, results.OK())
	assert.Contains(t, logger.errors, "delete/get after delete is not found")
	assert.NotContains(t, logger.errors, "get/returns the created entity")
}

func TestSuiteDetectsReorderedNumbers(t *testing.T) {
	server := twin.NewServer(nil, twin.Options{UpdateReturnsBody: true})
	broken := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			rec := httptest.NewRecorder()
			server.ServeHTTP(rec, r)
			body := strings.Replace(rec.Body.String(), `"important_numbers":[91,3,57]`, `"important_numbers":[3,57,91]`, 1)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(rec.Code)
			_, _ = w.Write([]byte(body))
			return
		}
		server.ServeHTTP(w, r)
	})
	results, logger := runSuiteAgainst(t, broken, nil)

	assert.False(t, results.OK())
	require.Contains(t, logger.errors, "update/important numbers keep their order")
	assert.Len(t, results.FailedLeafIDs(), 1)
}

func TestTeardownFailureIsOnlyAWarning(t *testing.T) {
	server := twin.NewServer(nil, twin.Options{})
	failingDelete := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		server.ServeHTTP(w, r)
	})
	var filters framework.RegexFilters
	require.NoError(t, filters.MustMatch.Set("^get/returns the created entity$"))
	results, logger := runSuiteAgainst(t, failingDelete, filters.AsFilter)

	assert.True(t, results.OK(), "errors: %v", logger.errors)
	require.Len(t, logger.warnings["get/returns the created entity"], 1)
	assert.Contains(t, logger.warnings["get/returns the created entity"][0], "failed to delete entity")
	assert.Equal(t, 1, server.Store().Len())
}

func TestSuiteAcceptsRepeatedDeleteThatSucceeds(t *testing.T) {
	server := twin.NewServer(nil, twin.Options{})
	lenient := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			rec := httptest.NewRecorder()
			server.ServeHTTP(rec, r)
			if rec.Code == http.StatusInternalServerError {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			w.WriteHeader(rec.Code)
			return
		}
		server.ServeHTTP(w, r)
	})
	var filters framework.RegexFilters
	require.NoError(t, filters.MustMatch.Set("^delete/"))
	results, logger := runSuiteAgainst(t, lenient, filters.AsFilter)

	assert.True(t, results.OK(), "errors: %v", logger.errors)
	assert.Contains(t, logger.finished, "delete/delete of deleted entity")
}

func TestSuiteAcceptsZeroBasedPages(t *testing.T) {
	server := twin.NewServer(nil, twin.Options{})
	zeroBased := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if page, err := strconv.Atoi(q.Get("page")); err == nil {
			q.Set("page", strconv.Itoa(page+1))
			r.URL.RawQuery = q.Encode()
		}
		server.ServeHTTP(w, r)
	})
	var filters framework.RegexFilters
	require.NoError(t, filters.MustMatch.Set("^get all/pages$"))
	results, logger := runSuiteAgainst(t, zeroBased, filters.AsFilter)

	assert.True(t, results.OK(), "errors: %v", logger.errors)
	assert.Contains(t, logger.finished, "get all/pages")
}
