package framework

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const probeInterval = time.Millisecond * 100

// TestHarness holds what every test needs to know about the service under test.
type TestHarness struct {
	serviceBaseURL string
	probeStatus    int
	logger         Logger
}

// NewTestHarness creates a TestHarness, and verifies that the service under test is responding
// by polling probePath until it returns any HTTP response or until probeTimeout elapses. Any
// status code counts as "up", since some services answer a bare collection request with an error.
func NewTestHarness(
	serviceBaseURL string,
	probePath string,
	probeTimeout time.Duration,
	debugLogger Logger,
	startupOutput io.Writer,
) (*TestHarness, error) {
	if debugLogger == nil {
		debugLogger = NullLogger()
	}
	if startupOutput == nil {
		startupOutput = io.Discard
	}
	h := &TestHarness{
		serviceBaseURL: strings.TrimSuffix(serviceBaseURL, "/"),
		logger:         debugLogger,
	}
	status, err := probeService(h.serviceBaseURL+probePath, probeTimeout, debugLogger, startupOutput)
	if err != nil {
		return nil, err
	}
	h.probeStatus = status
	return h, nil
}

// ServiceBaseURL returns the base URL of the service under test, without a trailing slash.
func (h *TestHarness) ServiceBaseURL() string {
	return h.serviceBaseURL
}

// ProbeStatus returns the status code the service gave to the startup probe.
func (h *TestHarness) ProbeStatus() int {
	return h.probeStatus
}

// Logger returns the harness-wide debug logger.
func (h *TestHarness) Logger() Logger {
	return h.logger
}

func probeService(url string, timeout time.Duration, logger Logger, output io.Writer) (int, error) {
	fmt.Fprintf(output, "Connecting to service at %s", url)

	client := &http.Client{Timeout: timeout}
	deadline := time.Now().Add(timeout)
	for {
		fmt.Fprintf(output, ".")
		resp, err := client.Get(url)
		if err == nil {
			fmt.Fprintln(output)
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			logger.Printf("Probe of %s returned status %d", url, resp.StatusCode)
			fmt.Fprintf(output, "Service responded with status %d\n", resp.StatusCode)
			return resp.StatusCode, nil
		}
		logger.Printf("Probe of %s failed: %s", url, err)
		if !time.Now().Before(deadline) {
			fmt.Fprintln(output)
			return 0, fmt.Errorf("timed out, result of last query was: %w", err)
		}
		time.Sleep(probeInterval)
	}
}
