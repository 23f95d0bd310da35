package main

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"os"

	"github.com/xyzbank/entity-contract-tests/config"
	"github.com/xyzbank/entity-contract-tests/entitytests"
	"github.com/xyzbank/entity-contract-tests/framework"
	"github.com/xyzbank/entity-contract-tests/twin"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	cfg, err := config.Load(params.configFile, params.configOverrides())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %s\n", err)
		os.Exit(1)
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	if params.useTwin {
		baseURL, err := startTwin(cfg, framework.LoggerWithPrefix(mainDebugLogger, "[twin] "))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not start entity API twin: %s\n", err)
			os.Exit(1)
		}
		cfg.BaseURL = baseURL
	}
	if cfg.BaseURL == "" {
		fmt.Fprintf(os.Stderr, "-url is required, unless %s_%s is set or -twin is used\n",
			config.EnvPrefix, "BASE_URL")
		os.Exit(1)
	}

	harness, err := framework.NewTestHarness(
		cfg.BaseURL,
		cfg.Endpoints.GetAll,
		cfg.ProbeTimeout,
		mainDebugLogger,
		os.Stdout,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Entity API error: %s\n", err)
		os.Exit(1)
	}

	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, params.filters)

	fmt.Println("Running test suite")

	testLogger := &ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := entitytests.RunTestSuite(harness, cfg, params.filters.AsFilter, testLogger)

	fmt.Println()
	PrintResults(os.Stdout, results)
	if !results.OK() {
		fmt.Println()
		fmt.Println("To rerun only the failed tests:")
		fmt.Println("  " + params.rerunCommand(os.Args[0], results.FailedLeafIDs()))
		os.Exit(1)
	}
}

func startTwin(cfg config.Config, logger framework.Logger) (string, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}
	handler := twin.NewServer(nil, twin.Options{Endpoints: cfg.Endpoints, Logger: logger})
	go func() {
		_ = http.Serve(listener, handler)
	}()
	return "http://" + listener.Addr().String(), nil
}
