// Command entitytwin serves an in-memory copy of the entity API, for running the contract tests
// without a real deployment.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/xyzbank/entity-contract-tests/twin"
)

const defaultPort = 8000

func main() {
	var port int
	var updateReturnsBody bool
	var verbose bool

	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.IntVar(&port, "port", defaultPort, "HTTP listen port")
	fs.BoolVar(&updateReturnsBody, "update-returns-body", false, "answer updates with 200 and the entity instead of 204")
	fs.BoolVar(&verbose, "verbose", false, "log every request")

	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid parameters: %s\n", err)
		os.Exit(1)
	}

	logger := log.New(os.Stdout, "[entitytwin] ", log.LstdFlags)
	options := twin.Options{UpdateReturnsBody: updateReturnsBody}
	if verbose {
		options.Logger = logger
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           twin.NewServer(nil, options),
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Printf("listening on port %d", port)
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal(err)
	}
}
