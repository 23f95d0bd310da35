package entitytests

import (
	"github.com/xyzbank/entity-contract-tests/config"
	"github.com/xyzbank/entity-contract-tests/framework"
	"github.com/xyzbank/entity-contract-tests/transport"
)

// RunTestSuite runs every contract test against the service the harness is connected to.
func RunTestSuite(
	harness *framework.TestHarness,
	cfg config.Config,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	env := &environment{
		transport: transport.New(harness.ServiceBaseURL(), cfg.Timeout, nil, harness.Logger()),
		endpoints: cfg.Endpoints,
	}
	opts := framework.RunOptions{Filter: filter, TestLogger: testLogger}
	if cfg.AttachmentsDir != "" {
		opts.Attachments = framework.DirectoryAttachmentWriter{Dir: cfg.AttachmentsDir}
	}
	return framework.Run(opts, func(c *framework.Context) {
		t := newTestScope(c, env)

		t.Run("create", DoCreateTests)
		t.Run("get", DoGetTests)
		t.Run("get all", DoGetAllTests)
		t.Run("update", DoUpdateTests)
		t.Run("delete", DoDeleteTests)
		t.Run("negative", DoNegativeTests)
	})
}
