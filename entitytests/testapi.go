package entitytests

import (
	"fmt"

	"github.com/xyzbank/entity-contract-tests/entity"
	"github.com/xyzbank/entity-contract-tests/framework"
	"github.com/xyzbank/entity-contract-tests/servicedef"
	"github.com/xyzbank/entity-contract-tests/transport"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// T represents a test or subtest in the entity contract suite.
//
// It implements the same basic functionality as Go's testing.T, outside of the Go test runner,
// so the assert and require packages can be used with a *T. Each T has its own entity service,
// whose responses are attached to the test and copied to its debug log.
//
// Entities created with NewEntity or NewEntities are deleted when the test exits, however it
// exits. A failure to delete one is reported as a warning and does not fail the test.
type T struct {
	context *framework.Context
	env     *environment
	service *entity.Service
}

type environment struct {
	transport *transport.Transport
	endpoints servicedef.Endpoints
}

func newTestScope(c *framework.Context, env *environment) *T {
	tr := env.transport.WithSink(c, c.DebugLogger())
	return &T{
		context: c,
		env:     env,
		service: entity.NewService(entity.NewAPIClient(tr, env.endpoints), entity.NewPayloadGenerator(0)),
	}
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest, which gets its own T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.env))
	})
}

func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Skip stops the test and reports it as skipped.
func (t *T) Skip(reason string) {
	t.context.SkipWithReason(reason)
}

// Service returns the entity service for this test.
func (t *T) Service() *entity.Service {
	return t.service
}

// Payloads returns the payload generator for this test.
func (t *T) Payloads() *entity.PayloadGenerator {
	return t.service.Payloads()
}

// UniqueTitle returns a generated title that no other test will use, so that get-all results
// can be narrowed to entities this test created.
func (t *T) UniqueTitle() string {
	return fmt.Sprintf("%s %s", t.Payloads().GeneratePayload().Title, uuid.New().String())
}

// NewEntity creates an entity from a generated payload, failing the test if it cannot.
func (t *T) NewEntity() entity.Entity {
	return t.NewEntityFrom(t.Payloads().GeneratePayload())
}

// NewEntityFrom creates an entity from the given request, failing the test if it cannot.
func (t *T) NewEntityFrom(req entity.EntityRequest) entity.Entity {
	e, err := t.service.CreateEntityFrom(req)
	require.NoError(t, err, "could not create entity")
	t.deleteAtEnd(e.ID)
	return e
}

// NewEntities creates n entities.
func (t *T) NewEntities(n int) []entity.Entity {
	require.GreaterOrEqual(t, n, 0, "entity count")
	ret := make([]entity.Entity, 0, n)
	for i := 0; i < n; i++ {
		ret = append(ret, t.NewEntity())
	}
	return ret
}

// deleteAtEnd schedules a cleanup delete. An entity the test already deleted is not an error.
func (t *T) deleteAtEnd(id int) {
	t.context.Defer(func() {
		err := t.service.DeleteEntity(id)
		if err != nil && !entity.IsNotFound(err) {
			t.context.Warnf("failed to delete entity %d: %s", id, err)
		}
	})
}

// RequireNotFound fails the test unless err is the service's not-found error.
func RequireNotFound(t *T, err error) {
	require.Error(t, err, "expected a not-found error")
	var rf *entity.RequestFailed
	require.ErrorAs(t, err, &rf)
	require.Equal(t, 500, rf.StatusCode, "unexpected status for unknown entity")
	require.True(t, entity.IsNotFound(err), "unexpected error body: %s", rf.Body)
}

// IDs returns the IDs of the entities, in order.
func IDs(entities []entity.Entity) []int {
	ret := make([]int, len(entities))
	for i, e := range entities {
		ret[i] = e.ID
	}
	return ret
}
