package entitytests

import (
	"github.com/xyzbank/entity-contract-tests/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func DoCreateTests(t *T) {
	t.Run("assigns a positive ID", func(t *T) {
		e := t.NewEntity()
		assert.Greater(t, e.ID, 0)
	})

	t.Run("created entity has requested fields", func(t *T) {
		req := t.Payloads().GeneratePayload()
		e := t.NewEntityFrom(req)
		entity.RequireValid(t, e, entity.ExpectRequest(req))
	})

	t.Run("create response is an identifier", func(t *T) {
		resp, err := t.Service().Client().Create(t.Payloads().GeneratePayload())
		require.NoError(t, err)
		require.True(t, resp.OK(), "status %d", resp.StatusCode)
		id, err := entity.ParseCreatedID(resp.Text)
		require.NoError(t, err)
		t.deleteAtEnd(id)

		e, err := t.Service().GetEntity(id)
		require.NoError(t, err)
		assert.Equal(t, id, e.ID)
	})

	t.Run("addition fields may be omitted", func(t *T) {
		req := t.Payloads().GeneratePayload()
		req.Addition = &entity.AdditionRequest{AdditionalInfo: ldvalue.NewOptionalString("only info")}
		e := t.NewEntityFrom(req)
		entity.RequireValid(t, e, entity.ExpectRequest(req))
	})

	t.Run("example payload round trip", func(t *T) {
		req := entity.EntityRequest{
			Title:            "Foo bar",
			Verified:         true,
			ImportantNumbers: []int{3, 57, 91},
			Addition: &entity.AdditionRequest{
				AdditionalInfo:   ldvalue.NewOptionalString("x"),
				AdditionalNumber: ldvalue.NewOptionalInt(12),
			},
		}
		e := t.NewEntityFrom(req)
		got, err := t.Service().GetEntity(e.ID)
		require.NoError(t, err)
		entity.RequireValid(t, got, entity.ExpectRequest(req))
		assert.Equal(t, e.ID, got.ID)

		require.NoError(t, t.Service().DeleteEntity(e.ID))
		_, err = t.Service().GetEntity(e.ID)
		RequireNotFound(t, err)
	})
}
