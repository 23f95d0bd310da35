package entitytests

import (
	"github.com/xyzbank/entity-contract-tests/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoUpdateTests(t *T) {
	t.Run("get after update returns new fields", func(t *T) {
		e := t.NewEntity()
		req := t.Payloads().ToRequest(nil)

		_, err := t.Service().UpdateEntity(e.ID, req)
		require.NoError(t, err)

		got, err := t.Service().GetEntity(e.ID)
		require.NoError(t, err)
		entity.RequireValid(t, got, entity.ExpectRequest(req))
		assert.Equal(t, e.ID, got.ID)
	})

	t.Run("update result matches subsequent get", func(t *T) {
		e := t.NewEntity()
		result, err := t.Service().Update(e.ID, t.Payloads().ToRequest(nil))
		require.NoError(t, err)
		t.Debug("update was answered as %s", result.Kind)

		assert.Equal(t, e.ID, result.Entity.ID)
		got, err := t.Service().GetEntity(e.ID)
		require.NoError(t, err)
		entity.RequireValid(t, got, entity.ExpectEntity(result.Entity))
	})

	t.Run("update without addition keeps a generated one", func(t *T) {
		e := t.NewEntity()
		partial := t.Payloads().GeneratePayload()
		partial.Addition = nil
		req := t.Payloads().ToRequest(&partial)
		require.NotNil(t, req.Addition)

		updated, err := t.Service().UpdateEntity(e.ID, req)
		require.NoError(t, err)
		entity.RequireValid(t, updated, entity.ExpectRequest(req))
	})

	t.Run("important numbers keep their order", func(t *T) {
		e := t.NewEntity()
		req := t.Payloads().ToRequest(nil)
		req.ImportantNumbers = []int{91, 3, 57}

		updated, err := t.Service().UpdateEntity(e.ID, req)
		require.NoError(t, err)
		assert.Equal(t, []int{91, 3, 57}, updated.ImportantNumbers)
	})
}
