package entitytests

import (
	"github.com/xyzbank/entity-contract-tests/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoGetTests(t *T) {
	t.Run("returns the created entity", func(t *T) {
		e := t.NewEntity()
		got, err := t.Service().GetEntity(e.ID)
		require.NoError(t, err)
		entity.RequireValid(t, got, entity.ExpectEntity(e))
	})

	t.Run("ID is stable across reads", func(t *T) {
		e := t.NewEntity()
		first, err := t.Service().GetEntity(e.ID)
		require.NoError(t, err)
		second, err := t.Service().GetEntity(e.ID)
		require.NoError(t, err)
		assert.Equal(t, e.ID, first.ID)
		entity.RequireValid(t, second, entity.ExpectEntity(first))
	})

	t.Run("response passes schema validation", func(t *T) {
		e := t.NewEntity()
		resp, err := t.Service().Client().Get(e.ID)
		require.NoError(t, err)
		require.Equal(t, 200, resp.StatusCode)

		first := entity.RequireValidJSON(t, []byte(resp.Text), entity.Expectation{})
		second := entity.RequireValidJSON(t, []byte(resp.Text), entity.Expectation{})
		assert.Equal(t, first, second)
		entity.RequireValid(t, first, entity.ExpectEntity(e))
	})
}

func DoNegativeTests(t *T) {
	t.Run("get of unknown ID is not found", func(t *T) {
		id := deletedEntityID(t)
		_, err := t.Service().GetEntity(id)
		RequireNotFound(t, err)
	})

	t.Run("not-found response has error body", func(t *T) {
		id := deletedEntityID(t)
		resp, err := t.Service().Client().Get(id)
		require.NoError(t, err)
		assert.Equal(t, 500, resp.StatusCode)
		assert.Equal(t, map[string]interface{}{"error": "no rows in result set"}, resp.JSON)
	})
}

// deletedEntityID returns the ID of an entity that existed and has been deleted, which is the
// most reliable way to get an ID that the service does not know.
func deletedEntityID(t *T) int {
	e, err := t.Service().CreateEntity()
	require.NoError(t, err)
	require.NoError(t, t.Service().DeleteEntity(e.ID))
	return e.ID
}
