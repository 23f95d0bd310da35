package entitytests

import (
	"github.com/xyzbank/entity-contract-tests/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func DoDeleteTests(t *T) {
	t.Run("get after delete is not found", func(t *T) {
		e := t.NewEntity()
		require.NoError(t, t.Service().DeleteEntity(e.ID))

		_, err := t.Service().GetEntity(e.ID)
		RequireNotFound(t, err)
	})

	t.Run("deleted entity is absent from get all", func(t *T) {
		title := t.UniqueTitle()
		created := createWithTitle(t, title, true, false)
		require.NoError(t, t.Service().DeleteEntity(created[0].ID))

		entities, err := t.Service().GetAllEntities(entity.Filters{Title: ldvalue.NewOptionalString(title)})
		require.NoError(t, err)
		assert.Equal(t, []int{created[1].ID}, IDs(entities))
	})

	// Services differ on a repeated delete; only an unexpected kind of error fails.
	t.Run("delete of deleted entity", func(t *T) {
		e := t.NewEntity()
		require.NoError(t, t.Service().DeleteEntity(e.ID))

		err := t.Service().DeleteEntity(e.ID)
		if err == nil {
			t.Debug("repeated delete of %d succeeded", e.ID)
			return
		}
		var rf *entity.RequestFailed
		require.ErrorAs(t, err, &rf)
		t.Debug("repeated delete of %d returned status %d", e.ID, rf.StatusCode)
	})
}
