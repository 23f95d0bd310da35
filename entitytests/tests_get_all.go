package entitytests

import (
	"github.com/xyzbank/entity-contract-tests/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func DoGetAllTests(t *T) {
	t.Run("returns a list of entities", func(t *T) {
		t.NewEntity()
		entities, err := t.Service().GetAllEntities(entity.Filters{})
		require.NoError(t, err)
		assert.NotEmpty(t, entities)
		for _, e := range entities {
			assert.Greater(t, e.ID, 0)
		}
	})

	t.Run("contains created entities", func(t *T) {
		title := t.UniqueTitle()
		created := createWithTitle(t, title, true, true, false)
		entities, err := t.Service().GetAllEntities(entity.Filters{Title: ldvalue.NewOptionalString(title)})
		require.NoError(t, err)
		assert.ElementsMatch(t, IDs(created), IDs(entities))
		for _, e := range entities {
			for _, c := range created {
				if c.ID == e.ID {
					entity.RequireValid(t, e, entity.ExpectEntity(c))
				}
			}
		}
	})

	t.Run("filter by title", func(t *T) {
		title := t.UniqueTitle()
		created := createWithTitle(t, title, true)
		t.NewEntity()
		entities, err := t.Service().GetAllEntities(entity.Filters{Title: ldvalue.NewOptionalString(title)})
		require.NoError(t, err)
		assert.Equal(t, IDs(created), IDs(entities))
	})

	t.Run("filter by verified", func(t *T) {
		createWithTitle(t, t.UniqueTitle(), false, true)
		for _, verified := range []bool{true, false} {
			entities, err := t.Service().GetAllEntities(entity.Filters{Verified: ldvalue.NewOptionalBool(verified)})
			require.NoError(t, err)
			for _, e := range entities {
				assert.Equal(t, verified, e.Verified, "entity %d", e.ID)
			}
		}
	})

	t.Run("filter by title and verified together", func(t *T) {
		title := t.UniqueTitle()
		created := createWithTitle(t, title, true, false, true)
		entities, err := t.Service().GetAllEntities(entity.Filters{
			Title:    ldvalue.NewOptionalString(title),
			Verified: ldvalue.NewOptionalBool(false),
		})
		require.NoError(t, err)
		assert.Equal(t, []int{created[1].ID}, IDs(entities))
	})

	t.Run("pages", func(t *T) {
		title := t.UniqueTitle()
		created := createWithTitle(t, title, true, true, true)
		filters := func(page int) entity.Filters {
			return entity.Filters{
				Title:   ldvalue.NewOptionalString(title),
				Page:    ldvalue.NewOptionalInt(page),
				PerPage: ldvalue.NewOptionalInt(2),
			}
		}
		page1, err := t.Service().GetAllEntities(filters(1))
		require.NoError(t, err)
		page2, err := t.Service().GetAllEntities(filters(2))
		require.NoError(t, err)

		// Page numbering may start at 0 or 1, so only the page bounds are checked.
		assert.LessOrEqual(t, len(page1), 2)
		assert.LessOrEqual(t, len(page2), 2)
		for _, id := range IDs(page2) {
			assert.NotContains(t, IDs(page1), id)
		}
		all := IDs(created)
		for _, id := range append(IDs(page1), IDs(page2)...) {
			assert.Contains(t, all, id)
		}
	})
}

func createWithTitle(t *T, title string, verified ...bool) []entity.Entity {
	ret := make([]entity.Entity, 0, len(verified))
	for _, v := range verified {
		req := t.Payloads().GeneratePayload()
		req.Title = title
		req.Verified = v
		ret = append(ret, t.NewEntityFrom(req))
	}
	return ret
}
