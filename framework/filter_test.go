package framework

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func id(path ...string) TestID {
	return TestID{Path: path}
}

func TestRegexFilters(t *testing.T) {
	var f RegexFilters
	assert.True(t, f.AsFilter(id("anything")))

	require.NoError(t, f.MustMatch.Set("^update"))
	require.NoError(t, f.MustNotMatch.Set("order"))
	assert.True(t, f.AsFilter(id("update")))
	assert.True(t, f.AsFilter(id("update", "get after update")))
	assert.False(t, f.AsFilter(id("update", "important numbers keep their order")))
	assert.False(t, f.AsFilter(id("create")))
}

func TestRegexFiltersReachAnchoredSubtests(t *testing.T) {
	var f RegexFilters
	require.NoError(t, f.MustMatch.Set("^delete/get after delete is not found$"))
	assert.True(t, f.AsFilter(id("delete")))
	assert.True(t, f.AsFilter(id("delete", "get after delete is not found")))
	assert.False(t, f.AsFilter(id("delete", "delete of deleted entity is not found")))
	assert.False(t, f.AsFilter(id("get")))
}

func TestRegexListRejectsInvalidPattern(t *testing.T) {
	var r RegexList
	assert.Error(t, r.Set("("))
	assert.False(t, r.IsDefined())
}

func TestRegexListDescription(t *testing.T) {
	var r RegexList
	require.NoError(t, r.Set("a"))
	require.NoError(t, r.Set("b+"))
	assert.Equal(t, `"a" or "b+"`, r.String())
	assert.Equal(t, []string{"a", "b+"}, r.Patterns())
}

func TestPrintFilterDescription(t *testing.T) {
	var buf bytes.Buffer
	PrintFilterDescription(&buf, RegexFilters{})
	assert.Equal(t, "", buf.String())

	var f RegexFilters
	require.NoError(t, f.MustNotMatch.Set("pages"))
	PrintFilterDescription(&buf, f)
	assert.Contains(t, buf.String(), `skip any matching "pages"`)
	assert.NotContains(t, buf.String(), "not matching")
}
