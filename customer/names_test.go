package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAverageNameLength(t *testing.T) {
	assert.Equal(t, 0.0, AverageNameLength(nil))
	assert.Equal(t, 4.0, AverageNameLength([]string{"Anne", "Harry", "Bob", "Jake"}))
}

func TestNameClosestToAverage(t *testing.T) {
	names := []string{"Al", "Harry", "Bobby", "Jake"}
	name, ok := NameClosestToAverage(names, AverageNameLength(names))
	assert.True(t, ok)
	assert.Equal(t, "Jake", name)

	name, ok = NameClosestToAverage([]string{"Abc", "Def"}, 3)
	assert.True(t, ok)
	assert.Equal(t, "Abc", name)

	_, ok = NameClosestToAverage(nil, 3)
	assert.False(t, ok)
}

func TestSortNames(t *testing.T) {
	names := []string{"Mipxm", "Aaaaa", "Bcdez"}
	assert.Equal(t, []string{"Aaaaa", "Bcdez", "Mipxm"}, SortNames(names, false))
	assert.Equal(t, []string{"Mipxm", "Bcdez", "Aaaaa"}, SortNames(names, true))
	assert.Equal(t, []string{"Mipxm", "Aaaaa", "Bcdez"}, names)
}

func TestFirstNames(t *testing.T) {
	cs := []Customer{{FirstName: "Aaaaa"}, {FirstName: "Bcdez"}}
	assert.Equal(t, []string{"Aaaaa", "Bcdez"}, FirstNames(cs))
}
