package customer

import (
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveFirstName(t *testing.T) {
	for _, p := range []struct {
		postCode, name string
	}{
		{"0000000000", "Aaaaa"},
		{"0102030425", "Bcdez"},
		{"2627519999", "Abzvv"},
		{"1234567890", "Mieam"},
	} {
		t.Run(p.postCode, func(t *testing.T) {
			name, err := DeriveFirstName(p.postCode)
			require.NoError(t, err)
			assert.Equal(t, p.name, name)
		})
	}
}

func TestDeriveFirstNameRejectsBadPostCode(t *testing.T) {
	for _, postCode := range []string{"", "123", "12345678901", "12345abcde", "-123456789"} {
		t.Run(postCode, func(t *testing.T) {
			_, err := DeriveFirstName(postCode)
			assert.Error(t, err)
		})
	}
}

func TestGeneratePostCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		p, err := GeneratePostCode()
		require.NoError(t, err)
		require.Len(t, p, PostCodeLength)
		for _, c := range p {
			require.True(t, unicode.IsDigit(c), p)
		}
	}
}

func TestNewCustomerDerivesFirstNameFromPostCode(t *testing.T) {
	g := NewGenerator(0)
	for i := 0; i < 20; i++ {
		c, err := g.NewCustomer()
		require.NoError(t, err)

		assert.Len(t, c.FirstName, 5)
		assert.True(t, unicode.IsUpper(rune(c.FirstName[0])), c.FirstName)
		for _, r := range c.FirstName[1:] {
			assert.True(t, unicode.IsLower(r), c.FirstName)
		}
		again, err := DeriveFirstName(c.PostCode)
		require.NoError(t, err)
		assert.Equal(t, c.FirstName, again)
		assert.NotEmpty(t, c.LastName)
	}
}

func TestSeededGeneratorRepeatsLastNames(t *testing.T) {
	c1, err := NewGenerator(99).Generate(5)
	require.NoError(t, err)
	c2, err := NewGenerator(99).Generate(5)
	require.NoError(t, err)
	require.Len(t, c1, 5)
	for i := range c1 {
		assert.Equal(t, c1[i].LastName, c2[i].LastName)
	}
}

func TestGenerateZero(t *testing.T) {
	cs, err := NewGenerator(1).Generate(0)
	require.NoError(t, err)
	assert.Len(t, cs, 0)
}

func TestGenerateRejectsNegativeCount(t *testing.T) {
	cs, err := NewGenerator(1).Generate(-1)
	assert.Error(t, err)
	assert.Nil(t, cs)
}
