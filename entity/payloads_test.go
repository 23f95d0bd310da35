package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func TestGeneratePayload(t *testing.T) {
	g := NewPayloadGenerator(0)
	for i := 0; i < 100; i++ {
		p := g.GeneratePayload()
		assert.NotEmpty(t, p.Title)
		require.Len(t, p.ImportantNumbers, 3)
		for _, n := range p.ImportantNumbers {
			assert.GreaterOrEqual(t, n, 1)
			assert.LessOrEqual(t, n, 100)
		}
		require.NotNil(t, p.Addition)
		info, ok := p.Addition.AdditionalInfo.Get()
		assert.True(t, ok)
		assert.NotEmpty(t, info)
		number, ok := p.Addition.AdditionalNumber.Get()
		assert.True(t, ok)
		assert.GreaterOrEqual(t, number, 1)
		assert.LessOrEqual(t, number, 1000)
	}
}

func TestSeededGeneratorsAreReproducible(t *testing.T) {
	g1, g2 := NewPayloadGenerator(12345), NewPayloadGenerator(12345)
	for i := 0; i < 5; i++ {
		assert.Equal(t, g1.GeneratePayload(), g2.GeneratePayload())
	}
}

func TestGeneratorsDoNotShareState(t *testing.T) {
	g1, g2 := NewPayloadGenerator(1), NewPayloadGenerator(1)
	first := g1.GeneratePayload()
	g1.GeneratePayload()
	assert.Equal(t, first, g2.GeneratePayload())
}

func TestToRequestGeneratesWhenNil(t *testing.T) {
	r := NewPayloadGenerator(0).ToRequest(nil)
	assert.NotEmpty(t, r.Title)
	assert.NotNil(t, r.Addition)
}

func TestToRequestSynthesizesAddition(t *testing.T) {
	payload := EntityRequest{Title: "t", Verified: true, ImportantNumbers: []int{1, 2, 3}}
	r := NewPayloadGenerator(0).ToRequest(&payload)

	assert.Equal(t, "t", r.Title)
	assert.True(t, r.Verified)
	assert.Equal(t, []int{1, 2, 3}, r.ImportantNumbers)
	require.NotNil(t, r.Addition)
	assert.True(t, r.Addition.AdditionalInfo.IsDefined())
	assert.True(t, r.Addition.AdditionalNumber.IsDefined())
	assert.Nil(t, payload.Addition)
}

func TestToRequestKeepsExistingAddition(t *testing.T) {
	payload := EntityRequest{
		Title:            "t",
		ImportantNumbers: []int{1},
		Addition:         &AdditionRequest{AdditionalNumber: ldvalue.NewOptionalInt(5)},
	}
	r := NewPayloadGenerator(0).ToRequest(&payload)
	require.NotNil(t, r.Addition)
	assert.Equal(t, *payload.Addition, *r.Addition)

	r.Addition.AdditionalNumber = ldvalue.NewOptionalInt(6)
	r.ImportantNumbers[0] = 9
	assert.Equal(t, ldvalue.NewOptionalInt(5), payload.Addition.AdditionalNumber)
	assert.Equal(t, []int{1}, payload.ImportantNumbers)
}
