package entity

import (
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const (
	importantNumbersCount = 3
	importantNumberMin    = 1
	importantNumberMax    = 100
	additionalNumberMin   = 1
	additionalNumberMax   = 1000
	titleWords            = 2
	additionalInfoWords   = 3
)

// PayloadGenerator produces random entity requests. It is not safe for concurrent use; give
// each test its own generator.
type PayloadGenerator struct {
	faker *gofakeit.Faker
}

// NewPayloadGenerator creates a generator. A seed of zero means a different sequence on every
// run; any other seed makes the sequence reproducible.
func NewPayloadGenerator(seed int64) *PayloadGenerator {
	return &PayloadGenerator{faker: gofakeit.New(seed)}
}

// GeneratePayload returns a fresh request with every field populated.
func (g *PayloadGenerator) GeneratePayload() EntityRequest {
	numbers := make([]int, importantNumbersCount)
	for i := range numbers {
		numbers[i] = g.faker.Number(importantNumberMin, importantNumberMax)
	}
	return EntityRequest{
		Title:            g.sentence(titleWords),
		Verified:         g.faker.Bool(),
		ImportantNumbers: numbers,
		Addition:         g.generateAddition(),
	}
}

// ToRequest returns a request based on the given payload, generating one if it is nil and
// filling in an addition if the payload has none. The payload itself is not modified.
func (g *PayloadGenerator) ToRequest(payload *EntityRequest) EntityRequest {
	if payload == nil {
		return g.GeneratePayload()
	}
	r := *payload
	r.ImportantNumbers = append([]int(nil), payload.ImportantNumbers...)
	if r.Addition == nil {
		r.Addition = g.generateAddition()
	} else {
		a := *r.Addition
		r.Addition = &a
	}
	return r
}

func (g *PayloadGenerator) generateAddition() *AdditionRequest {
	return &AdditionRequest{
		AdditionalInfo:   ldvalue.NewOptionalString(g.sentence(additionalInfoWords)),
		AdditionalNumber: ldvalue.NewOptionalInt(g.faker.Number(additionalNumberMin, additionalNumberMax)),
	}
}

func (g *PayloadGenerator) sentence(words int) string {
	return strings.TrimSpace(g.faker.Sentence(words))
}
