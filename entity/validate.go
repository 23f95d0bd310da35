package entity

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// ValidationFailure is the first difference found between an entity and what was expected of it.
type ValidationFailure struct {
	Field    string
	Expected interface{}
	Actual   interface{}
}

func (f *ValidationFailure) Error() string {
	return fmt.Sprintf("%s mismatch: expected %s, got %s", f.Field, formatValue(f.Expected), formatValue(f.Actual))
}

// Expectation describes the field values an entity should have. The zero value expects nothing.
type Expectation struct {
	request EntityRequest
	id      ldvalue.OptionalInt
	defined bool
}

// ExpectRequest expects the fields that were sent in a create or update request. The ID is not
// checked.
func ExpectRequest(r EntityRequest) Expectation {
	return Expectation{request: r, defined: true}
}

// ExpectEntity expects the fields of a previously read entity, including its ID.
func ExpectEntity(e Entity) Expectation {
	return Expectation{request: e.ToRequest(), id: ldvalue.NewOptionalInt(e.ID), defined: true}
}

// IsDefined returns false for the zero Expectation.
func (x Expectation) IsDefined() bool {
	return x.defined
}

// Validate compares an entity against an expectation, checking title, verified,
// important_numbers, addition.additional_info, addition.additional_number, and finally the ID if
// the expectation has one. It stops at the first mismatch and returns it as a *ValidationFailure.
//
// A missing addition is treated the same as an addition whose fields are both absent.
func Validate(actual Entity, expected Expectation) (Entity, error) {
	if !expected.defined {
		return actual, nil
	}
	want := expected.request
	if actual.Title != want.Title {
		return actual, &ValidationFailure{Field: "title", Expected: want.Title, Actual: actual.Title}
	}
	if actual.Verified != want.Verified {
		return actual, &ValidationFailure{Field: "verified", Expected: want.Verified, Actual: actual.Verified}
	}
	if !sameNumbers(actual.ImportantNumbers, want.ImportantNumbers) {
		return actual, &ValidationFailure{Field: "important_numbers", Expected: want.ImportantNumbers, Actual: actual.ImportantNumbers}
	}
	actualInfo, actualNumber := additionFields(actual)
	wantInfo, wantNumber := requestAdditionFields(want)
	if actualInfo != wantInfo {
		return actual, &ValidationFailure{Field: "addition.additional_info", Expected: wantInfo, Actual: actualInfo}
	}
	if actualNumber != wantNumber {
		return actual, &ValidationFailure{Field: "addition.additional_number", Expected: wantNumber, Actual: actualNumber}
	}
	if expected.id.IsDefined() && actual.ID != expected.id.IntValue() {
		return actual, &ValidationFailure{Field: "id", Expected: expected.id.IntValue(), Actual: actual.ID}
	}
	return actual, nil
}

// ValidateJSON parses a JSON document as an entity and then validates it.
func ValidateJSON(data []byte, expected Expectation) (Entity, error) {
	e, err := ParseEntity(data)
	if err != nil {
		return Entity{}, fmt.Errorf("entity validation failed: %w", err)
	}
	return Validate(e, expected)
}

// RequireValid is like Validate, but fails the test immediately on any mismatch.
func RequireValid(t require.TestingT, actual Entity, expected Expectation) Entity {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	e, err := Validate(actual, expected)
	require.NoError(t, err)
	return e
}

// RequireValidJSON is like ValidateJSON, but fails the test immediately if the document cannot be
// parsed or does not match.
func RequireValidJSON(t require.TestingT, data []byte, expected Expectation) Entity {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	e, err := ValidateJSON(data, expected)
	require.NoError(t, err)
	return e
}

func sameNumbers(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func additionFields(e Entity) (ldvalue.OptionalString, ldvalue.OptionalInt) {
	if e.Addition == nil {
		return ldvalue.OptionalString{}, ldvalue.OptionalInt{}
	}
	return e.Addition.AdditionalInfo, e.Addition.AdditionalNumber
}

func requestAdditionFields(r EntityRequest) (ldvalue.OptionalString, ldvalue.OptionalInt) {
	if r.Addition == nil {
		return ldvalue.OptionalString{}, ldvalue.OptionalInt{}
	}
	return r.Addition.AdditionalInfo, r.Addition.AdditionalNumber
}

func formatValue(v interface{}) string {
	switch x := v.(type) {
	case string:
		return strconv.Quote(x)
	case ldvalue.OptionalString:
		if s, ok := x.Get(); ok {
			return strconv.Quote(s)
		}
		return "null"
	case ldvalue.OptionalInt:
		if n, ok := x.Get(); ok {
			return strconv.Itoa(n)
		}
		return "null"
	case []int:
		if x == nil {
			return "[]"
		}
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Ptr && rv.IsNil() {
		return "null"
	}
	return fmt.Sprint(v)
}
