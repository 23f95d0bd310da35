package entity

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/xyzbank/entity-contract-tests/servicedef"
)

type (
	Entity          = servicedef.Entity
	Addition        = servicedef.Addition
	EntityRequest   = servicedef.EntityRequest
	AdditionRequest = servicedef.AdditionRequest
)

// SchemaError describes why a JSON document is not a valid entity.
type SchemaError struct {
	Field   string
	Problem string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return e.Problem
	}
	return fmt.Sprintf("field %q: %s", e.Field, e.Problem)
}

var requiredEntityFields = []string{"id", "title", "verified", "important_numbers"}

// ParseEntity converts a JSON document into an Entity. It fails if a required field is missing
// or null, if a field has the wrong type, if the ID is not positive, or if the title is empty.
func ParseEntity(data []byte) (Entity, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return Entity{}, &SchemaError{Problem: fmt.Sprintf("not a JSON object: %s", err)}
	}
	for _, name := range requiredEntityFields {
		if err := requirePresent(fields, name, name); err != nil {
			return Entity{}, err
		}
	}
	if raw, ok := fields["addition"]; ok && !isNull(raw) {
		var additionFields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &additionFields); err != nil {
			return Entity{}, &SchemaError{Field: "addition", Problem: "not a JSON object"}
		}
		if err := requirePresent(additionFields, "id", "addition.id"); err != nil {
			return Entity{}, err
		}
	}

	var e Entity
	if err := json.Unmarshal(data, &e); err != nil {
		if te, ok := err.(*json.UnmarshalTypeError); ok {
			return Entity{}, &SchemaError{Field: te.Field, Problem: fmt.Sprintf("expected %s but got JSON %s", te.Type, te.Value)}
		}
		return Entity{}, &SchemaError{Problem: err.Error()}
	}
	if e.ID <= 0 {
		return Entity{}, &SchemaError{Field: "id", Problem: fmt.Sprintf("must be positive, got %d", e.ID)}
	}
	if e.Title == "" {
		return Entity{}, &SchemaError{Field: "title", Problem: "must not be empty"}
	}
	return e, nil
}

// ParseEntityList converts the body of a get-all response into entities.
func ParseEntityList(data []byte) ([]Entity, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, &SchemaError{Problem: fmt.Sprintf("not a JSON object: %s", err)}
	}
	if err := requirePresent(fields, "entity", "entity"); err != nil {
		return nil, err
	}
	var items []json.RawMessage
	if err := json.Unmarshal(fields["entity"], &items); err != nil {
		return nil, &SchemaError{Field: "entity", Problem: "not a JSON array"}
	}
	ret := make([]Entity, 0, len(items))
	for i, item := range items {
		e, err := ParseEntity(item)
		if err != nil {
			return nil, fmt.Errorf("entity[%d]: %w", i, err)
		}
		ret = append(ret, e)
	}
	return ret, nil
}

func requirePresent(fields map[string]json.RawMessage, name, path string) error {
	raw, ok := fields[name]
	if !ok {
		return &SchemaError{Field: path, Problem: "is missing"}
	}
	if isNull(raw) {
		return &SchemaError{Field: path, Problem: "must not be null"}
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
