package servicedef

import "gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

// NotFoundMessage is the error text the entity API returns, with status 500, for an unknown ID.
const NotFoundMessage = "no rows in result set"

// AdditionRequest is the write-side shape of an entity's nested addition.
type AdditionRequest struct {
	AdditionalInfo   ldvalue.OptionalString `json:"additional_info"`
	AdditionalNumber ldvalue.OptionalInt    `json:"additional_number"`
}

// EntityRequest is the body of create and update requests. Updates replace every field.
type EntityRequest struct {
	Title            string           `json:"title"`
	Verified         bool             `json:"verified"`
	ImportantNumbers []int            `json:"important_numbers"`
	Addition         *AdditionRequest `json:"addition"`
}

// Addition is the nested addition as returned by the API, with its own ID.
type Addition struct {
	ID               int                    `json:"id"`
	AdditionalInfo   ldvalue.OptionalString `json:"additional_info"`
	AdditionalNumber ldvalue.OptionalInt    `json:"additional_number"`
}

// Entity is an entity as returned by the API.
type Entity struct {
	ID               int       `json:"id"`
	Title            string    `json:"title"`
	Verified         bool      `json:"verified"`
	ImportantNumbers []int     `json:"important_numbers"`
	Addition         *Addition `json:"addition,omitempty"`
}

// EntityList is the body of a get-all response.
type EntityList struct {
	Entity []Entity `json:"entity"`
}

// CreatedID is the JSON form of a create response, for services that do not return a bare number.
type CreatedID struct {
	ID int `json:"id"`
}

// ErrorResponse is the body of an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToRequest returns the write-side shape of the entity.
func (e Entity) ToRequest() EntityRequest {
	r := EntityRequest{
		Title:            e.Title,
		Verified:         e.Verified,
		ImportantNumbers: append([]int(nil), e.ImportantNumbers...),
	}
	if e.Addition != nil {
		r.Addition = &AdditionRequest{
			AdditionalInfo:   e.Addition.AdditionalInfo,
			AdditionalNumber: e.Addition.AdditionalNumber,
		}
	}
	return r
}
