package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/xyzbank/entity-contract-tests/transport"
)

const (
	opCreate = "create"
	opGet    = "get"
	opGetAll = "get all"
	opUpdate = "update"
	opDelete = "delete"
)

// UpdateKind says which of the two update response contracts the service used.
type UpdateKind int

const (
	// UpdateRefetch means the service returned no content and the entity had to be read back.
	UpdateRefetch UpdateKind = iota
	// UpdateWithBody means the service returned the updated entity directly.
	UpdateWithBody
)

func (k UpdateKind) String() string {
	switch k {
	case UpdateRefetch:
		return "refetch"
	case UpdateWithBody:
		return "with body"
	default:
		return fmt.Sprintf("UpdateKind(%d)", int(k))
	}
}

// UpdateResult is the outcome of an update, whichever way the service answered it.
type UpdateResult struct {
	Kind   UpdateKind
	Entity Entity
}

// Service performs entity operations and interprets their responses. Any non-2xx status becomes
// a *RequestFailed, and any unparseable success body becomes a *MalformedResponse. Errors from
// the transport are returned unchanged. Nothing is retried.
type Service struct {
	client   *APIClient
	payloads *PayloadGenerator
}

// NewService creates a Service. If payloads is nil, a nondeterministic generator is used.
func NewService(client *APIClient, payloads *PayloadGenerator) *Service {
	if payloads == nil {
		payloads = NewPayloadGenerator(0)
	}
	return &Service{client: client, payloads: payloads}
}

// Client returns the underlying API client, for tests that need raw responses.
func (s *Service) Client() *APIClient {
	return s.client
}

// Payloads returns the service's payload generator.
func (s *Service) Payloads() *PayloadGenerator {
	return s.payloads
}

// CreateEntity creates an entity from a generated payload and returns it as read back from the
// service.
func (s *Service) CreateEntity() (Entity, error) {
	return s.CreateEntityFrom(s.payloads.GeneratePayload())
}

// CreateEntityFrom creates an entity from the given request and returns it as read back from the
// service. The create endpoint only returns the new ID, so this always makes a second request.
func (s *Service) CreateEntityFrom(req EntityRequest) (Entity, error) {
	resp, err := s.client.Create(req)
	if err != nil {
		return Entity{}, err
	}
	if err := checkStatus(opCreate, resp); err != nil {
		return Entity{}, err
	}
	id, err := ParseCreatedID(resp.Text)
	if err != nil {
		return Entity{}, &MalformedResponse{Operation: opCreate, Body: resp.Text, Err: err}
	}
	return s.GetEntity(id)
}

func (s *Service) GetEntity(id int) (Entity, error) {
	resp, err := s.client.Get(id)
	if err != nil {
		return Entity{}, err
	}
	return parseEntityResponse(opGet, resp)
}

func (s *Service) GetAllEntities(filters Filters) ([]Entity, error) {
	resp, err := s.client.GetAll(filters)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(opGetAll, resp); err != nil {
		return nil, err
	}
	entities, err := ParseEntityList([]byte(resp.Text))
	if err != nil {
		return nil, &MalformedResponse{Operation: opGetAll, Body: resp.Text, Err: err}
	}
	return entities, nil
}

// UpdateEntity replaces the entity's fields and returns the updated entity.
func (s *Service) UpdateEntity(id int, req EntityRequest) (Entity, error) {
	result, err := s.Update(id, req)
	return result.Entity, err
}

// Update is like UpdateEntity, but also reports whether the entity came back in the update
// response or had to be read back.
func (s *Service) Update(id int, req EntityRequest) (UpdateResult, error) {
	resp, err := s.client.Update(id, req)
	if err != nil {
		return UpdateResult{}, err
	}
	if err := checkStatus(opUpdate, resp); err != nil {
		return UpdateResult{}, err
	}
	if resp.StatusCode == http.StatusNoContent || strings.TrimSpace(resp.Text) == "" {
		e, err := s.GetEntity(id)
		return UpdateResult{Kind: UpdateRefetch, Entity: e}, err
	}
	e, err := parseEntityResponse(opUpdate, resp)
	return UpdateResult{Kind: UpdateWithBody, Entity: e}, err
}

// DeleteEntity deletes the entity. It does not check that the entity is gone.
func (s *Service) DeleteEntity(id int) error {
	resp, err := s.client.Delete(id)
	if err != nil {
		return err
	}
	return checkStatus(opDelete, resp)
}

func checkStatus(op string, resp *transport.Response) error {
	if resp.OK() {
		return nil
	}
	return &RequestFailed{Operation: op, StatusCode: resp.StatusCode, Body: resp.Text}
}

func parseEntityResponse(op string, resp *transport.Response) (Entity, error) {
	if err := checkStatus(op, resp); err != nil {
		return Entity{}, err
	}
	e, err := ParseEntity([]byte(resp.Text))
	if err != nil {
		return Entity{}, &MalformedResponse{Operation: op, Body: resp.Text, Err: err}
	}
	return e, nil
}

// ParseCreatedID reads the ID from a create response body. It accepts a bare number, optionally
// quoted, or a JSON object with an "id" field.
func ParseCreatedID(body string) (int, error) {
	text := strings.TrimSpace(body)
	if text == "" {
		return 0, errors.New("empty body")
	}
	if strings.HasPrefix(text, "{") {
		var obj struct {
			ID *json.Number `json:"id"`
		}
		if err := json.Unmarshal([]byte(text), &obj); err != nil {
			return 0, err
		}
		if obj.ID == nil {
			return 0, errors.New(`no "id" field`)
		}
		text = obj.ID.String()
	}
	text = strings.Trim(text, `"`)
	id, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("not an integer ID: %q", text)
	}
	if id <= 0 {
		return 0, fmt.Errorf("ID must be positive, got %d", id)
	}
	return id, nil
}
