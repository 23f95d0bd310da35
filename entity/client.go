package entity

import (
	"net/url"
	"strconv"

	"github.com/xyzbank/entity-contract-tests/servicedef"
	"github.com/xyzbank/entity-contract-tests/transport"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Filters narrows a get-all request. Only the defined fields are sent.
type Filters struct {
	Title    ldvalue.OptionalString
	Verified ldvalue.OptionalBool
	Page     ldvalue.OptionalInt
	PerPage  ldvalue.OptionalInt
}

// Query returns the query parameters for the defined filters.
func (f Filters) Query() url.Values {
	q := url.Values{}
	if s, ok := f.Title.Get(); ok {
		q.Set("title", s)
	}
	if b, ok := f.Verified.Get(); ok {
		q.Set("verified", strconv.FormatBool(b))
	}
	if n, ok := f.Page.Get(); ok {
		q.Set("page", strconv.Itoa(n))
	}
	if n, ok := f.PerPage.Get(); ok {
		q.Set("per_page", strconv.Itoa(n))
	}
	return q
}

// APIClient maps each entity operation onto its endpoint. It returns raw responses and never
// looks at status codes.
type APIClient struct {
	transport *transport.Transport
	endpoints servicedef.Endpoints
}

func NewAPIClient(t *transport.Transport, endpoints servicedef.Endpoints) *APIClient {
	return &APIClient{transport: t, endpoints: endpoints}
}

// Transport returns the underlying transport.
func (c *APIClient) Transport() *transport.Transport {
	return c.transport
}

func (c *APIClient) Create(payload interface{}) (*transport.Response, error) {
	return c.transport.Post(c.endpoints.Create, payload)
}

func (c *APIClient) Get(id int) (*transport.Response, error) {
	return c.transport.Get(c.endpoints.GetPath(id), nil)
}

func (c *APIClient) GetAll(filters Filters) (*transport.Response, error) {
	return c.transport.Get(c.endpoints.GetAll, filters.Query())
}

func (c *APIClient) Update(id int, payload interface{}) (*transport.Response, error) {
	return c.transport.Patch(c.endpoints.UpdatePath(id), payload)
}

func (c *APIClient) Delete(id int) (*transport.Response, error) {
	return c.transport.Delete(c.endpoints.DeletePath(id))
}
