package servicedef

import (
	"strconv"
	"strings"
)

// Endpoints are the paths of the entity API, relative to its base URL. The ID-based paths are
// prefixes that the entity ID is appended to.
type Endpoints struct {
	Create string
	Get    string
	GetAll string
	Update string
	Delete string
}

// DefaultEndpoints returns the paths used by the reference deployment of the entity API.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Create: "/api/create",
		Get:    "/api/get/",
		GetAll: "/api/getall/",
		Update: "/api/patch/",
		Delete: "/api/delete/",
	}
}

func (e Endpoints) GetPath(id int) string    { return withID(e.Get, id) }
func (e Endpoints) UpdatePath(id int) string { return withID(e.Update, id) }
func (e Endpoints) DeletePath(id int) string { return withID(e.Delete, id) }

func withID(prefix string, id int) string {
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix + strconv.Itoa(id)
}
