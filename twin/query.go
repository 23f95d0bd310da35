package twin

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/xyzbank/entity-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

type listQuery struct {
	title    ldvalue.OptionalString
	verified ldvalue.OptionalBool
	page     ldvalue.OptionalInt
	perPage  ldvalue.OptionalInt
}

func parseListQuery(r *http.Request) (listQuery, error) {
	var q listQuery
	values := r.URL.Query()
	if _, ok := values["title"]; ok {
		q.title = ldvalue.NewOptionalString(values.Get("title"))
	}
	if s := values.Get("verified"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return q, fmt.Errorf("invalid verified value %q", s)
		}
		q.verified = ldvalue.NewOptionalBool(b)
	}
	for _, p := range []struct {
		name string
		dest *ldvalue.OptionalInt
	}{{"page", &q.page}, {"per_page", &q.perPage}} {
		s := values.Get(p.name)
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return q, fmt.Errorf("invalid %s value %q", p.name, s)
		}
		*p.dest = ldvalue.NewOptionalInt(n)
	}
	return q, nil
}

func (q listQuery) matches(e servicedef.Entity) bool {
	if title, ok := q.title.Get(); ok && e.Title != title {
		return false
	}
	if verified, ok := q.verified.Get(); ok && e.Verified != verified {
		return false
	}
	return true
}

// Pagination only applies if page or per_page was given. Pages are numbered from 1.
func (q listQuery) paginate(items []servicedef.Entity) []servicedef.Entity {
	if !q.page.IsDefined() && !q.perPage.IsDefined() {
		return items
	}
	page := q.page.OrElse(1)
	perPage := q.perPage.OrElse(DefaultPerPage)
	start := (page - 1) * perPage
	if start >= len(items) {
		return []servicedef.Entity{}
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
