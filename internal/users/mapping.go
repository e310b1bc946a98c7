package users

import (
	"net/url"

	"github.com/JaimeStill/pledge/pkg/query"
	"github.com/JaimeStill/pledge/pkg/repository"
)

var projection = query.NewProjectionMap("public", "users", "u").
	Project("id", "id").
	Project("name", "name").
	Project("phone", "phone").
	Project("avatar", "avatar").
	Project("created_at", "created_at").
	Project("updated_at", "updated_at")

var defaultSort = query.SortField{Field: "name"}

const returning = "id, name, phone, avatar, created_at, updated_at"

func scanUser(s repository.Scanner) (User, error) {
	var u User
	err := s.Scan(&u.ID, &u.Name, &u.Phone, &u.Avatar, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// Filters narrows user listings.
type Filters struct {
	Name  *string
	Phone *string
}

// FiltersFromQuery reads the name (contains) and phone (exact) filters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if n := values.Get("name"); n != "" {
		f.Name = &n
	}
	if p := values.Get("phone"); p != "" {
		f.Phone = &p
	}
	return f
}

func (f Filters) Apply(b *query.Builder) *query.Builder {
	b = b.WhereContains("name", f.Name)
	if f.Phone != nil {
		b = b.WhereEquals("phone", *f.Phone)
	}
	return b
}
