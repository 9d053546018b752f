// Package filter narrows the accumulated catalog list for display.
package filter

import (
	"strings"

	"oompa/backend/internal/model"
)

// Criteria holds the three user queries applied to the list.
type Criteria struct {
	Name       string
	Profession string
	Query      string
}

// Normalize trims every field.
func (c Criteria) Normalize() Criteria {
	return Criteria{
		Name:       strings.TrimSpace(c.Name),
		Profession: strings.TrimSpace(c.Profession),
		Query:      strings.TrimSpace(c.Query),
	}
}

// Active reports whether any query constrains the list.
func (c Criteria) Active() bool {
	n := c.Normalize()
	return n.Name != "" || n.Profession != "" || n.Query != ""
}

// Apply returns the entities matching name, profession and the free-text query.
//
// Matching is a case-insensitive substring test. The free-text query only
// applies when both name and profession are empty, and then matches either
// the full name or the profession.
func Apply(list []model.Oompa, name, profession, query string) []model.Oompa {
	c := Criteria{Name: name, Profession: profession, Query: query}.Normalize()
	if c.Name == "" && c.Profession == "" && c.Query == "" {
		return list
	}

	nameQuery := strings.ToLower(c.Name)
	professionQuery := strings.ToLower(c.Profession)
	freeQuery := strings.ToLower(c.Query)
	useFree := nameQuery == "" && professionQuery == "" && freeQuery != ""

	out := make([]model.Oompa, 0, len(list))
	for _, o := range list {
		fullName := strings.ToLower(o.FullName())
		profession := strings.ToLower(o.Profession)

		if !strings.Contains(fullName, nameQuery) {
			continue
		}
		if !strings.Contains(profession, professionQuery) {
			continue
		}
		if useFree && !strings.Contains(fullName, freeQuery) && !strings.Contains(profession, freeQuery) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// ApplyCriteria is Apply for a Criteria value.
func ApplyCriteria(list []model.Oompa, c Criteria) []model.Oompa {
	return Apply(list, c.Name, c.Profession, c.Query)
}
