package model

import "strings"

// Oompa is the summary record returned by the paginated list endpoint.
type Oompa struct {
	ID         int64
	FirstName  string
	LastName   string
	Profession string
	Image      string
}

// FullName joins first and last name the way the catalog displays them.
func (o Oompa) FullName() string {
	return strings.TrimSpace(o.FirstName + " " + o.LastName)
}

// OompaDetail is the full record for a single identity.
// Description is untrusted markup coming from the remote API.
type OompaDetail struct {
	ID          int64
	FirstName   string
	LastName    string
	Profession  string
	Gender      string
	Description string
	Image       string
	Email       string
	Country     string
	Age         int
	Height      int
}

func (d OompaDetail) FullName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

// Summary projects the detail onto the list record of the same identity.
func (d OompaDetail) Summary() Oompa {
	return Oompa{
		ID:         d.ID,
		FirstName:  d.FirstName,
		LastName:   d.LastName,
		Profession: d.Profession,
		Image:      d.Image,
	}
}
