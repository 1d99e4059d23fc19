package address

import "strings"

type Type string

const (
	TypeHome  Type = "HOME"
	TypeWork  Type = "WORK"
	TypeOther Type = "OTHER"
)

// Display returns the human-readable form of an address type.
func (t Type) Display() string {
	switch t {
	case TypeHome:
		return "Home"
	case TypeWork:
		return "Work"
	case TypeOther:
		return "Other"
	}
	return string(t)
}

type Address struct {
	ID           int64  `json:"id"`
	Line1        string `json:"addressLine1"`
	Line2        string `json:"addressLine2,omitempty"`
	Landmark     string `json:"landmark,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
	ContactPhone string `json:"contactPhone,omitempty"`
	Type         Type   `json:"type"`
	IsDefault    bool   `json:"isDefault"`
}

// Draft is the payload for creating or updating an address.
type Draft struct {
	Line1        string `json:"addressLine1"`
	Line2        string `json:"addressLine2,omitempty"`
	Landmark     string `json:"landmark,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
	ContactPhone string `json:"contactPhone,omitempty"`
	Type         Type   `json:"type"`
	IsDefault    bool   `json:"isDefault"`
}

// FullString joins the non-empty address parts into a single display line.
func (a Address) FullString() string {
	parts := []string{a.Line1, a.Line2, a.Landmark, a.City, a.State}
	if a.ZipCode != "" {
		parts = append(parts, "PIN: "+a.ZipCode)
	}

	nonEmpty := parts[:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ", ")
}
