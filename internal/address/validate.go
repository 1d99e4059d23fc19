package address

import (
	"regexp"
	"strings"

	"github.com/RanjithMathi/freshto-gateway/internal/backend"
)

var (
	zipCodeRe = regexp.MustCompile(`^\d{6}$`)
	phoneRe   = regexp.MustCompile(`^[6-9]\d{9}$`)
)

// ValidateDraft runs the client-side form checks. A failing draft never
// reaches the backend.
func ValidateDraft(d Draft) error {
	if strings.TrimSpace(d.Line1) == "" {
		return &backend.ValidationError{Field: "addressLine1", Reason: "must not be empty"}
	}
	if strings.TrimSpace(d.City) == "" {
		return &backend.ValidationError{Field: "city", Reason: "must not be empty"}
	}
	if strings.TrimSpace(d.State) == "" {
		return &backend.ValidationError{Field: "state", Reason: "must not be empty"}
	}
	if !zipCodeRe.MatchString(strings.TrimSpace(d.ZipCode)) {
		return &backend.ValidationError{Field: "zipCode", Reason: "must be exactly 6 digits"}
	}
	if phone := strings.TrimSpace(d.ContactPhone); phone != "" && !phoneRe.MatchString(phone) {
		return &backend.ValidationError{Field: "contactPhone", Reason: "must be a valid 10-digit mobile number"}
	}
	switch d.Type {
	case TypeHome, TypeWork, TypeOther:
	default:
		return &backend.ValidationError{Field: "type", Reason: "must be HOME, WORK or OTHER"}
	}
	return nil
}
