package relaypoint

import (
	"fmt"
	"strings"

	"pickdrop/internal/pkg/errs"
)

// Type classifies a relay point by the kind of premises hosting it.
type Type string

const (
	TypeOffice Type = "office"
	TypeShop   Type = "shop"
	TypeAgency Type = "agency"
)

// ParseType accepts the canonical names and the legacy directory labels
// (bureau, commerce, agence).
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "office", "bureau":
		return TypeOffice, nil
	case "shop", "commerce":
		return TypeShop, nil
	case "agency", "agence":
		return TypeAgency, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%q is not a relay point type", s))
	}
}

func (t Type) Validate() error {
	switch t {
	case TypeOffice, TypeShop, TypeAgency:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%q is not a relay point type", string(t)))
	}
}

func (t Type) String() string {
	return string(t)
}
