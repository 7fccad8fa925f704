package order

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"pickdrop/internal/pkg/errs"
)

const (
	recipientNameMinLen  = 3
	recipientPhoneMinLen = 8
)

// RecipientInfo identifies who collects the parcel at the arrival relay point.
type RecipientInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// Normalized trims every field.
func (r RecipientInfo) Normalized() RecipientInfo {
	return RecipientInfo{
		Name:  strings.TrimSpace(r.Name),
		Phone: strings.TrimSpace(r.Phone),
		Email: strings.TrimSpace(r.Email),
	}
}

// Validate requires a name longer than two characters and a phone of at least eight,
// both measured after trimming. The email is optional but must parse when present.
func (r RecipientInfo) Validate() error {
	n := r.Normalized()
	failed := errs.NewValidationFailedError()

	if utf8.RuneCountInString(n.Name) < recipientNameMinLen {
		failed.Add("recipient.name", "must be longer than 2 characters")
	}
	if utf8.RuneCountInString(n.Phone) < recipientPhoneMinLen {
		failed.Add("recipient.phone", "must have at least 8 characters")
	}
	if n.Email != "" {
		if addr, err := mail.ParseAddress(n.Email); err != nil || addr.Address != n.Email {
			failed.Add("recipient.email", "is not a valid address")
		}
	}

	return failed.OrNil()
}
