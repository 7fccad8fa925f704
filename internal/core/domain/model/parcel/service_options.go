package parcel

import (
	"fmt"
	"strings"

	"pickdrop/internal/pkg/errs"
)

// ExpressTier is the delivery speed the sender pays for.
type ExpressTier string

const (
	Standard  ExpressTier = "standard"
	Express72 ExpressTier = "72h"
	Express48 ExpressTier = "48h"
	Express24 ExpressTier = "24h"
)

// ParseExpressTier accepts the tier names; an empty string means Standard.
func ParseExpressTier(s string) (ExpressTier, error) {
	t := ExpressTier(strings.ToLower(strings.TrimSpace(s)))
	if t == "" {
		return Standard, nil
	}
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

// Validate accepts the four tiers and the empty string.
func (t ExpressTier) Validate() error {
	switch t {
	case "", Standard, Express72, Express48, Express24:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("expressTier", fmt.Errorf("%q is not an express tier", string(t)))
	}
}

// Normalize maps the empty tier to Standard.
func (t ExpressTier) Normalize() ExpressTier {
	if t == "" {
		return Standard
	}
	return t
}

func (t ExpressTier) String() string {
	return string(t.Normalize())
}

// ServiceOptions are the optional services layered on top of relay-to-relay transport.
type ServiceOptions struct {
	ExpressTier                  ExpressTier `json:"expressTier"`
	CourierPickupAtOrigin        bool        `json:"courierPickupAtOrigin"`
	CourierDeliveryAtDestination bool        `json:"courierDeliveryAtDestination"`
}

func (o ServiceOptions) Validate() error {
	return o.ExpressTier.Validate()
}
