package order

import (
	"fmt"
	"regexp"

	"pickdrop/internal/pkg/errs"
)

var trackingNumberPattern = regexp.MustCompile(`^[A-Z]{3}\d{7}[A-Z0-9]{3}$`)

// TrackingNumber is the public reference of a confirmed shipment: a three letter
// carrier prefix, seven time-derived digits and three random characters.
type TrackingNumber string

func ParseTrackingNumber(s string) (TrackingNumber, error) {
	tn := TrackingNumber(s)
	if err := tn.Validate(); err != nil {
		return "", err
	}
	return tn, nil
}

func (t TrackingNumber) Validate() error {
	if !trackingNumberPattern.MatchString(string(t)) {
		return errs.NewValueIsInvalidErrorWithCause("trackingNumber", fmt.Errorf("%q does not match %s", string(t), trackingNumberPattern))
	}
	return nil
}

func (t TrackingNumber) String() string {
	return string(t)
}
