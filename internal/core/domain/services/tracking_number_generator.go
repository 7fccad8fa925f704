package services

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"

	"pickdrop/internal/core/domain/model/order"
	"pickdrop/internal/pkg/errs"
)

const (
	// DefaultTrackingPrefix is the carrier prefix of tracking numbers.
	DefaultTrackingPrefix = "PDL"

	base36Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	timeDigits     = 10_000_000
)

var trackingPrefixPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// TrackingNumberGenerator builds PREFIX + last seven digits of the Unix millisecond
// clock + three random base-36 characters. Uniqueness is enforced by the store.
type TrackingNumberGenerator struct {
	prefix string
	now    func() time.Time
	intN   func(n int) int
}

// TrackingOption customises a TrackingNumberGenerator.
type TrackingOption func(*TrackingNumberGenerator)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) TrackingOption {
	return func(g *TrackingNumberGenerator) { g.now = now }
}

// WithRandom replaces rand.IntN.
func WithRandom(intN func(n int) int) TrackingOption {
	return func(g *TrackingNumberGenerator) { g.intN = intN }
}

func NewTrackingNumberGenerator(prefix string, opts ...TrackingOption) (*TrackingNumberGenerator, error) {
	if !trackingPrefixPattern.MatchString(prefix) {
		return nil, errs.NewValueIsInvalidErrorWithCause("trackingPrefix", fmt.Errorf("%q is not three uppercase letters", prefix))
	}

	g := &TrackingNumberGenerator{
		prefix: prefix,
		now:    time.Now,
		intN:   rand.IntN, //nolint:gosec // not a secret, uniqueness is checked by the store
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Generate returns a new tracking number.
func (g *TrackingNumberGenerator) Generate() order.TrackingNumber {
	suffix := make([]byte, 3)
	for i := range suffix {
		suffix[i] = base36Alphabet[g.intN(len(base36Alphabet))]
	}

	millis := g.now().UnixMilli() % timeDigits
	if millis < 0 {
		millis = -millis
	}
	return order.TrackingNumber(fmt.Sprintf("%s%07d%s", g.prefix, millis, suffix))
}
