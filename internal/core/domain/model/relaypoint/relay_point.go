package relaypoint

import (
	"errors"
	"strings"

	"pickdrop/internal/core/domain/model/kernel"
	"pickdrop/internal/pkg/errs"
	"pickdrop/internal/pkg/guard"
)

// ErrRelayPointIsNotConstructed is returned when validating a zero-value RelayPoint.
var ErrRelayPointIsNotConstructed = errs.NewValueIsRequiredError("relay point must be created via NewRelayPoint")

// RelayPoint is a location where parcels are dropped off or picked up.
// Operating hours are kept verbatim; the core never interprets them.
type RelayPoint struct { //nolint:recvcheck //using for validation
	id             string
	name           string
	address        string
	district       string
	coordinates    kernel.Coordinates
	pointType      Type
	operatingHours string
	guard          guard.ConstructorGuard
}

// NewRelayPoint validates and builds a relay point. Every violated field is reported.
func NewRelayPoint(
	id string,
	name string,
	address string,
	coordinates kernel.Coordinates,
	pointType Type,
	operatingHours string,
) (RelayPoint, error) {
	p := RelayPoint{
		address:        strings.TrimSpace(address),
		operatingHours: operatingHours,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setCoordinates(coordinates),
		p.setType(pointType),
	); err != nil {
		return RelayPoint{}, err
	}

	return p, nil
}

// WithDistrict returns a copy carrying the neighbourhood the point belongs to.
// The district takes part in Search.
func (p RelayPoint) WithDistrict(district string) RelayPoint {
	p.district = strings.TrimSpace(district)
	return p
}

func (p RelayPoint) Validate() error {
	return p.guard.Validate(ErrRelayPointIsNotConstructed)
}

func (p RelayPoint) ID() string                      { return p.id }
func (p RelayPoint) Name() string                    { return p.name }
func (p RelayPoint) Address() string                 { return p.address }
func (p RelayPoint) District() string                { return p.district }
func (p RelayPoint) Coordinates() kernel.Coordinates { return p.coordinates }
func (p RelayPoint) Type() Type                      { return p.pointType }
func (p RelayPoint) OperatingHours() string          { return p.operatingHours }

func (p RelayPoint) String() string {
	return p.id + " " + p.name
}

func (p *RelayPoint) setID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.NewValueIsRequiredError("id")
	}

	p.id = id
	return nil
}

func (p *RelayPoint) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	p.name = name
	return nil
}

func (p *RelayPoint) setCoordinates(c kernel.Coordinates) error {
	if err := c.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("coordinates", err)
	}

	p.coordinates = c
	return nil
}

func (p *RelayPoint) setType(t Type) error {
	if err := t.Validate(); err != nil {
		return err
	}

	p.pointType = t
	return nil
}
