package relaypoint

import (
	"errors"
	"fmt"

	"pickdrop/internal/core/domain/model/kernel"
)

// Record is the flat shape relay points arrive in from a directory source.
type Record struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Address        string  `json:"address"`
	District       string  `json:"district,omitempty"`
	Lat            float64 `json:"lat"`
	Lng            float64 `json:"lng"`
	Type           string  `json:"type"`
	OperatingHours string  `json:"hours,omitempty"`
}

// FromRecords converts raw directory records. Any invalid record fails the whole batch
// with ErrInvalidCatalog; all causes are joined so the source can be fixed in one pass.
func FromRecords(records []Record) ([]RelayPoint, error) {
	points := make([]RelayPoint, 0, len(records))
	var causes []error

	for i, r := range records {
		p, err := r.toRelayPoint()
		if err != nil {
			causes = append(causes, fmt.Errorf("record %d (id %q): %w", i, r.ID, err))
			continue
		}
		points = append(points, p)
	}

	if len(causes) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(causes...))
	}

	return points, nil
}

// ToRecord flattens a relay point for persistence or transport.
func ToRecord(p RelayPoint) Record {
	return Record{
		ID:             p.ID(),
		Name:           p.Name(),
		Address:        p.Address(),
		District:       p.District(),
		Lat:            p.Coordinates().Lat(),
		Lng:            p.Coordinates().Lng(),
		Type:           p.Type().String(),
		OperatingHours: p.OperatingHours(),
	}
}

func (r Record) toRelayPoint() (RelayPoint, error) {
	coordinates, coordErr := kernel.NewCoordinates(r.Lat, r.Lng)
	pointType, typeErr := ParseType(r.Type)
	if err := errors.Join(coordErr, typeErr); err != nil {
		return RelayPoint{}, err
	}

	p, err := NewRelayPoint(r.ID, r.Name, r.Address, coordinates, pointType, r.OperatingHours)
	if err != nil {
		return RelayPoint{}, err
	}

	return p.WithDistrict(r.District), nil
}
