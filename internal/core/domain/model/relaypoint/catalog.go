package relaypoint

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"sync/atomic"

	"pickdrop/internal/core/domain/model/kernel"
	"pickdrop/internal/pkg/errs"
)

// ErrInvalidCatalog is returned when a batch of relay points cannot become the catalog.
var ErrInvalidCatalog = errors.New("invalid relay point catalog")

type catalogIndex struct {
	byID   map[string]RelayPoint
	sorted []RelayPoint
}

var emptyIndex = &catalogIndex{byID: map[string]RelayPoint{}}

// Catalog is the queryable set of relay points. Reads are lock-free; Load replaces the
// whole index in one atomic store.
type Catalog struct {
	index atomic.Pointer[catalogIndex]
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	c := &Catalog{}
	c.index.Store(emptyIndex)
	return c
}

// Load replaces the catalog. On failure the previous catalog stays in place and the
// returned error wraps ErrInvalidCatalog with every offending point.
func (c *Catalog) Load(points []RelayPoint) error {
	byID := make(map[string]RelayPoint, len(points))
	var causes []error

	for i, p := range points {
		if err := p.Validate(); err != nil {
			causes = append(causes, fmt.Errorf("point %d: %w", i, err))
			continue
		}
		if err := p.Coordinates().Validate(); err != nil {
			causes = append(causes, fmt.Errorf("point %q: %w", p.ID(), err))
			continue
		}
		if _, dup := byID[p.ID()]; dup {
			causes = append(causes, fmt.Errorf("point %q: duplicate id", p.ID()))
			continue
		}
		byID[p.ID()] = p
	}

	if len(causes) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(causes...))
	}

	sorted := make([]RelayPoint, 0, len(byID))
	for _, p := range byID {
		sorted = append(sorted, p)
	}
	slices.SortFunc(sorted, func(a, b RelayPoint) int {
		return strings.Compare(a.ID(), b.ID())
	})

	c.index.Store(&catalogIndex{byID: byID, sorted: sorted})
	return nil
}

// Get returns the relay point with the given id or an *errs.ObjectNotFoundError.
func (c *Catalog) Get(id string) (RelayPoint, error) {
	p, ok := c.current().byID[id]
	if !ok {
		return RelayPoint{}, errs.NewObjectNotFoundError("relayPointID", id)
	}
	return p, nil
}

// Contains reports whether id is part of the catalog.
func (c *Catalog) Contains(id string) bool {
	_, ok := c.current().byID[id]
	return ok
}

// All lists every point ordered by id. The slice is a copy.
func (c *Catalog) All() []RelayPoint {
	return slices.Clone(c.current().sorted)
}

// ByType lists the points of one type ordered by id.
func (c *Catalog) ByType(t Type) []RelayPoint {
	var out []RelayPoint
	for _, p := range c.current().sorted {
		if p.Type() == t {
			out = append(out, p)
		}
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.current().sorted)
}

// DistanceKm is the great-circle distance between two points. It is evaluated on the
// id-ordered pair so that swapping the arguments yields the identical float.
func (c *Catalog) DistanceKm(a, b RelayPoint) float64 {
	return Distance(a, b)
}

// Distance is DistanceKm without a catalog.
func Distance(a, b RelayPoint) float64 {
	if a.ID() == b.ID() {
		return 0
	}
	if a.ID() > b.ID() {
		a, b = b, a
	}

	ca, cb := a.Coordinates(), b.Coordinates()
	return kernel.Haversine(ca.Lat(), ca.Lng(), cb.Lat(), cb.Lng())
}

// DefaultNearbyRadiusKm is the radius used for "near me" listings.
const DefaultNearbyRadiusKm = 3.0

// FindNear returns the points within radiusKm (inclusive) of origin, nearest first,
// ties broken by ascending id.
func (c *Catalog) FindNear(origin kernel.Coordinates, radiusKm float64, excludeIDs []string) ([]RelayPoint, error) {
	if err := origin.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("origin", err)
	}
	if math.IsNaN(radiusKm) || radiusKm < 0 {
		return nil, errs.NewValueIsOutOfRangeError("radiusKm", radiusKm, 0, math.Inf(1))
	}

	type candidate struct {
		point    RelayPoint
		distance float64
	}

	var found []candidate
	for _, p := range c.current().sorted {
		if slices.Contains(excludeIDs, p.ID()) {
			continue
		}
		cp := p.Coordinates()
		d := kernel.Haversine(origin.Lat(), origin.Lng(), cp.Lat(), cp.Lng())
		if d <= radiusKm {
			found = append(found, candidate{point: p, distance: d})
		}
	}

	slices.SortStableFunc(found, func(a, b candidate) int {
		switch {
		case a.distance < b.distance:
			return -1
		case a.distance > b.distance:
			return 1
		default:
			return strings.Compare(a.point.ID(), b.point.ID())
		}
	})

	out := make([]RelayPoint, len(found))
	for i, f := range found {
		out[i] = f.point
	}
	return out, nil
}

// Search filters within by a case-insensitive substring of name, address or district.
// A blank query returns within unchanged.
func (c *Catalog) Search(query string, within []RelayPoint) []RelayPoint {
	return Search(query, within)
}

// Search is Catalog.Search without a catalog.
func Search(query string, within []RelayPoint) []RelayPoint {
	if strings.TrimSpace(query) == "" {
		return within
	}

	term := strings.ToLower(strings.TrimSpace(query))
	var out []RelayPoint
	for _, p := range within {
		if strings.Contains(strings.ToLower(p.Name()), term) ||
			strings.Contains(strings.ToLower(p.Address()), term) ||
			strings.Contains(strings.ToLower(p.District()), term) {
			out = append(out, p)
		}
	}
	return out
}

func (c *Catalog) current() *catalogIndex {
	if idx := c.index.Load(); idx != nil {
		return idx
	}
	return emptyIndex
}
