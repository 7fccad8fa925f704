package order

// Route is the pair of relay points a parcel travels between. DistanceKm is nil until
// both ends are resolved against the catalog.
type Route struct {
	DeparturePointID string   `json:"departurePointId"`
	ArrivalPointID   string   `json:"arrivalPointId"`
	DistanceKm       *float64 `json:"distanceKm"`
}

func (r Route) clone() Route {
	if r.DistanceKm != nil {
		d := *r.DistanceKm
		r.DistanceKm = &d
	}
	return r
}
