package ports

import (
	"context"

	"pickdrop/internal/core/domain/model/relaypoint"
)

// RelayPointDirectory is the external source of relay points.
type RelayPointDirectory interface {
	Fetch(ctx context.Context) ([]relaypoint.RelayPoint, error)
}
