package commands

import (
	"errors"
	"strings"

	"pickdrop/internal/core/domain/model/kernel"
	"pickdrop/internal/pkg/errs"
	"pickdrop/internal/pkg/guard"
)

var ErrSelectRouteCommandIsNotConstructed = errors.New(
	"SelectRouteCommand must be created via NewSelectRouteCommand constructor",
)

// SelectRouteCommand picks the relay points of a draft. An empty departure selects
// only the arrival and relies on the configured fixed departure point.
type SelectRouteCommand struct {
	draftID     kernel.UUID
	departureID string
	arrivalID   string

	guard guard.ConstructorGuard
}

func NewSelectRouteCommand(draftID kernel.UUID, departureID, arrivalID string) (SelectRouteCommand, error) {
	cmd := SelectRouteCommand{
		draftID:     draftID,
		departureID: strings.TrimSpace(departureID),
		arrivalID:   strings.TrimSpace(arrivalID),
		guard:       guard.NewConstructorGuard(),
	}

	var arrivalErr error
	if cmd.arrivalID == "" {
		arrivalErr = errs.NewValueIsRequiredError("arrivalPointId")
	}
	if err := errors.Join(validateDraftID(draftID), arrivalErr); err != nil {
		return SelectRouteCommand{}, err
	}
	return cmd, nil
}

func (c SelectRouteCommand) Validate() error {
	return c.guard.Validate(ErrSelectRouteCommandIsNotConstructed)
}

func (c SelectRouteCommand) DraftID() kernel.UUID { return c.draftID }
func (c SelectRouteCommand) DepartureID() string  { return c.departureID }
func (c SelectRouteCommand) ArrivalID() string    { return c.arrivalID }
