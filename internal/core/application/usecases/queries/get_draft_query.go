package queries

import (
	"errors"

	"pickdrop/internal/core/domain/model/kernel"
	"pickdrop/internal/pkg/guard"
)

var ErrGetDraftQueryIsNotConstructed = errors.New(
	"GetDraftQuery must be created via NewGetDraftQuery constructor",
)

// GetDraftQuery reads one draft, live or archived.
type GetDraftQuery struct {
	draftID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetDraftQuery(draftID kernel.UUID) (GetDraftQuery, error) {
	if err := draftID.Validate(); err != nil {
		return GetDraftQuery{}, err
	}
	return GetDraftQuery{draftID: draftID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDraftQuery) Validate() error {
	return q.guard.Validate(ErrGetDraftQueryIsNotConstructed)
}

func (q GetDraftQuery) DraftID() kernel.UUID { return q.draftID }
