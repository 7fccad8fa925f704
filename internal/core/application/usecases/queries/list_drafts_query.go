package queries

import (
	"errors"
	"time"

	"pickdrop/internal/core/domain/model/kernel"
	"pickdrop/internal/core/domain/model/order"
	"pickdrop/internal/pkg/errs"
	"pickdrop/internal/pkg/guard"
)

// DefaultListDraftsLimit caps ListDraftsQuery when no limit is given.
const DefaultListDraftsLimit = 100

var ErrListDraftsQueryIsNotConstructed = errors.New(
	"ListDraftsQuery must be created via NewListDraftsQuery constructor",
)

// ListDraftsQuery lists live drafts, most recently updated first, for back-office
// screens such as the relay counter waiting for deposits.
//
// Example:
//
//	query, _ := NewListDraftsQuery([]order.Status{order.PendingCashAtDeposit, order.Confirmed}, 50)
//	rows, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	for _, r := range rows {
//	    fmt.Println(r.ID, r.Status, r.TrackingNumber)
//	}
type ListDraftsQuery struct {
	statuses []order.Status
	limit    int

	guard guard.ConstructorGuard
}

// NewListDraftsQuery lists every live status when statuses is empty.
func NewListDraftsQuery(statuses []order.Status, limit int) (ListDraftsQuery, error) {
	var problems []error
	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			problems = append(problems, err)
		}
	}
	if limit < 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("limit", limit, 0, "unbounded"))
	}
	if err := errors.Join(problems...); err != nil {
		return ListDraftsQuery{}, err
	}

	if limit == 0 {
		limit = DefaultListDraftsLimit
	}
	return ListDraftsQuery{statuses: statuses, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q ListDraftsQuery) Validate() error {
	return q.guard.Validate(ErrListDraftsQueryIsNotConstructed)
}

// ListDraftsQueryResponse is a draft summary row. Total is nil until payment
// resolves.
type ListDraftsQueryResponse struct {
	ID             kernel.UUID
	Status         order.Status
	TrackingNumber string
	Total          *int64
	UpdatedAt      time.Time
}
