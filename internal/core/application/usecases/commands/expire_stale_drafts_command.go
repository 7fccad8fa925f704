package commands

import (
	"errors"
	"time"

	"pickdrop/internal/pkg/errs"
	"pickdrop/internal/pkg/guard"
)

// ExpiredReason is the cancel reason recorded on expired drafts.
const ExpiredReason = "expired"

var ErrExpireStaleDraftsCommandIsNotConstructed = errors.New(
	"ExpireStaleDraftsCommand must be created via NewExpireStaleDraftsCommand constructor",
)

// ExpireStaleDraftsCommand cancels drafts abandoned before a cut-off instant.
//
// Example:
//
//	cmd, _ := NewExpireStaleDraftsCommand(time.Now().Add(-72*time.Hour), 100)
//	expired, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    log.Printf("draft expiry failed: %v", err)
//	}
//	log.Printf("expired %d drafts", expired)
type ExpireStaleDraftsCommand struct {
	before time.Time
	limit  int

	guard guard.ConstructorGuard
}

// NewExpireStaleDraftsCommand requires a cut-off and a positive batch size.
func NewExpireStaleDraftsCommand(before time.Time, limit int) (ExpireStaleDraftsCommand, error) {
	var problems []error
	if before.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("before"))
	}
	if limit <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded"))
	}
	if err := errors.Join(problems...); err != nil {
		return ExpireStaleDraftsCommand{}, err
	}

	return ExpireStaleDraftsCommand{before: before, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (c ExpireStaleDraftsCommand) Validate() error {
	return c.guard.Validate(ErrExpireStaleDraftsCommandIsNotConstructed)
}

func (c ExpireStaleDraftsCommand) Before() time.Time { return c.before }
func (c ExpireStaleDraftsCommand) Limit() int        { return c.limit }
