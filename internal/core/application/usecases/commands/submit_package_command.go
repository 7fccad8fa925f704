package commands

import (
	"errors"

	"pickdrop/internal/core/domain/model/kernel"
	"pickdrop/internal/core/domain/model/parcel"
	"pickdrop/internal/pkg/guard"
)

var ErrSubmitPackageCommandIsNotConstructed = errors.New(
	"SubmitPackageCommand must be created via NewSubmitPackageCommand constructor",
)

// SubmitPackageCommand carries package entry for a draft. A partial command only
// saves progress; a complete one validates the package and completes the step.
type SubmitPackageCommand struct {
	draftID kernel.UUID
	pkg     parcel.PackageSpec
	opts    parcel.ServiceOptions
	partial bool

	guard guard.ConstructorGuard
}

// NewSubmitPackageCommand only checks the draft id. Package validation belongs to the
// draft so that a partial save can hold an incomplete form.
func NewSubmitPackageCommand(
	draftID kernel.UUID,
	pkg parcel.PackageSpec,
	opts parcel.ServiceOptions,
	partial bool,
) (SubmitPackageCommand, error) {
	if err := validateDraftID(draftID); err != nil {
		return SubmitPackageCommand{}, err
	}

	return SubmitPackageCommand{
		draftID: draftID,
		pkg:     pkg,
		opts:    opts,
		partial: partial,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitPackageCommand) Validate() error {
	return c.guard.Validate(ErrSubmitPackageCommandIsNotConstructed)
}

func (c SubmitPackageCommand) DraftID() kernel.UUID                  { return c.draftID }
func (c SubmitPackageCommand) Package() parcel.PackageSpec           { return c.pkg }
func (c SubmitPackageCommand) ServiceOptions() parcel.ServiceOptions { return c.opts }
func (c SubmitPackageCommand) Partial() bool                         { return c.partial }
