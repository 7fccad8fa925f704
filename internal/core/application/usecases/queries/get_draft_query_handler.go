package queries

import (
	"context"
	"errors"

	"pickdrop/internal/core/domain/model/order"
	"pickdrop/internal/core/ports"
	"pickdrop/internal/pkg/errs"
)

// GetDraftQueryResponse carries the draft and whether it came from the archive.
type GetDraftQueryResponse struct {
	Draft    *order.Draft
	Archived bool
}

type GetDraftQueryHandler struct {
	store    ports.DraftStore
	archiver ports.DraftArchiver
}

func NewGetDraftQueryHandler(store ports.DraftStore, archiver ports.DraftArchiver) GetDraftQueryHandler {
	return GetDraftQueryHandler{store: store, archiver: archiver}
}

// Handle looks in the live store first and falls back to the archive.
func (h GetDraftQueryHandler) Handle(ctx context.Context, query GetDraftQuery) (GetDraftQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDraftQueryResponse{}, err
	}

	draft, err := h.store.Load(ctx, query.DraftID())
	if err == nil {
		return GetDraftQueryResponse{Draft: draft}, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return GetDraftQueryResponse{}, err
	}

	draft, err = h.archiver.LoadArchived(ctx, query.DraftID())
	if err != nil {
		return GetDraftQueryResponse{}, err
	}
	return GetDraftQueryResponse{Draft: draft, Archived: true}, nil
}
