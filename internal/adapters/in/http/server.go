// Package http exposes the ordering workflow over REST with echo.
package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"pickdrop/internal/core/application/usecases/commands"
	"pickdrop/internal/core/application/usecases/queries"
	"pickdrop/internal/core/domain/model/kernel"
	"pickdrop/internal/core/domain/model/order"
)

// DraftLister is satisfied by queries.ListDraftsQueryHandler. It is optional because
// only the PostgreSQL backend can serve it.
type DraftLister interface {
	Handle(ctx context.Context, query queries.ListDraftsQuery) ([]queries.ListDraftsQueryResponse, error)
}

// Handlers groups the use cases the server delegates to.
type Handlers struct {
	StartDraft     commands.StartDraftCommandHandler
	SubmitPackage  commands.SubmitPackageCommandHandler
	SelectRoute    commands.SelectRouteCommandHandler
	ChoosePayment  commands.ChoosePaymentCommandHandler
	ResolvePayment commands.ResolvePaymentCommandHandler
	ConfirmDraft   commands.ConfirmDraftCommandHandler
	AdvanceDraft   commands.AdvanceDraftCommandHandler
	CancelDraft    commands.CancelDraftCommandHandler
	RestartDraft   commands.RestartDraftCommandHandler

	GetQuote        queries.GetQuoteQueryHandler
	GetDraft        queries.GetDraftQueryHandler
	ListRelayPoints queries.ListRelayPointsQueryHandler
	ListDrafts      DraftLister
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	h Handlers
}

func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

// CreateQuote handles POST /api/v1/quotes.
func (s *Server) CreateQuote(c echo.Context) error {
	var req QuoteRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	opts, err := req.ServiceOptions.toDomain()
	if err != nil {
		return writeError(c, err)
	}

	query := queries.NewGetQuoteQuery(req.Package, opts, req.DeparturePointID, req.ArrivalPointID)
	res, err := s.h.GetQuote.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	quote := Quote{Breakdown: res.Breakdown}
	if res.Route != nil {
		quote.DistanceKm = res.Route.DistanceKm
	}
	return c.JSON(http.StatusOK, quote)
}

// ListRelayPoints handles GET /api/v1/relay-points.
func (s *Server) ListRelayPoints(c echo.Context, params ListRelayPointsParams) error {
	filter := queries.ListRelayPointsFilter{
		Search:     deref(params.Q),
		Type:       deref(params.Type),
		RadiusKm:   deref(params.RadiusKm),
		ExcludeIDs: deref(params.Exclude),
	}
	if params.Lat != nil || params.Lng != nil {
		if params.Lat == nil || params.Lng == nil {
			return badRequest(c, "lat and lng must be given together")
		}
		near, err := kernel.NewCoordinates(*params.Lat, *params.Lng)
		if err != nil {
			return writeError(c, err)
		}
		filter.Near = &near
	}

	query, err := queries.NewListRelayPointsQuery(filter)
	if err != nil {
		return writeError(c, err)
	}

	res, err := s.h.ListRelayPoints.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	points := make([]RelayPoint, 0, len(res))
	for _, r := range res {
		points = append(points, relayPointFromQuery(r))
	}
	return c.JSON(http.StatusOK, points)
}

// ListDrafts handles GET /api/v1/drafts.
func (s *Server) ListDrafts(c echo.Context, params ListDraftsParams) error {
	if s.h.ListDrafts == nil {
		return c.JSON(http.StatusNotImplemented, Error{
			Code:    http.StatusNotImplemented,
			Message: "Listing drafts needs the postgres draft store",
		})
	}

	statuses := make([]order.Status, 0, len(deref(params.Status)))
	for _, raw := range deref(params.Status) {
		st, err := order.ParseStatus(raw)
		if err != nil {
			return writeError(c, err)
		}
		statuses = append(statuses, st)
	}

	query, err := queries.NewListDraftsQuery(statuses, deref(params.Limit))
	if err != nil {
		return writeError(c, err)
	}

	rows, err := s.h.ListDrafts.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	res := make([]DraftSummary, 0, len(rows))
	for _, r := range rows {
		res = append(res, draftSummaryFromQuery(r))
	}
	return c.JSON(http.StatusOK, res)
}

// StartDraft handles POST /api/v1/drafts.
func (s *Server) StartDraft(c echo.Context) error {
	draft, err := s.h.StartDraft.Handle(c.Request().Context(), commands.NewStartDraftCommand())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, draftFromDomain(draft))
}

// GetDraft handles GET /api/v1/drafts/{id}, falling back to the archive.
func (s *Server) GetDraft(c echo.Context, id kernel.UUID) error {
	query, err := queries.NewGetDraftQuery(id)
	if err != nil {
		return writeError(c, err)
	}

	res, err := s.h.GetDraft.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	body := draftFromDomain(res.Draft)
	body.Archived = res.Archived
	return c.JSON(http.StatusOK, body)
}

// RestartDraft handles DELETE /api/v1/drafts/{id}.
func (s *Server) RestartDraft(c echo.Context, id kernel.UUID) error {
	cmd, err := commands.NewRestartDraftCommand(id)
	if err != nil {
		return writeError(c, err)
	}
	if err = s.h.RestartDraft.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SavePackage handles PUT /api/v1/drafts/{id}/package.
func (s *Server) SavePackage(c echo.Context, id kernel.UUID) error {
	return s.handlePackage(c, id, true)
}

// SubmitPackage handles POST /api/v1/drafts/{id}/package.
func (s *Server) SubmitPackage(c echo.Context, id kernel.UUID) error {
	return s.handlePackage(c, id, false)
}

func (s *Server) handlePackage(c echo.Context, id kernel.UUID, partial bool) error {
	var req PackageRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	opts, err := req.ServiceOptions.toDomain()
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := commands.NewSubmitPackageCommand(id, req.Package, opts, partial)
	if err != nil {
		return writeError(c, err)
	}

	draft, err := s.h.SubmitPackage.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, draftFromDomain(draft))
}

// SelectRoute handles POST /api/v1/drafts/{id}/route.
func (s *Server) SelectRoute(c echo.Context, id kernel.UUID) error {
	var req RouteRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewSelectRouteCommand(id, req.DeparturePointID, req.ArrivalPointID)
	if err != nil {
		return writeError(c, err)
	}

	draft, err := s.h.SelectRoute.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, draftFromDomain(draft))
}

// ChoosePayment handles POST /api/v1/drafts/{id}/payment-choice.
func (s *Server) ChoosePayment(c echo.Context, id kernel.UUID) error {
	var req PaymentChoiceRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewChoosePaymentCommand(id, req.Recipient, req.PaymentMethod)
	if err != nil {
		return writeError(c, err)
	}

	draft, err := s.h.ChoosePayment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, draftFromDomain(draft))
}

// ResolvePayment handles POST /api/v1/drafts/{id}/payment.
func (s *Server) ResolvePayment(c echo.Context, id kernel.UUID) error {
	cmd, err := commands.NewResolvePaymentCommand(id)
	if err != nil {
		return writeError(c, err)
	}

	draft, receipt, err := s.h.ResolvePayment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}

	body := draftFromDomain(draft)
	body.PaymentReference = receipt.Reference
	return c.JSON(http.StatusOK, body)
}

// ConfirmDraft handles POST /api/v1/drafts/{id}/confirm.
func (s *Server) ConfirmDraft(c echo.Context, id kernel.UUID) error {
	cmd, err := commands.NewConfirmDraftCommand(id)
	if err != nil {
		return writeError(c, err)
	}

	draft, err := s.h.ConfirmDraft.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, draftFromDomain(draft))
}

// AdvanceDraft handles POST /api/v1/drafts/{id}/advance.
func (s *Server) AdvanceDraft(c echo.Context, id kernel.UUID) error {
	var req AdvanceRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewAdvanceDraftCommand(id, req.Status)
	if err != nil {
		return writeError(c, err)
	}

	draft, err := s.h.AdvanceDraft.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, draftFromDomain(draft))
}

// CancelDraft handles POST /api/v1/drafts/{id}/cancel. The body is optional.
func (s *Server) CancelDraft(c echo.Context, id kernel.UUID) error {
	var req CancelRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewCancelDraftCommand(id, req.Reason)
	if err != nil {
		return writeError(c, err)
	}

	draft, err := s.h.CancelDraft.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, draftFromDomain(draft))
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
