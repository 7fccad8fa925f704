package http

import (
	"errors"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/oapi-codegen/runtime"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"pickdrop/internal/core/domain/model/kernel"
	"pickdrop/internal/pkg/errs"
)

const specPath = "/api/v1/openapi.json"

// ListRelayPointsParams are the query parameters of GET /api/v1/relay-points.
type ListRelayPointsParams struct {
	Q        *string
	Type     *string
	Lat      *float64
	Lng      *float64
	RadiusKm *float64
	Exclude  *[]string
}

// ListDraftsParams are the query parameters of GET /api/v1/drafts.
type ListDraftsParams struct {
	Status *[]string
	Limit  *int
}

// serverWrapper binds path and query parameters before calling the Server.
type serverWrapper struct {
	handler *Server
}

type draftHandler func(c echo.Context, id kernel.UUID) error

func (w *serverWrapper) withDraftID(next draftHandler) echo.HandlerFunc {
	return func(c echo.Context) error {
		var raw string
		err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &raw,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
		if err != nil {
			return badRequest(c, "Invalid format for parameter id: "+err.Error())
		}

		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return writeError(c, errs.NewValueIsInvalidErrorWithCause("id", err))
		}
		return next(c, id)
	}
}

func (w *serverWrapper) ListRelayPoints(c echo.Context) error {
	var params ListRelayPointsParams
	query := c.QueryParams()

	bindings := []struct {
		name string
		dest any
	}{
		{"q", &params.Q},
		{"type", &params.Type},
		{"lat", &params.Lat},
		{"lng", &params.Lng},
		{"radiusKm", &params.RadiusKm},
		{"exclude", &params.Exclude},
	}
	for _, b := range bindings {
		if err := runtime.BindQueryParameter("form", true, false, b.name, query, b.dest); err != nil {
			return badRequest(c, "Invalid format for parameter "+b.name+": "+err.Error())
		}
	}

	return w.handler.ListRelayPoints(c, params)
}

func (w *serverWrapper) ListDrafts(c echo.Context) error {
	var params ListDraftsParams
	query := c.QueryParams()

	if err := runtime.BindQueryParameter("form", true, false, "status", query, &params.Status); err != nil {
		return badRequest(c, "Invalid format for parameter status: "+err.Error())
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", query, &params.Limit); err != nil {
		return badRequest(c, "Invalid format for parameter limit: "+err.Error())
	}

	return w.handler.ListDrafts(c, params)
}

// RegisterHandlers mounts every route, the OpenAPI document and the Swagger UI.
func RegisterHandlers(e *echo.Echo, s *Server, doc *openapi3.T) {
	w := &serverWrapper{handler: s}

	e.GET("/health", s.GetHealth)
	e.GET(specPath, specHandler(doc))
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL(specPath)))

	api := e.Group("/api/v1")
	api.POST("/quotes", s.CreateQuote)
	api.GET("/relay-points", w.ListRelayPoints)
	api.GET("/drafts", w.ListDrafts)
	api.POST("/drafts", s.StartDraft)
	api.GET("/drafts/:id", w.withDraftID(s.GetDraft))
	api.DELETE("/drafts/:id", w.withDraftID(s.RestartDraft))
	api.PUT("/drafts/:id/package", w.withDraftID(s.SavePackage))
	api.POST("/drafts/:id/package", w.withDraftID(s.SubmitPackage))
	api.POST("/drafts/:id/route", w.withDraftID(s.SelectRoute))
	api.POST("/drafts/:id/payment-choice", w.withDraftID(s.ChoosePayment))
	api.POST("/drafts/:id/payment", w.withDraftID(s.ResolvePayment))
	api.POST("/drafts/:id/confirm", w.withDraftID(s.ConfirmDraft))
	api.POST("/drafts/:id/advance", w.withDraftID(s.AdvanceDraft))
	api.POST("/drafts/:id/cancel", w.withDraftID(s.CancelDraft))
}

// NewEcho builds the echo instance with recovery, request ids and access logging.
func NewEcho(s *Server, doc *openapi3.T, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		var he *echo.HTTPError
		if errors.As(err, &he) {
			_ = c.JSON(he.Code, Error{Code: he.Code, Message: http.StatusText(he.Code)})
			return
		}
		_ = writeError(c, err)
	}

	RegisterHandlers(e, s, doc)
	return e
}
