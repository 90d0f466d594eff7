package api

import (
	models "MacroPulse/internal/domain/models"
	"MacroPulse/internal/usecase"
	xhttp "MacroPulse/pkg/http"
	xlogger "MacroPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ViewsEchoHandler exposes the dashboard view endpoints over Echo.
type ViewsEchoHandler struct {
	logger *xlogger.Logger
	views  *usecase.ViewService
}

func NewViewsEchoHandler(logger *xlogger.Logger, views *usecase.ViewService) *ViewsEchoHandler {
	return &ViewsEchoHandler{logger: logger, views: views}
}

func (h *ViewsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/overview", h.Overview)
	g.GET("/yieldcurve", h.YieldCurve)
	g.GET("/inflation", h.Inflation)
	g.GET("/recession", h.Recession)
	g.GET("/series", h.Series)
	g.GET("/catalog", h.Catalog)
}

func (h *ViewsEchoHandler) Overview(c echo.Context) error {
	req := &models.OverviewRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.views.Overview(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("overview usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *ViewsEchoHandler) YieldCurve(c echo.Context) error {
	req := &models.YieldCurveRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.views.YieldCurve(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("yieldcurve usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *ViewsEchoHandler) Inflation(c echo.Context) error {
	req := &models.InflationRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.views.Inflation(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("inflation usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *ViewsEchoHandler) Recession(c echo.Context) error {
	req := &models.RecessionRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.views.Recession(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("recession usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *ViewsEchoHandler) Series(c echo.Context) error {
	req := &models.SeriesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.views.Series(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("series usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// Catalog lists the known series identifiers and their labels. Static data,
// no upstream call.
func (h *ViewsEchoHandler) Catalog(c echo.Context) error {
	return xhttp.SuccessResponse(c, models.Catalog)
}
