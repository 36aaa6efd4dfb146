package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lequoctrung8581/weather-app-group-project-asm3/internal/domain/dashboard"
	"github.com/lequoctrung8581/weather-app-group-project-asm3/internal/domain/session"
	apperrors "github.com/lequoctrung8581/weather-app-group-project-asm3/pkg/errors"
)

// Handler wires the HTTP transport to the dashboard and session domains.
type Handler struct {
	dashboardSvc dashboard.Service
	sessionSvc   session.Service
	logger       *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(dashboardSvc dashboard.Service, sessionSvc session.Service, logger *slog.Logger) *Handler {
	return &Handler{
		dashboardSvc: dashboardSvc,
		sessionSvc:   sessionSvc,
		logger:       logger.With("component", "http.handler"),
	}
}

// CreateSession mints an anonymous session token for a new dashboard client.
func (h *Handler) CreateSession(c *gin.Context) {
	token, err := h.sessionSvc.Create()
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "session_failed", errMessage(err), err))
		return
	}
	c.JSON(http.StatusCreated, token)
}

// GetSnapshot returns the current dashboard state for the session.
func (h *Handler) GetSnapshot(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing session", nil))
		return
	}
	snap, err := h.dashboardSvc.Snapshot(c.Request.Context(), sessionID)
	if err != nil {
		abortWithError(c, dashboardError(err))
		return
	}
	c.JSON(http.StatusOK, snap)
}

type searchRequest struct {
	Query string `json:"query"`
}

// Search resolves a free-text city query and fetches its forecast. Upstream
// failures surface inside the snapshot (state/message), not as HTTP errors.
func (h *Handler) Search(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing session", nil))
		return
	}
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	snap, err := h.dashboardSvc.SubmitCity(c.Request.Context(), sessionID, req.Query)
	if err != nil {
		abortWithError(c, dashboardError(err))
		return
	}
	c.JSON(http.StatusOK, snap)
}

type locateRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Locate runs the GPS flow with coordinates the browser obtained from the
// device location API.
func (h *Handler) Locate(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing session", nil))
		return
	}
	var req locateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	if req.Latitude == nil || req.Longitude == nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "latitude and longitude are required", nil))
		return
	}
	snap, err := h.dashboardSvc.UseMyLocation(c.Request.Context(), sessionID, *req.Latitude, *req.Longitude)
	if err != nil {
		abortWithError(c, dashboardError(err))
		return
	}
	c.JSON(http.StatusOK, snap)
}

// ToggleUnits flips metric/imperial and re-fetches when coordinates are known.
func (h *Handler) ToggleUnits(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing session", nil))
		return
	}
	snap, err := h.dashboardSvc.ToggleUnits(c.Request.Context(), sessionID)
	if err != nil {
		abortWithError(c, dashboardError(err))
		return
	}
	c.JSON(http.StatusOK, snap)
}

// ToggleTheme flips the persisted dark mode flag.
func (h *Handler) ToggleTheme(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing session", nil))
		return
	}
	snap, err := h.dashboardSvc.ToggleTheme(c.Request.Context(), sessionID)
	if err != nil {
		abortWithError(c, dashboardError(err))
		return
	}
	c.JSON(http.StatusOK, snap)
}

// History lists the recent searches, most recent first.
func (h *Handler) History(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing session", nil))
		return
	}
	tags, err := h.dashboardSvc.History(c.Request.Context(), sessionID)
	if err != nil {
		abortWithError(c, dashboardError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": tags})
}

func dashboardError(err error) *HTTPError {
	status := http.StatusInternalServerError
	code := "dashboard_failed"
	if apperrors.IsCode(err, "invalid_input") {
		status = http.StatusBadRequest
		code = "invalid_request"
	}
	return NewHTTPError(status, code, errMessage(err), err)
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
