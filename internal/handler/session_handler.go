package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rotisserie/eris"

	"github.com/jengzang/health-insights-go/internal/charts"
	"github.com/jengzang/health-insights-go/internal/middleware"
	"github.com/jengzang/health-insights-go/internal/models"
	"github.com/jengzang/health-insights-go/internal/service"
	"github.com/jengzang/health-insights-go/internal/shell"
	"github.com/jengzang/health-insights-go/internal/view"
	"github.com/jengzang/health-insights-go/pkg/response"
)

// SessionHandler handles the interactive dashboard session
type SessionHandler struct {
	service *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(service *service.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

// SessionResponse carries a fresh token with the first snapshot
type SessionResponse struct {
	Token    string        `json:"token"`
	ID       string        `json:"id"`
	Snapshot view.Snapshot `json:"snapshot"`
}

// SwitchViewRequest is the body of PUT /session/view
type SwitchViewRequest struct {
	View string `json:"view" binding:"required"`
}

// ChartQuery sizes an exported chart
type ChartQuery struct {
	Width  int `form:"width" binding:"omitempty,min=64,max=2048"`
	Height int `form:"height" binding:"omitempty,min=64,max=2048"`
}

// CreateSession handles POST /api/v1/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	token, sess, snap, err := h.service.Create()
	if err != nil {
		response.InternalError(c, "Failed to create session", err)
		return
	}
	c.JSON(http.StatusCreated, response.Response{
		Code:    0,
		Message: "success",
		Data: SessionResponse{
			Token:    token,
			ID:       sess.ID,
			Snapshot: snap,
		},
	})
}

// GetSnapshot handles GET /api/v1/session
func (h *SessionHandler) GetSnapshot(c *gin.Context) {
	response.Success(c, h.service.Snapshot(middleware.Session(c)))
}

// SwitchView handles PUT /api/v1/session/view
func (h *SessionHandler) SwitchView(c *gin.Context) {
	var req SwitchViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	v, ok := models.ParseView(req.View)
	if !ok {
		response.BadRequest(c, "Unknown view", eris.Errorf("handler: view %q", req.View))
		return
	}
	response.Success(c, h.service.SwitchView(middleware.Session(c), v))
}

// PostEvent handles POST /api/v1/session/events
func (h *SessionHandler) PostEvent(c *gin.Context) {
	var ev shell.Event
	if err := c.ShouldBindJSON(&ev); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	snap, err := h.service.Apply(middleware.Session(c), ev)
	if err != nil {
		switch {
		case eris.Is(err, shell.ErrUnknownEvent):
			response.BadRequest(c, "Unknown event type", err)
		case eris.Is(err, shell.ErrEventNotAllowed):
			response.BadRequest(c, "Event not available in this view", err)
		case eris.Is(err, shell.ErrMissingValue):
			response.BadRequest(c, "Event is missing a value", err)
		case eris.Is(err, shell.ErrUnknownHotspot):
			response.BadRequest(c, "Unknown hotspot", err)
		default:
			response.InternalError(c, "Failed to apply event", err)
		}
		return
	}
	response.Success(c, snap)
}

// GetChart handles GET /api/v1/session/charts/:id and writes a PNG
func (h *SessionHandler) GetChart(c *gin.Context) {
	var q ChartQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	png, err := h.service.Chart(middleware.Session(c), c.Param("id"), q.Width, q.Height)
	if err != nil {
		switch {
		case eris.Is(err, service.ErrNotFound):
			response.NotFound(c, "Chart not found in this view", err)
		case eris.Is(err, charts.ErrEmptyChart):
			response.NotFound(c, "Chart has no data", err)
		default:
			response.InternalError(c, "Failed to render chart", err)
		}
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// CloseSession handles DELETE /api/v1/session
func (h *SessionHandler) CloseSession(c *gin.Context) {
	h.service.Close(middleware.Session(c))
	c.Status(http.StatusNoContent)
}
