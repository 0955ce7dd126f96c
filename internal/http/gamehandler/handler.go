package gamehandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anoooon99999-netizen/online-button/internal/services/game"
)

type Handler struct {
	svc game.IGameService
}

func New(svc game.IGameService) *Handler { return &Handler{svc: svc} }

func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/api/state", h.state)
	r.GET("/api/buttons", h.buttons)
	r.POST("/api/reset", h.reset)
}

// state returns the current round as JSON, the same snapshot a freshly
// connected websocket client receives.
func (h *Handler) state(c *gin.Context) {
	c.JSON(http.StatusOK, StateResponse{
		State:  h.svc.Snapshot(),
		Online: h.svc.OnlineCount(),
	})
}

// buttons lists the live user-created buttons.
func (h *Handler) buttons(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListButtons())
}

// reset forces the round back to waiting; the next countdown is armed
// automatically.
func (h *Handler) reset(c *gin.Context) {
	h.svc.ForceReset()
	c.Status(http.StatusAccepted)
}
