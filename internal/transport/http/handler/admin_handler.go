package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-hr-events/internal/core/auth"
	"go-hr-events/internal/core/config"
	"go-hr-events/internal/domain"
	resp "go-hr-events/internal/transport/http/response"
	"go-hr-events/pkg/utils"
)

// AdminService is the operator surface of the application layer.
type AdminService interface {
	ListUsers(ctx context.Context, includeInactive bool, queriedBy *int64) ([]domain.User, error)
	SetUserActive(ctx context.Context, id int64, active bool, changedBy *int64) (bool, error)
	EventsOfKind(ctx context.Context, t domain.EventType) ([]domain.Event, error)
}

type AdminHandler struct {
	svc   AdminService
	jwter *auth.JWTer
	creds config.AdminAuth
}

func NewAdminHandler(svc AdminService, jwter *auth.JWTer, creds config.AdminAuth) *AdminHandler {
	return &AdminHandler{svc: svc, jwter: jwter, creds: creds}
}

func (h *AdminHandler) Register(g *gin.RouterGroup) {
	g.GET("/users", h.ListUsers)
	g.POST("/users/:id/activate", h.Activate)
	g.POST("/users/:id/deactivate", h.Deactivate)
	g.GET("/events", h.EventsByType)
}

type tokenIn struct {
	User     string `json:"user" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// IssueToken exchanges the operator credentials for an admin JWT. Mounted
// outside the guarded group.
func (h *AdminHandler) IssueToken(c *gin.Context) {
	var in tokenIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	if in.User != h.creds.User || !utils.CheckPassword(in.Password, h.creds.PasswordHash) {
		c.JSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, "invalid credentials"))
		return
	}
	tok, err := h.jwter.Issue(0, "admin")
	if err != nil || tok == "" {
		c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, "issue token failed"))
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"token": tok}))
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"
	users, err := h.svc.ListUsers(c.Request.Context(), includeInactive, actor(c, c.Query("queried_by")))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(users))
}

func (h *AdminHandler) Activate(c *gin.Context)   { h.setActive(c, true) }
func (h *AdminHandler) Deactivate(c *gin.Context) { h.setActive(c, false) }

func (h *AdminHandler) setActive(c *gin.Context, active bool) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	changed, err := h.svc.SetUserActive(c.Request.Context(), id, active, actor(c, c.Query("changed_by")))
	if err != nil {
		writeErr(c, err)
		return
	}
	if !changed {
		c.JSON(http.StatusNotFound, resp.Error(resp.CodeNotFound, "user not found or unchanged"))
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"id": id, "is_active": active}))
}

func (h *AdminHandler) EventsByType(c *gin.Context) {
	t := c.Query("type")
	if t == "" {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, "missing type"))
		return
	}
	events, err := h.svc.EventsOfKind(c.Request.Context(), domain.EventType(t))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(events))
}
