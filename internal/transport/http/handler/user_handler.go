package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"go-hr-events/internal/domain"
	mdw "go-hr-events/internal/transport/http/middleware"
	resp "go-hr-events/internal/transport/http/response"
)

// UserService is what the HTTP layer needs from the application layer.
type UserService interface {
	GetUser(ctx context.Context, id int64, queriedBy *int64) (*domain.User, error)
	CreateUser(ctx context.Context, in *domain.UserInput) (*domain.User, error)
	GetAllUsers(ctx context.Context, filters map[string]any, queriedBy *int64) ([]domain.User, error)
	UpdateUser(ctx context.Context, id int64, in *domain.UserInput, changedBy *int64) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) (bool, error)
	GetUserEvents(ctx context.Context, id int64, queriedBy *int64) ([]domain.Event, error)
	ChangePosition(ctx context.Context, id int64, newPosition string, newSalary float64, changedBy *int64) (*domain.User, error)
}

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler { return &UserHandler{svc: svc} }

func (h *UserHandler) Register(g *gin.RouterGroup) {
	g.GET("/users", h.List)
	g.POST("/users", h.Create)
	g.GET("/users/:id", h.Get)
	g.PUT("/users/:id", h.Update)
	g.DELETE("/users/:id", h.Delete)
	g.GET("/users/:id/events", h.Events)
	g.POST("/users/:id/change-position", h.ChangePosition)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	user, err := h.svc.GetUser(c.Request.Context(), id, actor(c, c.Query("queried_by")))
	if err != nil {
		writeErr(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, resp.Error(resp.CodeNotFound, "user not found"))
		return
	}
	c.JSON(http.StatusOK, resp.OK(user))
}

func (h *UserHandler) Create(c *gin.Context) {
	var in domain.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	user, err := h.svc.CreateUser(c.Request.Context(), &in)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp.Created(user))
}

func (h *UserHandler) List(c *gin.Context) {
	filters := map[string]any{}
	for k, v := range c.Request.URL.Query() {
		if k == "queried_by" || len(v) == 0 {
			continue
		}
		filters[k] = v[0]
	}
	users, err := h.svc.GetAllUsers(c.Request.Context(), filters, actor(c, c.Query("queried_by")))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(users))
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in domain.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	user, err := h.svc.UpdateUser(c.Request.Context(), id, &in, actor(c, c.Query("changed_by")))
	if err != nil {
		writeErr(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, resp.Error(resp.CodeNotFound, "user not found"))
		return
	}
	c.JSON(http.StatusOK, resp.OK(user))
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	deleted, err := h.svc.DeleteUser(c.Request.Context(), id)
	if err != nil {
		writeErr(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, resp.Error(resp.CodeNotFound, "user not found"))
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"id": id}))
}

func (h *UserHandler) Events(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	events, err := h.svc.GetUserEvents(c.Request.Context(), id, actor(c, c.Query("queried_by")))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(events))
}

type changePositionIn struct {
	NewPosition string  `json:"new_position" binding:"required"`
	NewSalary   float64 `json:"new_salary"`
	ChangedBy   *int64  `json:"changed_by"`
}

func (h *UserHandler) ChangePosition(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in changePositionIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	changedBy := in.ChangedBy
	if changedBy == nil {
		changedBy = actor(c, "")
	}
	user, err := h.svc.ChangePosition(c.Request.Context(), id, in.NewPosition, in.NewSalary, changedBy)
	if err != nil {
		writeErr(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, resp.Error(resp.CodeNotFound, "user not found"))
		return
	}
	c.JSON(http.StatusOK, resp.OK(user))
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, "invalid user id"))
		return 0, false
	}
	return id, true
}

// actor resolves the acting employee id: an explicit parameter wins, the
// bearer token subject is the fallback.
func actor(c *gin.Context, explicit string) *int64 {
	if explicit != "" {
		if id, err := strconv.ParseInt(explicit, 10, 64); err == nil {
			return &id
		}
	}
	if v, ok := c.Get(mdw.KeyActorID); ok {
		if id, ok := v.(int64); ok {
			return &id
		}
	}
	return nil
}

func writeErr(c *gin.Context, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, ve.Error()))
		return
	}
	if isDupKey(err) {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, "email already exists"))
		return
	}
	c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, "internal error"))
}

func isDupKey(err error) bool {
	// string match instead of gorm.ErrDuplicatedKey, which varies by driver
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "unique failed")
}
