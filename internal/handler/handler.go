package handler

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"edustack/internal/auth"
	"edustack/internal/common"
	"edustack/internal/model"
	"edustack/internal/validation"
)

const maxBodyBytes = 1 << 20

// Store is the data access the routes need.
type Store interface {
	auth.UserStore
	ListUsers(ctx context.Context) ([]model.User, error)

	ListInstitutions(ctx context.Context) ([]model.Institution, error)
	CreateInstitution(ctx context.Context, in model.Institution) (model.Institution, error)

	ListStudents(ctx context.Context) ([]model.Student, error)
	CreateStudent(ctx context.Context, st model.Student) (model.Student, error)
	DeleteStudent(ctx context.Context, id int64) (bool, error)

	ListFaculty(ctx context.Context) ([]model.Faculty, error)
	CreateFaculty(ctx context.Context, f model.Faculty) (model.Faculty, error)
	DeleteFaculty(ctx context.Context, id int64) (bool, error)

	ListClasses(ctx context.Context) ([]model.Class, error)
	CreateClass(ctx context.Context, c model.Class) (model.Class, error)
	DeleteClass(ctx context.Context, id int64) (bool, error)

	ListAttendance(ctx context.Context) ([]model.Attendance, error)
	CreateAttendance(ctx context.Context, a model.Attendance) (model.Attendance, error)

	ListTimetable(ctx context.Context) ([]model.Timetable, error)
	CreateTimetable(ctx context.Context, t model.Timetable) (model.Timetable, error)
	DeleteTimetable(ctx context.Context, id int64) (bool, error)

	DashboardStats(ctx context.Context) (model.DashboardStats, error)
}

type Handler struct {
	store     Store
	validator *validation.Validator
	accounts  *auth.Service
	gate      *auth.Gate
}

func New(s Store, v *validation.Validator, gate *auth.Gate) *Handler {
	return &Handler{store: s, validator: v, accounts: auth.NewService(s), gate: gate}
}

// Routes mounts the JSON API under /api. authLimit guards the credential
// endpoints; pass nil to disable it.
func (h *Handler) Routes(r gin.IRouter, authLimit gin.HandlerFunc) {
	api := r.Group("/api", h.gate.Resolve())

	authRoutes := api.Group("/auth")
	if authLimit != nil {
		authRoutes.POST("/register", authLimit, h.Register)
		authRoutes.POST("/login", authLimit, h.Login)
	} else {
		authRoutes.POST("/register", h.Register)
		authRoutes.POST("/login", h.Login)
	}
	authRoutes.POST("/logout", h.Logout)
	authRoutes.GET("/me", h.Me)

	data := api.Group("", h.gate.RequireSession())
	data.GET("/dashboard/stats", h.DashboardStats)
	data.GET("/users", h.ListUsers)

	data.GET("/institutions", list(h, h.store.ListInstitutions))
	data.POST("/institutions", create(h, h.validator.ParseInstitution, h.store.CreateInstitution))

	data.GET("/students", list(h, h.store.ListStudents))
	data.POST("/students", create(h, h.validator.ParseStudent, h.store.CreateStudent))
	data.DELETE("/students/:id", remove(h, h.store.DeleteStudent))

	data.GET("/faculty", list(h, h.store.ListFaculty))
	data.POST("/faculty", create(h, h.validator.ParseFaculty, h.store.CreateFaculty))
	data.DELETE("/faculty/:id", remove(h, h.store.DeleteFaculty))

	data.GET("/classes", list(h, h.store.ListClasses))
	data.POST("/classes", create(h, h.validator.ParseClass, h.store.CreateClass))
	data.DELETE("/classes/:id", remove(h, h.store.DeleteClass))

	data.GET("/attendance", list(h, h.store.ListAttendance))
	data.POST("/attendance", create(h, h.validator.ParseAttendance, h.store.CreateAttendance))

	data.GET("/timetable", list(h, h.store.ListTimetable))
	data.POST("/timetable", create(h, h.validator.ParseTimetable, h.store.CreateTimetable))
	data.DELETE("/timetable/:id", remove(h, h.store.DeleteTimetable))
}

// NotFound answers unknown routes with the JSON error shape.
func (h *Handler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, common.BodyFromError(common.ErrNotFound))
}

// fail writes err as a JSON error response. Internal errors are logged with
// the request path and never shown to the client.
func (h *Handler) fail(c *gin.Context, err error) {
	status := common.HTTPStatusFromError(err)
	if status >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.AbortWithStatusJSON(status, common.BodyFromError(err))
}

// body reads the request body, capped at maxBodyBytes.
func (h *Handler) body(c *gin.Context) ([]byte, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, common.ErrorBody{Message: "Request body too large"})
			return nil, false
		}
		h.fail(c, &common.ValidationError{Message: "Request body must be a JSON object"})
		return nil, false
	}
	return data, true
}

func list[T any](h *Handler, load func(context.Context) ([]T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := load(c.Request.Context())
		if err != nil {
			h.fail(c, err)
			return
		}
		if items == nil {
			items = []T{}
		}
		c.JSON(http.StatusOK, items)
	}
}

func create[T any](h *Handler, parse func([]byte) (T, error), save func(context.Context, T) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, ok := h.body(c)
		if !ok {
			return
		}
		rec, err := parse(data)
		if err != nil {
			h.fail(c, err)
			return
		}
		saved, err := save(c.Request.Context(), rec)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, saved)
	}
}

// remove deletes by path id. Deleting an absent record still answers 204.
func remove(h *Handler, del func(context.Context, int64) (bool, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := validation.ParseID(c.Param("id"))
		if err != nil {
			h.fail(c, err)
			return
		}
		if _, err := del(c.Request.Context(), id); err != nil {
			h.fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
