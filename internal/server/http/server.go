// Package httpserver exposes the template service HTTP API.
package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/abhi1083/simple-crud-ops/internal/errs"
	"github.com/abhi1083/simple-crud-ops/internal/model"
	"github.com/abhi1083/simple-crud-ops/internal/service"
)

// Server wires services into HTTP handlers.
type Server struct {
	auth      service.AuthService
	templates service.TemplateService
	guard     *Guard
}

// New constructs a Server with injected services.
func New(auth service.AuthService, templates service.TemplateService, guard *Guard) *Server {
	return &Server{auth: auth, templates: templates, guard: guard}
}

// Router builds the gin engine with all routes and middleware attached.
func (s *Server) Router(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(Recover(log), Logging(log))

	r.GET("/", s.index)
	r.POST("/register", s.register)
	r.POST("/login", s.login)

	authed := r.Group("", s.guard.Middleware())
	authed.POST("/template", s.createTemplate)
	authed.GET("/template", s.listTemplates)
	authed.GET("/template/:id", s.getTemplate)
	authed.PUT("/template/:id", s.updateTemplate)
	authed.DELETE("/template/:id", s.deleteTemplate)

	return r
}

// writeError maps sentinel errors to boundary responses. All token failures
// share a status but keep their message; anything unrecognized fails closed.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"message": "User already registered"})
	case errors.Is(err, errs.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
	case errors.Is(err, errs.ErrMissingToken):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Token is missing"})
	case errors.Is(err, errs.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Token has expired"})
	case errors.Is(err, errs.ErrTokenMalformed), errors.Is(err, errs.ErrBadSignature):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Token is invalid"})
	case errors.Is(err, errs.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Template not found"})
	case errors.Is(err, errs.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "store unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	}
}

func (s *Server) index(c *gin.Context) {
	c.String(http.StatusOK, "Homepage<br> Use /register to register user <br> Use /login to login user<br> "+
		"Use /template to get template<br> Use /template/<template_id> to do 'GET', 'PUT', 'DELETE' methods")
}

type registerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	userID, err := s.auth.Register(c.Request.Context(), req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user_id": userID, "message": "User registered successfully!"})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	tok, err := s.auth.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tok})
}

// subject pulls the authenticated subject placed by the guard middleware.
// The guard runs on every authed route, so absence is a programming error.
func (s *Server) subject(c *gin.Context) (uuid.UUID, bool) {
	id, ok := subjectFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Token is missing"})
	}
	return id, ok
}

func (s *Server) createTemplate(c *gin.Context) {
	owner, ok := s.subject(c)
	if !ok {
		return
	}
	var payload model.Payload
	// a literal null binds to a nil map without a bind error
	if err := c.ShouldBindJSON(&payload); err != nil || payload == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	id, err := s.templates.Create(c.Request.Context(), owner, payload)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"template_id": id.String(), "message": "Template created successfully"})
}

func (s *Server) listTemplates(c *gin.Context) {
	owner, ok := s.subject(c)
	if !ok {
		return
	}
	list, err := s.templates.List(c.Request.Context(), owner)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]model.Payload, 0, len(list))
	for _, t := range list {
		item := make(model.Payload, len(t.Payload)+1)
		for k, v := range t.Payload {
			item[k] = v
		}
		item["_id"] = t.ID.String()
		out = append(out, item)
	}
	c.JSON(http.StatusOK, out)
}

// templateID parses the :id path parameter. A non-uuid id cannot exist, so
// it reports NotFound rather than leaking the id format.
func templateID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Template not found"})
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) getTemplate(c *gin.Context) {
	owner, ok := s.subject(c)
	if !ok {
		return
	}
	id, ok := templateID(c)
	if !ok {
		return
	}
	t, err := s.templates.Get(c.Request.Context(), owner, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"template_id": t.ID.String(), "template": t.Payload})
}

func (s *Server) updateTemplate(c *gin.Context) {
	owner, ok := s.subject(c)
	if !ok {
		return
	}
	id, ok := templateID(c)
	if !ok {
		return
	}
	var partial model.Payload
	if err := c.ShouldBindJSON(&partial); err != nil || len(partial) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if err := s.templates.Update(c.Request.Context(), owner, id, partial); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"template_id": id.String(), "message": "Template updated successfully"})
}

func (s *Server) deleteTemplate(c *gin.Context) {
	owner, ok := s.subject(c)
	if !ok {
		return
	}
	id, ok := templateID(c)
	if !ok {
		return
	}
	if err := s.templates.Delete(c.Request.Context(), owner, id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"template_id": id.String(), "message": "Template deleted successfully"})
}
