package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"hirehub/internal/api/middleware"
	"hirehub/internal/domain"
	"hirehub/pkg/logger"
)

type errorMapping struct {
	err    error
	status int
	msg    string
}

// errorMappings translates domain errors into client-facing responses.
// Anything unmatched is a 500 with the detail kept in the server log.
var errorMappings = []errorMapping{
	{domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{domain.ErrJobNotFound, http.StatusNotFound, "Job not found"},
	{domain.ErrApplicationNotFound, http.StatusNotFound, "Application not found"},
	{domain.ErrResumeNotFound, http.StatusNotFound, "Resume not found"},

	{domain.ErrUserAlreadyExists, http.StatusBadRequest, "User already exists"},
	{domain.ErrJobAlreadyExists, http.StatusBadRequest, "Job already exists"},
	{domain.ErrDuplicateApplication, http.StatusBadRequest, "You have already applied to this job"},

	{domain.ErrInvalidCredentials, http.StatusBadRequest, "Invalid credentials"},
	{domain.ErrMissingField, http.StatusBadRequest, "Missing required fields"},
	{domain.ErrInvalidPassword, http.StatusBadRequest, "Invalid password"},
	{domain.ErrInvalidRole, http.StatusBadRequest, "Invalid role"},
	{domain.ErrInvalidJobStatus, http.StatusBadRequest, "Invalid job status"},
	{domain.ErrInvalidApplicationStatus, http.StatusBadRequest, "Invalid status"},
	{domain.ErrInvalidTransition, http.StatusBadRequest, "Status transition not allowed"},
	{domain.ErrInvalidInterviewDate, http.StatusBadRequest, "Invalid interview date"},
	{domain.ErrUnsupportedResumeType, http.StatusBadRequest, "Only PDF, DOC and DOCX files are allowed"},
	{domain.ErrResumeTooLarge, http.StatusBadRequest, "Resume file is too large"},

	{domain.ErrUnauthorized, http.StatusUnauthorized, "No token, authorization denied"},
	{domain.ErrForbidden, http.StatusForbidden, "Access denied"},
}

func respondError(c *gin.Context, log logger.Logger, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			c.JSON(m.status, gin.H{"msg": m.msg})
			return
		}
	}

	_ = c.Error(err)
	log.ErrorContext(c.Request.Context(), "İstek işlenemedi", map[string]interface{}{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
		"error":  err.Error(),
	})
	c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
}

// bindJSON writes a 400 and returns false when the body does not bind.
func bindJSON(c *gin.Context, dst interface{}) bool {
	return bindBody(c, dst, false)
}

// bindOptionalJSON is bindJSON for requests whose body may be left empty.
func bindOptionalJSON(c *gin.Context, dst interface{}) bool {
	return bindBody(c, dst, true)
}

func bindBody(c *gin.Context, dst interface{}, optional bool) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return true
		}
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Missing required fields"})
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid request body"})
		return false
	}
	return true
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid id"})
		return 0, false
	}
	return id, true
}

func principal(c *gin.Context) middleware.Principal {
	p, _ := middleware.CurrentPrincipal(c)
	return p
}

// allowSelfOr passes when the caller owns id or holds one of roles;
// otherwise it writes a 403.
func allowSelfOr(c *gin.Context, id int64, roles ...domain.Role) bool {
	p := principal(c)
	if p.UserID == id || p.Is(roles...) {
		return true
	}
	c.JSON(http.StatusForbidden, gin.H{"msg": "Access denied"})
	return false
}
