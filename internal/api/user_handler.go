package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"hirehub/internal/domain"
	"hirehub/pkg/logger"
)

type UserHandler struct {
	service domain.UserService
	resumes domain.ResumeService
	logger  logger.Logger
}

type profileRequest struct {
	Username *string   `json:"username"`
	Email    *string   `json:"email"`
	Skills   *[]string `json:"skills"`
}

type createUserRequest struct {
	Username string      `json:"username" binding:"required"`
	Email    string      `json:"email" binding:"required"`
	Password string      `json:"password" binding:"required"`
	Role     domain.Role `json:"role"`
}

type adminUpdateRequest struct {
	Username *string      `json:"username"`
	Email    *string      `json:"email"`
	Password *string      `json:"password"`
	Role     *domain.Role `json:"role"`
	Skills   *[]string    `json:"skills"`
}

func NewUserHandler(service domain.UserService, resumes domain.ResumeService, logger logger.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		resumes: resumes,
		logger:  logger,
	}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok || !allowSelfOr(c, id, domain.RoleAdmin, domain.RoleRecruiter) {
		return
	}
	h.respondUser(c, id)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	h.respondUser(c, id)
}

func (h *UserHandler) respondUser(c *gin.Context, id int64) {
	user, err := h.service.GetUserByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// EditProfile accepts either JSON or a multipart form. In the multipart
// form skills is a JSON array string and an optional "resume" file part
// replaces the stored resume. The resume is checked and written before the
// profile changes so a rejected file leaves the user untouched.
func (h *UserHandler) EditProfile(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok || !allowSelfOr(c, id, domain.RoleAdmin) {
		return
	}

	var req profileRequest
	multipart := c.ContentType() == binding.MIMEMultipartPOSTForm
	if multipart {
		if !bindProfileForm(c, &req) {
			return
		}
	} else if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()

	var pending *domain.PendingResume
	if multipart {
		var err error
		if pending, err = h.prepareResume(c, id); err != nil {
			respondError(c, h.logger, err)
			return
		}
	}

	user, err := h.service.UpdateUser(ctx, id, domain.UserUpdate{
		Username: req.Username,
		Email:    req.Email,
		Skills:   req.Skills,
	})
	if err != nil {
		if pending != nil {
			h.resumes.DiscardResume(ctx, pending)
		}
		respondError(c, h.logger, err)
		return
	}

	if pending != nil {
		updated, err := h.resumes.CommitResume(ctx, pending)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		user = updated
	}

	c.JSON(http.StatusOK, gin.H{"msg": "User updated successfully", "user": user})
}

// prepareResume returns nil, nil when the form carries no resume part.
func (h *UserHandler) prepareResume(c *gin.Context, id int64) (*domain.PendingResume, error) {
	fh, err := c.FormFile("resume")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return h.resumes.PrepareResume(c.Request.Context(), id, f, fh.Header.Get("Content-Type"))
}

func bindProfileForm(c *gin.Context, req *profileRequest) bool {
	if v, ok := c.GetPostForm("username"); ok {
		req.Username = &v
	}
	if v, ok := c.GetPostForm("email"); ok {
		req.Email = &v
	}
	if v, ok := c.GetPostForm("skills"); ok {
		skills, err := parseSkills(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid skills"})
			return false
		}
		req.Skills = &skills
	}
	return true
}

// parseSkills reads a JSON array and falls back to a comma separated list.
func parseSkills(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}, nil
	}
	if strings.HasPrefix(raw, "[") {
		var skills []string
		if err := json.Unmarshal([]byte(raw), &skills); err != nil {
			return nil, err
		}
		return skills, nil
	}
	return strings.Split(raw, ","), nil
}

func (h *UserHandler) DeleteAccount(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok || !allowSelfOr(c, id, domain.RoleAdmin) {
		return
	}
	h.deleteUser(c, id)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	h.deleteUser(c, id)
}

func (h *UserHandler) deleteUser(c *gin.Context, id int64) {
	if err := h.service.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "User deleted successfully"})
}

func (h *UserHandler) DownloadResume(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok || !allowSelfOr(c, id, domain.RoleAdmin, domain.RoleRecruiter) {
		return
	}

	resume, err := h.resumes.OpenResume(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	defer resume.Content.Close()

	c.DataFromReader(http.StatusOK, resume.Size, resume.ContentType, resume.Content, map[string]string{
		"Content-Disposition": "inline",
	})
}

func (h *UserHandler) CreateRecruiter(c *gin.Context) {
	var req createUserRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.CreateUserWithRole(c.Request.Context(), req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"msg": "User created successfully", "user": result.User})
}

func (h *UserHandler) AdminUpdateUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req adminUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.service.UpdateUser(c.Request.Context(), id, domain.UserUpdate{
		Username: req.Username,
		Email:    req.Email,
		Skills:   req.Skills,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "User updated successfully", "user": user})
}
