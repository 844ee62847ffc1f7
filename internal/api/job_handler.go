package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hirehub/internal/domain"
	"hirehub/pkg/logger"
)

type JobHandler struct {
	service domain.JobService
	logger  logger.Logger
}

type jobRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Company     string           `json:"company"`
	Location    string           `json:"location"`
	Type        string           `json:"type"`
	Status      domain.JobStatus `json:"status"`
	Salary      *float64         `json:"salary"`
}

type jobUpdateRequest struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	Company     *string           `json:"company"`
	Location    *string           `json:"location"`
	Type        *string           `json:"type"`
	Status      *domain.JobStatus `json:"status"`
	Salary      *float64          `json:"salary"`
}

func NewJobHandler(service domain.JobService, logger logger.Logger) *JobHandler {
	return &JobHandler{
		service: service,
		logger:  logger,
	}
}

func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.service.ListJobs(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) GetJob(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	job, err := h.service.GetJobByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// CreateJob posts a job on behalf of the recruiter named in the path.
func (h *JobHandler) CreateJob(c *gin.Context) {
	ownerID, ok := paramID(c, "id")
	if !ok || !allowSelfOr(c, ownerID, domain.RoleAdmin) {
		return
	}

	var req jobRequest
	if !bindJSON(c, &req) {
		return
	}

	job := &domain.Job{
		Title:       req.Title,
		Description: req.Description,
		Company:     req.Company,
		Location:    req.Location,
		Type:        req.Type,
		Status:      req.Status,
		Salary:      req.Salary,
		PostedBy:    ownerID,
	}
	if err := h.service.CreateJob(c.Request.Context(), job); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"msg": "Job created successfully", "job": job})
}

func (h *JobHandler) ListOwnJobs(c *gin.Context) {
	jobs, err := h.service.ListJobsByOwner(c.Request.Context(), principal(c).UserID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) UpdateJob(c *gin.Context) {
	id, ok := h.ownedJob(c)
	if !ok {
		return
	}

	var req jobUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	job, err := h.service.UpdateJob(c.Request.Context(), id, domain.JobUpdate{
		Title:       req.Title,
		Description: req.Description,
		Company:     req.Company,
		Location:    req.Location,
		Type:        req.Type,
		Status:      req.Status,
		Salary:      req.Salary,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Job updated successfully", "job": job})
}

// DeleteJob serves both the recruiter route, where ownership is enforced,
// and the admin route.
func (h *JobHandler) DeleteJob(c *gin.Context) {
	id, ok := h.ownedJob(c)
	if !ok {
		return
	}

	if err := h.service.DeleteJob(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Job deleted successfully"})
}

// ownedJob resolves the :id job and checks that the caller posted it or is
// an admin.
func (h *JobHandler) ownedJob(c *gin.Context) (int64, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return 0, false
	}

	job, err := h.service.GetJobByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return 0, false
	}

	if !allowSelfOr(c, job.PostedBy, domain.RoleAdmin) {
		return 0, false
	}
	return id, true
}
