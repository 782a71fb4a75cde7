package handlers

import (
	"net/http"

	portssvc "github.com/borport/borport_backend/internal/core/ports/services"
	"github.com/borport/borport_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

type applicationHandler struct {
	applicationService portssvc.ApplicationSvc
}

func newApplicationHandler(as portssvc.ApplicationSvc) *applicationHandler {
	return &applicationHandler{applicationService: as}
}

func registerApplicationRoutes(authed *gin.RouterGroup, h *applicationHandler, userOnly gin.HandlerFunc) {
	apps := authed.Group("/guide-applications")
	{
		apps.POST("", userOnly, h.submitApplication)
		apps.GET("/mine", h.listMyApplications)
	}
}

func registerAdminApplicationRoutes(admin *gin.RouterGroup, h *applicationHandler) {
	admin.GET("/applications", h.listApplications)
	admin.PUT("/applications/:id", h.reviewApplication)
}

// submitApplication godoc
// @Summary Apply to become a guide
// @Description Only one PENDING application per user.
// @Tags applications
// @Accept json
// @Produce json
// @Param application body dto.CreateGuideApplicationRequest true "Application"
// @Success 201 {object} dto.GuideApplicationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Pending application exists"
// @Security BearerAuth
// @Router /guide-applications [post]
func (h *applicationHandler) submitApplication(c *gin.Context) {
	var req dto.CreateGuideApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	app, err := h.applicationService.SubmitApplication(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to submit application")
		return
	}
	c.JSON(http.StatusCreated, dto.ToGuideApplicationResponse(app))
}

// listMyApplications godoc
// @Summary The caller's applications
// @Tags applications
// @Produce json
// @Success 200 {array} dto.GuideApplicationResponse
// @Security BearerAuth
// @Router /guide-applications/mine [get]
func (h *applicationHandler) listMyApplications(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	apps, err := h.applicationService.ListMyApplications(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list applications")
		return
	}
	c.JSON(http.StatusOK, dto.ToGuideApplicationListResponse(apps))
}

// listApplications godoc
// @Summary List guide applications
// @Tags admin
// @Produce json
// @Param status query string false "PENDING, APPROVED or REJECTED"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} dto.GuideApplicationResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/applications [get]
func (h *applicationHandler) listApplications(c *gin.Context) {
	var params dto.ListApplicationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	apps, err := h.applicationService.ListApplications(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list applications")
		return
	}
	c.JSON(http.StatusOK, dto.ToGuideApplicationListResponse(apps))
}

// reviewApplication godoc
// @Summary Approve or reject an application
// @Description Approval promotes the applicant to GUIDE. A later rejection does not demote.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Application ID"
// @Param decision body dto.ReviewApplicationRequest true "Decision"
// @Success 200 {object} dto.GuideApplicationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/applications/{id} [put]
func (h *applicationHandler) reviewApplication(c *gin.Context) {
	var req dto.ReviewApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	adminID, ok := currentUser(c)
	if !ok {
		return
	}
	app, err := h.applicationService.ReviewApplication(c.Request.Context(), adminID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to review application")
		return
	}
	c.JSON(http.StatusOK, dto.ToGuideApplicationResponse(app))
}
