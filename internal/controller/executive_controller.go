package controller

import (
	"errors"

	"kstudent_backend/internal/model"
	"kstudent_backend/internal/service"
	"kstudent_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ExecutiveController serves the leadership portal: school statistics,
// announcements, and final say on petition requests.
type ExecutiveController struct {
	DashboardService    *service.DashboardService
	AnnouncementService *service.AnnouncementService
	RequestService      *service.RequestService
}

func NewExecutiveController(dashboardService *service.DashboardService, announcementService *service.AnnouncementService, requestService *service.RequestService) *ExecutiveController {
	return &ExecutiveController{
		DashboardService:    dashboardService,
		AnnouncementService: announcementService,
		RequestService:      requestService,
	}
}

// Stats godoc
// @Summary School-wide statistics
// @Tags executive
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.SchoolStats}
// @Router /api/executive/stats [get]
func (c *ExecutiveController) Stats(ctx *gin.Context) {
	stats, err := c.DashboardService.SchoolStats(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// swagger:model AnnouncementInput
type AnnouncementInput struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body"`
}

// CreateAnnouncement godoc
// @Summary Publish a school-wide announcement
// @Tags executive
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AnnouncementInput true "announcement"
// @Success 201 {object} util.Response
// @Router /api/executive/announcements [post]
func (c *ExecutiveController) CreateAnnouncement(ctx *gin.Context) {
	var in AnnouncementInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	a, err := c.AnnouncementService.Create(in.Title, in.Body, claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, a)
}

// ListAnnouncements godoc
// @Summary List announcements, newest first
// @Tags executive
// @Produce json
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/announcements [get]
func (c *ExecutiveController) ListAnnouncements(ctx *gin.Context) {
	page := int(util.MustParseUint(ctx.DefaultQuery("page", "1")))
	limit := int(util.MustParseUint(ctx.DefaultQuery("limit", "20")))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	announcements, total, err := c.AnnouncementService.List(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: announcements, Total: total, Page: page, Limit: limit})
}

// UpdateAnnouncement godoc
// @Summary Edit an announcement
// @Tags executive
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "announcement id"
// @Param body body AnnouncementInput true "announcement"
// @Success 200 {object} util.Response
// @Router /api/executive/announcements/{id} [put]
func (c *ExecutiveController) UpdateAnnouncement(ctx *gin.Context) {
	var in AnnouncementInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	a, err := c.AnnouncementService.Update(id, in.Title, in.Body)
	if err != nil {
		if errors.Is(err, util.ErrAnnouncementNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, a)
}

// DeleteAnnouncement godoc
// @Summary Remove an announcement
// @Tags executive
// @Produce json
// @Security BearerAuth
// @Param id path int true "announcement id"
// @Success 200 {object} util.Response
// @Router /api/executive/announcements/{id} [delete]
func (c *ExecutiveController) DeleteAnnouncement(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if err := c.AnnouncementService.Delete(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// swagger:model ResolveRequestInput
type ResolveRequestInput struct {
	Status model.RequestStatus `json:"status" binding:"required,oneof=Approved Rejected"`
	Reply  string              `json:"reply"`
}

// ResolveRequest godoc
// @Summary Approve or reject a pending request
// @Tags executive
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "request id"
// @Param body body ResolveRequestInput true "decision"
// @Success 200 {object} util.Response
// @Router /api/executive/requests/{id}/resolve [post]
func (c *ExecutiveController) ResolveRequest(ctx *gin.Context) {
	var in ResolveRequestInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	claims := util.GetUserFromContext(ctx)

	err := c.RequestService.Resolve(id, in.Status, in.Reply, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrRequestNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrRequestResolved), errors.Is(err, util.ErrInvalidStatus):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
