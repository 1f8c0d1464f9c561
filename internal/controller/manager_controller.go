package controller

import (
	"kstudent_backend/internal/model"
	"kstudent_backend/internal/service"
	"kstudent_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ManagerController serves the school manager's portal: head counts, the
// request ledger and the school-wide GPA.
type ManagerController struct {
	DashboardService *service.DashboardService
	RequestService   *service.RequestService
}

func NewManagerController(dashboardService *service.DashboardService, requestService *service.RequestService) *ManagerController {
	return &ManagerController{
		DashboardService: dashboardService,
		RequestService:   requestService,
	}
}

// Dashboard godoc
// @Summary Manager overview: counts, request tallies and average GPA
// @Tags manager
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.ManagerOverview}
// @Router /api/manager/dashboard [get]
func (c *ManagerController) Dashboard(ctx *gin.Context) {
	overview, err := c.DashboardService.ManagerOverview()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}

// RequestHistory godoc
// @Summary Full request history across every role, newest first
// @Tags manager
// @Produce json
// @Security BearerAuth
// @Param status query string false "Pending, Approved or Rejected"
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/manager/requests [get]
func (c *ManagerController) RequestHistory(ctx *gin.Context) {
	status := model.RequestStatus(ctx.Query("status"))
	page := int(util.MustParseUint(ctx.DefaultQuery("page", "1")))
	limit := int(util.MustParseUint(ctx.DefaultQuery("limit", "20")))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	requests, total, err := c.RequestService.List(status, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: requests, Total: total, Page: page, Limit: limit})
}
