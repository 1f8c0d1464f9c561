package controller

import (
	"kstudent_backend/internal/service"
	"kstudent_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// StudentController serves the student portal. Every handler resolves
// the student row from the authenticated user; students can only see
// their own data.
type StudentController struct {
	GradeService    *service.GradeService
	ScheduleService *service.ScheduleService
	RequestService  *service.RequestService
	StudentService  *service.StudentService
}

func NewStudentController(gradeService *service.GradeService, scheduleService *service.ScheduleService, requestService *service.RequestService, studentService *service.StudentService) *StudentController {
	return &StudentController{
		GradeService:    gradeService,
		ScheduleService: scheduleService,
		RequestService:  requestService,
		StudentService:  studentService,
	}
}

// Dashboard godoc
// @Summary Student dashboard: profile and classroom
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/student/dashboard [get]
func (c *StudentController) Dashboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	student, err := c.StudentService.ForUser(claims.UserID)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, student)
}

// Grades godoc
// @Summary Student transcript grouped by level and semester, with GPAs
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/student/grades [get]
func (c *StudentController) Grades(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	student, err := c.StudentService.ForUser(claims.UserID)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	transcript, err := c.GradeService.Transcript(student.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, transcript)
}

// Schedule godoc
// @Summary Weekly timetable for the student's classroom
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/student/schedule [get]
func (c *StudentController) Schedule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	student, err := c.StudentService.ForUser(claims.UserID)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	slots, err := c.ScheduleService.ForClassroom(student.ClassroomID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, slots)
}

// ListRequests godoc
// @Summary The student's own leave/petition requests
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/student/requests [get]
func (c *StudentController) ListRequests(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	requests, err := c.RequestService.ListMine(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, requests)
}

// swagger:model CreateRequestInput
type CreateRequestInput struct {
	Topic       string `json:"topic" binding:"required"`
	Description string `json:"description"`
	Attachment  string `json:"attachment"`
}

// CreateRequest godoc
// @Summary File a leave/petition request
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateRequestInput true "request"
// @Success 201 {object} util.Response
// @Router /api/student/requests [post]
func (c *StudentController) CreateRequest(ctx *gin.Context) {
	var in CreateRequestInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	req, err := c.RequestService.Create(claims.UserID, in.Topic, in.Description, in.Attachment)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, req)
}
