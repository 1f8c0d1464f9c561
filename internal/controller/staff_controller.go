package controller

import (
	"errors"
	"net/http"

	"kstudent_backend/internal/model"
	"kstudent_backend/internal/service"
	"kstudent_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// StaffController serves the registrar's office: accounts, classrooms,
// timetables and enrollment removal.
type StaffController struct {
	UserService      *service.UserService
	ClassroomService *service.ClassroomService
	ScheduleService  *service.ScheduleService
	GradeService     *service.GradeService
	RequestService   *service.RequestService
}

func NewStaffController(userService *service.UserService, classroomService *service.ClassroomService, scheduleService *service.ScheduleService, gradeService *service.GradeService, requestService *service.RequestService) *StaffController {
	return &StaffController{
		UserService:      userService,
		ClassroomService: classroomService,
		ScheduleService:  scheduleService,
		GradeService:     gradeService,
		RequestService:   requestService,
	}
}

// CreateUser godoc
// @Summary Create a user account (student accounts include classroom + code)
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateUserInput true "account"
// @Success 201 {object} util.Response
// @Router /api/staff/users [post]
func (c *StaffController) CreateUser(ctx *gin.Context) {
	var in service.CreateUserInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.CreateUser(in)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrUsernameTaken):
			util.Error(ctx, http.StatusConflict, err.Error())
		case errors.Is(err, util.ErrClassroomNotFound):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, user)
}

// ListUsers godoc
// @Summary List accounts, optionally by role
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Param role query string false "role filter"
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/staff/users [get]
func (c *StaffController) ListUsers(ctx *gin.Context) {
	role := model.UserRole(ctx.Query("role"))
	page := int(util.MustParseUint(ctx.DefaultQuery("page", "1")))
	limit := int(util.MustParseUint(ctx.DefaultQuery("limit", "20")))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, total, err := c.UserService.List(role, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: users, Total: total, Page: page, Limit: limit})
}

// swagger:model ResetPasswordInput
type ResetPasswordInput struct {
	Password string `json:"password" binding:"required,min=6"`
}

// ResetPassword godoc
// @Summary Reset an account password
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "user id"
// @Param body body ResetPasswordInput true "new password"
// @Success 200 {object} util.Response
// @Router /api/staff/users/{id}/password [put]
func (c *StaffController) ResetPassword(ctx *gin.Context) {
	var in ResetPasswordInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID := util.MustParseUint(ctx.Param("id"))
	if err := c.UserService.ResetPassword(userID, in.Password); err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// DeleteUser godoc
// @Summary Remove an account
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Param id path int true "user id"
// @Success 200 {object} util.Response
// @Router /api/staff/users/{id} [delete]
func (c *StaffController) DeleteUser(ctx *gin.Context) {
	userID := util.MustParseUint(ctx.Param("id"))
	if err := c.UserService.Delete(userID); err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// swagger:model ClassroomInput
type ClassroomInput struct {
	Name string `json:"name" binding:"required"`
}

// CreateClassroom godoc
// @Summary Create a classroom
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ClassroomInput true "classroom"
// @Success 201 {object} util.Response
// @Router /api/staff/classrooms [post]
func (c *StaffController) CreateClassroom(ctx *gin.Context) {
	var in ClassroomInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	classroom, err := c.ClassroomService.Create(in.Name)
	if err != nil {
		if errors.Is(err, service.ErrClassroomNameTaken) {
			util.Error(ctx, http.StatusConflict, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, classroom)
}

// ListClassrooms godoc
// @Summary List classrooms by name
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/staff/classrooms [get]
func (c *StaffController) ListClassrooms(ctx *gin.Context) {
	classrooms, err := c.ClassroomService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, classrooms)
}

// swagger:model ScheduleInput
type ScheduleInput struct {
	ClassroomID uint   `json:"classroomId" binding:"required"`
	SubjectID   uint   `json:"subjectId" binding:"required"`
	Day         string `json:"day" binding:"required"`
	TimeSlot    string `json:"timeSlot" binding:"required"`
}

// CreateSchedule godoc
// @Summary Add a timetable slot
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ScheduleInput true "slot"
// @Success 201 {object} util.Response
// @Router /api/staff/schedules [post]
func (c *StaffController) CreateSchedule(ctx *gin.Context) {
	var in ScheduleInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	slot, err := c.ScheduleService.Create(in.ClassroomID, in.SubjectID, in.Day, in.TimeSlot)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidDay),
			errors.Is(err, util.ErrClassroomNotFound),
			errors.Is(err, util.ErrSubjectNotFound):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, slot)
}

// DeleteSchedule godoc
// @Summary Remove a timetable slot
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Param id path int true "schedule id"
// @Success 200 {object} util.Response
// @Router /api/staff/schedules/{id} [delete]
func (c *StaffController) DeleteSchedule(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if err := c.ScheduleService.Delete(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// swagger:model EnrollInput
type EnrollInput struct {
	StudentID    uint `json:"studentId" binding:"required"`
	SubjectID    uint `json:"subjectId" binding:"required"`
	AcademicYear int  `json:"academicYear" binding:"required"`
	Semester     int  `json:"semester" binding:"required,oneof=1 2"`
}

// Enroll godoc
// @Summary Enroll a student in a subject for one term
// @Description Creates the grade record with zero scores; the teacher
// @Description fills the grades in later.
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body EnrollInput true "enrollment key"
// @Success 201 {object} util.Response
// @Router /api/staff/enroll [post]
func (c *StaffController) Enroll(ctx *gin.Context) {
	var in EnrollInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	err := c.GradeService.Enroll(in.StudentID, in.SubjectID, in.AcademicYear, in.Semester, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrStudentNotFound), errors.Is(err, util.ErrSubjectNotFound):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrAlreadyEnrolled):
			util.Error(ctx, http.StatusConflict, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, nil)
}

// swagger:model UnenrollInput
type UnenrollInput struct {
	StudentID    uint `json:"studentId" binding:"required"`
	SubjectID    uint `json:"subjectId" binding:"required"`
	AcademicYear int  `json:"academicYear" binding:"required"`
	Semester     int  `json:"semester" binding:"required,oneof=1 2"`
}

// Unenroll godoc
// @Summary Remove a student's grade record for one subject and term
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UnenrollInput true "enrollment key"
// @Success 200 {object} util.Response
// @Router /api/staff/unenroll [post]
func (c *StaffController) Unenroll(ctx *gin.Context) {
	var in UnenrollInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	err := c.GradeService.Unenroll(in.StudentID, in.SubjectID, in.AcademicYear, in.Semester, claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrEnrollmentNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListRequests godoc
// @Summary All leave/petition requests, optionally by status
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Param status query string false "Pending, Approved or Rejected"
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/staff/requests [get]
func (c *StaffController) ListRequests(ctx *gin.Context) {
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
