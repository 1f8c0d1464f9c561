package controller

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"kstudent_backend/internal/config"
	"kstudent_backend/internal/service"
	"kstudent_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// TeacherController serves the teacher portal: subject management, the
// class register, grade edits, and the CSV grade sheets.
type TeacherController struct {
	SubjectService  *service.SubjectService
	StudentService  *service.StudentService
	GradeService    *service.GradeService
	CSVService      *service.GradeCSVService
	ScheduleService *service.ScheduleService
	UserService     *service.UserService
	RequestService  *service.RequestService
	Cfg             *config.Config
}

func NewTeacherController(subjectService *service.SubjectService, studentService *service.StudentService, gradeService *service.GradeService, csvService *service.GradeCSVService, scheduleService *service.ScheduleService, userService *service.UserService, requestService *service.RequestService, cfg *config.Config) *TeacherController {
	return &TeacherController{
		SubjectService:  subjectService,
		StudentService:  studentService,
		GradeService:    gradeService,
		CSVService:      csvService,
		ScheduleService: scheduleService,
		UserService:     userService,
		RequestService:  requestService,
		Cfg:             cfg,
	}
}

// period resolves the academic year/semester from query parameters,
// falling back to the configured school period.
func (c *TeacherController) period(ctx *gin.Context) (int, int) {
	year := int(util.MustParseUint(ctx.Query("academicYear")))
	if year == 0 {
		year = c.Cfg.School.AcademicYear
	}
	semester := int(util.MustParseUint(ctx.Query("semester")))
	if semester != 1 && semester != 2 {
		semester = c.Cfg.School.Semester
	}
	return year, semester
}

// Dashboard godoc
// @Summary Teacher dashboard: own subjects and homeroom
// @Tags teacher
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/teacher/dashboard [get]
func (c *TeacherController) Dashboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	subjects, err := c.SubjectService.ListByTeacher(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"subjects": subjects})
}

// swagger:model AddSubjectInput
type AddSubjectInput struct {
	Code   string  `json:"code" binding:"required"`
	Name   string  `json:"name" binding:"required"`
	Credit float64 `json:"credit" binding:"required,gt=0"`
}

// AddSubject godoc
// @Summary Register a subject owned by the calling teacher
// @Tags teacher
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AddSubjectInput true "subject"
// @Success 201 {object} util.Response
// @Router /api/teacher/subjects [post]
func (c *TeacherController) AddSubject(ctx *gin.Context) {
	var in AddSubjectInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	subject, err := c.SubjectService.Create(in.Code, in.Name, in.Credit, claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrSubjectCodeTaken) {
			util.Error(ctx, http.StatusConflict, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, subject)
}

// swagger:model SelectHomeroomInput
type SelectHomeroomInput struct {
	ClassroomID uint `json:"classroomId" binding:"required"`
}

// SelectHomeroom godoc
// @Summary Pick the teacher's homeroom classroom
// @Tags teacher
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SelectHomeroomInput true "classroom"
// @Success 200 {object} util.Response
// @Router /api/teacher/homeroom [post]
func (c *TeacherController) SelectHomeroom(ctx *gin.Context) {
	var in SelectHomeroomInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if err := c.UserService.SelectHomeroom(claims.UserID, in.ClassroomID); err != nil {
		if errors.Is(err, util.ErrClassroomNotFound) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Classes godoc
// @Summary Class register, filterable by classroom and subject
// @Tags teacher
// @Produce json
// @Security BearerAuth
// @Param classroomId query int false "classroom filter"
// @Param subjectId query int false "subject enrollment filter"
// @Success 200 {object} util.Response
// @Router /api/teacher/classes [get]
func (c *TeacherController) Classes(ctx *gin.Context) {
	classroomID := util.MustParseUint(ctx.Query("classroomId"))
	subjectID := util.MustParseUint(ctx.Query("subjectId"))

	students, err := c.StudentService.Roster(classroomID, subjectID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, students)
}

// swagger:model UpdateGradeInput
type UpdateGradeInput struct {
	StudentID    uint    `json:"studentId" binding:"required"`
	SubjectID    uint    `json:"subjectId" binding:"required"`
	AcademicYear int     `json:"academicYear"`
	Semester     int     `json:"semester"`
	Midterm      float64 `json:"midterm"`
	Final        float64 `json:"final"`
}

// UpdateGrade godoc
// @Summary Upsert one grade record
// @Description Midterm and final are clamped to [0,50]; total and letter
// @Description grade are recomputed. Every edit appends an audit log row.
// @Tags teacher
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateGradeInput true "grade"
// @Success 200 {object} util.Response
// @Router /api/teacher/grade [post]
func (c *TeacherController) UpdateGrade(ctx *gin.Context) {
	var in UpdateGradeInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if in.AcademicYear == 0 {
		in.AcademicYear = c.Cfg.School.AcademicYear
	}
	if in.Semester != 1 && in.Semester != 2 {
		in.Semester = c.Cfg.School.Semester
	}

	claims := util.GetUserFromContext(ctx)
	err := c.GradeService.UpdateGrade(in.StudentID, in.SubjectID, in.AcademicYear, in.Semester,
		in.Midterm, in.Final, claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrStudentNotFound) || errors.Is(err, util.ErrSubjectNotFound) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// swagger:model BehaviorInput
type BehaviorInput struct {
	StudentID   uint   `json:"studentId" binding:"required"`
	ScoreChange int    `json:"scoreChange" binding:"required"`
	Reason      string `json:"reason"`
}

// AdjustBehavior godoc
// @Summary Adjust a student's behavior score
// @Tags teacher
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body BehaviorInput true "adjustment"
// @Success 200 {object} util.Response
// @Router /api/teacher/behavior [post]
func (c *TeacherController) AdjustBehavior(ctx *gin.Context) {
	var in BehaviorInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	newScore, err := c.StudentService.AdjustBehavior(in.StudentID, in.ScoreChange, in.Reason, claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrStudentNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"behaviorScore": newScore})
}

// StudentBehaviorLogs godoc
// @Summary History of one student's behavior adjustments
// @Tags teacher
// @Produce json
// @Security BearerAuth
// @Param id path int true "student id"
// @Success 200 {object} util.Response
// @Router /api/teacher/students/{id}/behavior-logs [get]
func (c *TeacherController) StudentBehaviorLogs(ctx *gin.Context) {
	studentID := util.MustParseUint(ctx.Param("id"))

	logs, err := c.StudentService.BehaviorLogs(studentID)
	if err != nil {
		if errors.Is(err, util.ErrStudentNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, logs)
}

// StudentTranscript godoc
// @Summary One student's transcript grouped by level/semester
// @Tags teacher
// @Produce json
// @Security BearerAuth
// @Param id path int true "student id"
// @Success 200 {object} util.Response
// @Router /api/teacher/students/{id}/grades [get]
func (c *TeacherController) StudentTranscript(ctx *gin.Context) {
	studentID := util.MustParseUint(ctx.Param("id"))

	student, err := c.StudentService.Get(studentID)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	transcript, err := c.GradeService.Transcript(studentID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"student": student, "transcript": transcript})
}

// StudentGradeLogs godoc
// @Summary Audit trail of one student's grade mutations
// @Tags teacher
// @Produce json
// @Security BearerAuth
// @Param id path int true "student id"
// @Success 200 {object} util.Response
// @Router /api/teacher/students/{id}/grade-logs [get]
func (c *TeacherController) StudentGradeLogs(ctx *gin.Context) {
	studentID := util.MustParseUint(ctx.Param("id"))

	logs, err := c.GradeService.GradeLogs(studentID)
	if err != nil {
		if errors.Is(err, util.ErrStudentNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, logs)
}

// ExportGrades godoc
// @Summary Download the grade sheet for a classroom/subject/term as CSV
// @Tags teacher
// @Produce text/csv
// @Security BearerAuth
// @Param classroomId query int true "classroom"
// @Param subjectId query int true "subject"
// @Param semester query int false "semester (defaults to configured)"
// @Param academicYear query int false "academic year (defaults to configured)"
// @Success 200 {string} string "csv"
// @Router /api/teacher/grades/export [get]
func (c *TeacherController) ExportGrades(ctx *gin.Context) {
	classroomID := util.MustParseUint(ctx.Query("classroomId"))
	subjectID := util.MustParseUint(ctx.Query("subjectId"))
	year, semester := c.period(ctx)

	// Render into a buffer first so a validation failure still gets a
	// plain JSON error response instead of CSV headers.
	var buf bytes.Buffer
	err := c.CSVService.ExportClassroomCSV(&buf, classroomID, subjectID, semester, year)
	if err != nil {
		if errors.Is(err, util.ErrMissingSubject) || errors.Is(err, util.ErrSubjectNotFound) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=grades_%d_%d_%d.csv", subjectID, year, semester))
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ImportGrades godoc
// @Summary Upload a grade sheet CSV for one subject/term
// @Description The whole file is applied in a single transaction: rows
// @Description with unknown student codes are skipped and counted, any
// @Description storage failure rolls the entire batch back.
// @Tags teacher
// @Accept text/csv
// @Produce json
// @Security BearerAuth
// @Param subjectId query int true "subject"
// @Param semester query int false "semester (defaults to configured)"
// @Param academicYear query int false "academic year (defaults to configured)"
// @Success 200 {object} util.Response{data=service.ImportSummary}
// @Router /api/teacher/grades/import [post]
func (c *TeacherController) ImportGrades(ctx *gin.Context) {
	subjectID := util.MustParseUint(ctx.Query("subjectId"))
	year, semester := c.period(ctx)

	claims := util.GetUserFromContext(ctx)
	summary, err := c.CSVService.ImportCSV(ctx.Request.Body, subjectID, semester, year, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrMissingSubject),
			errors.Is(err, util.ErrSubjectNotFound),
			errors.Is(err, util.ErrUnreadableCSV):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, summary)
}

// ListRequests godoc
// @Summary The teacher's own leave/petition requests
// @Tags teacher
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/teacher/requests [get]
func (c *TeacherController) ListRequests(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	requests, err := c.RequestService.ListMine(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, requests)
}

// CreateRequest godoc
// @Summary File a leave/petition request as a teacher
// @Tags teacher
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateRequestInput true "request"
// @Success 201 {object} util.Response
// @Router /api/teacher/requests [post]
func (c *TeacherController) CreateRequest(ctx *gin.Context) {
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

// Schedule godoc
// @Summary The teacher's timetable across classrooms
// @Tags teacher
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/teacher/schedule [get]
func (c *TeacherController) Schedule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	slots, err := c.ScheduleService.ForTeacher(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, slots)
}
