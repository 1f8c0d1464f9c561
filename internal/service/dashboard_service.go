package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"kstudent_backend/internal/model"
	"kstudent_backend/internal/repository"
	"kstudent_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	schoolStatsKey = "kstudent:stats:school"
	schoolStatsTTL = time.Minute
)

type DashboardService struct {
	UserRepo      *repository.UserRepository
	StudentRepo   *repository.StudentRepository
	ClassroomRepo *repository.ClassroomRepository
	GradeRepo     *repository.GradeRepository
	RequestRepo   *repository.RequestRepository
	Redis         *redis.Client // nil when caching is disabled
}

func NewDashboardService(userRepo *repository.UserRepository, studentRepo *repository.StudentRepository, classroomRepo *repository.ClassroomRepository, gradeRepo *repository.GradeRepository, requestRepo *repository.RequestRepository, rdb *redis.Client) *DashboardService {
	return &DashboardService{
		UserRepo:      userRepo,
		StudentRepo:   studentRepo,
		ClassroomRepo: classroomRepo,
		GradeRepo:     gradeRepo,
		RequestRepo:   requestRepo,
		Redis:         rdb,
	}
}

type ClassroomSize struct {
	ClassroomID uint   `json:"classroomId"`
	Name        string `json:"name"`
	Students    int64  `json:"students"`
}

// SchoolStats is the executive overview: head counts, classroom sizes,
// behavior average, grade distribution, and the pending request backlog.
type SchoolStats struct {
	UserCounts        map[model.UserRole]int64 `json:"userCounts"`
	ClassroomSizes    []ClassroomSize          `json:"classroomSizes"`
	AverageBehavior   float64                  `json:"averageBehavior"`
	GradeDistribution map[string]int64         `json:"gradeDistribution"`
	PendingRequests   int64                    `json:"pendingRequests"`
}

func (s *DashboardService) SchoolStats(ctx context.Context) (*SchoolStats, error) {
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, schoolStatsKey).Result(); err == nil {
			var stats SchoolStats
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return &stats, nil
			}
		}
	}

	stats, err := s.computeStats()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.Redis.Set(ctx, schoolStatsKey, payload, schoolStatsTTL).Err(); err != nil {
				logger.Log.Warn("failed to cache school stats", zap.Error(err))
			}
		}
	}

	return stats, nil
}

// ManagerOverview is the manager's snapshot: head counts, the request
// ledger tally and the school-wide credit-weighted GPA.
type ManagerOverview struct {
	StudentCount   int64                         `json:"studentCount"`
	TeacherCount   int64                         `json:"teacherCount"`
	ClassroomCount int64                         `json:"classroomCount"`
	RequestCounts  map[model.RequestStatus]int64 `json:"requestCounts"`
	RequestTotal   int64                         `json:"requestTotal"`
	AverageGPA     string                        `json:"averageGpa"`
}

func (s *DashboardService) ManagerOverview() (*ManagerOverview, error) {
	userCounts, err := s.UserRepo.CountByRole()
	if err != nil {
		return nil, err
	}

	classrooms, err := s.ClassroomRepo.List()
	if err != nil {
		return nil, err
	}

	requestCounts, err := s.RequestRepo.CountByStatus()
	if err != nil {
		return nil, err
	}
	var requestTotal int64
	for _, n := range requestCounts {
		requestTotal += n
	}

	avgGPA, err := s.GradeRepo.AverageGradePoints()
	if err != nil {
		return nil, err
	}

	return &ManagerOverview{
		StudentCount:   userCounts[model.RoleStudent],
		TeacherCount:   userCounts[model.RoleTeacher],
		ClassroomCount: int64(len(classrooms)),
		RequestCounts:  requestCounts,
		RequestTotal:   requestTotal,
		AverageGPA:     fmt.Sprintf("%.2f", avgGPA),
	}, nil
}

func (s *DashboardService) computeStats() (*SchoolStats, error) {
	userCounts, err := s.UserRepo.CountByRole()
	if err != nil {
		return nil, err
	}

	classrooms, err := s.ClassroomRepo.List()
	if err != nil {
		return nil, err
	}
	sizes, err := s.StudentRepo.CountByClassroom()
	if err != nil {
		return nil, err
	}
	classroomSizes := make([]ClassroomSize, 0, len(classrooms))
	for _, c := range classrooms {
		classroomSizes = append(classroomSizes, ClassroomSize{
			ClassroomID: c.ID,
			Name:        c.Name,
			Students:    sizes[c.ID],
		})
	}

	avgBehavior, err := s.StudentRepo.AverageBehavior()
	if err != nil {
		return nil, err
	}

	distribution, err := s.GradeRepo.GradeDistribution()
	if err != nil {
		return nil, err
	}

	_, pending, err := s.RequestRepo.List(model.RequestPending, 1, 1)
	if err != nil {
		return nil, err
	}

	return &SchoolStats{
		UserCounts:        userCounts,
		ClassroomSizes:    classroomSizes,
		AverageBehavior:   avgBehavior,
		GradeDistribution: distribution,
		PendingRequests:   pending,
	}, nil
}
