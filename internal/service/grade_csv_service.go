package service

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"kstudent_backend/internal/model"
	"kstudent_backend/internal/repository"
	"kstudent_backend/internal/util"
	"kstudent_backend/pkg/logger"
	"kstudent_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// csvHeader is the fixed, localized column set of the grade report. The
// labels are kept byte-for-byte stable for compatibility with the sheets
// teachers already have.
var csvHeader = []string{
	"รหัสนักเรียน", // student code
	"ชื่อ-สกุล",    // full name
	"คะแนนกลางภาค", // midterm score
	"คะแนนปลายภาค", // final score
	"คะแนนรวม",     // total score
	"เกรด",         // letter grade
}

const utf8BOM = "\xef\xbb\xbf"

// GradeCSVService maps between enrollments and the tabular grade report.
// Exports are plain reads; imports run as one all-or-nothing batch.
type GradeCSVService struct {
	GradeRepo   *repository.GradeRepository
	SubjectRepo *repository.SubjectRepository
}

func NewGradeCSVService(gradeRepo *repository.GradeRepository, subjectRepo *repository.SubjectRepository) *GradeCSVService {
	return &GradeCSVService{
		GradeRepo:   gradeRepo,
		SubjectRepo: subjectRepo,
	}
}

// ExportClassroomCSV writes the grade sheet for one classroom, subject
// and term: one row per student in the classroom, ordered by student
// code. Students without a grade record get blank score cells, never
// zeros. The output is UTF-8 with a BOM so spreadsheet software picks up
// the Thai headers.
func (s *GradeCSVService) ExportClassroomCSV(w io.Writer, classroomID, subjectID uint, semester, year int) error {
	if subjectID == 0 {
		return util.ErrMissingSubject
	}
	if _, err := s.SubjectRepo.FindByID(subjectID); err != nil {
		return util.ErrSubjectNotFound
	}

	rows, err := s.GradeRepo.ExportRows(classroomID, subjectID, semester, year)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.StudentCode,
			row.FullName,
			formatScore(row.Midterm),
			formatScore(row.Final),
			formatScore(row.Total),
			formatLetter(row.Letter),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatScore(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatLetter(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// ImportSummary reports one committed import batch.
type ImportSummary struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`
}

// ImportCSV applies a grade sheet to one subject and term. Per row: the
// student is resolved by code (unresolvable codes are skipped and
// counted), midterm/final cells are parsed with malformed values counting
// as 0, and the record is upserted through the grade store. The whole
// file runs inside a single transaction — any store failure rolls back
// every row. Name/total/letter columns in the upload are ignored and
// recomputed.
func (s *GradeCSVService) ImportCSV(r io.Reader, subjectID uint, semester, year int, actorID uint) (*ImportSummary, error) {
	if subjectID == 0 {
		monitoring.ImportBatches.WithLabelValues("rejected").Inc()
		return nil, util.ErrMissingSubject
	}
	if _, err := s.SubjectRepo.FindByID(subjectID); err != nil {
		monitoring.ImportBatches.WithLabelValues("rejected").Inc()
		return nil, util.ErrSubjectNotFound
	}

	reader := csv.NewReader(stripBOM(r))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		monitoring.ImportBatches.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("%w: %v", util.ErrUnreadableCSV, err)
	}

	// The first line is the header row mandated by the format.
	if len(records) > 0 {
		records = records[1:]
	}

	summary := &ImportSummary{}
	err = s.GradeRepo.Transaction(func(tx *gorm.DB) error {
		for _, record := range records {
			code := ""
			if len(record) > 0 {
				code = strings.TrimSpace(record[0])
			}
			if code == "" {
				summary.Skipped++
				continue
			}

			student, err := s.GradeRepo.FindStudentByCodeTx(tx, code)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				summary.Skipped++
				continue
			}
			if err != nil {
				return err
			}

			var midterm, final float64
			if len(record) > 2 {
				midterm = util.ParseScore(strings.TrimSpace(record[2]))
			}
			if len(record) > 3 {
				final = util.ParseScore(strings.TrimSpace(record[3]))
			}

			inserted, err := s.GradeRepo.UpsertGradeTx(tx, student.ID, subjectID, year, semester,
				midterm, final, actorID, model.GradeActionCSVInsert, model.GradeActionCSVUpdate)
			if err != nil {
				return err
			}
			if inserted {
				summary.Inserted++
			} else {
				summary.Updated++
			}
		}
		return nil
	})
	if err != nil {
		monitoring.ImportBatches.WithLabelValues("rolled_back").Inc()
		logger.Log.Error("grade import rolled back",
			zap.Uint("subjectId", subjectID),
			zap.Int("semester", semester),
			zap.Int("year", year),
			zap.Error(err))
		return nil, err
	}

	monitoring.ImportBatches.WithLabelValues("committed").Inc()
	monitoring.ImportRows.WithLabelValues("inserted").Add(float64(summary.Inserted))
	monitoring.ImportRows.WithLabelValues("updated").Add(float64(summary.Updated))
	monitoring.ImportRows.WithLabelValues("skipped").Add(float64(summary.Skipped))
	logger.Log.Info("grade import committed",
		zap.Uint("subjectId", subjectID),
		zap.Int("inserted", summary.Inserted),
		zap.Int("updated", summary.Updated),
		zap.Int("skipped", summary.Skipped))
	return summary, nil
}

// stripBOM drops a leading UTF-8 byte order mark if present.
func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	head, err := br.Peek(3)
	if err == nil && string(head) == utf8BOM {
		br.Discard(3)
	}
	return br
}
