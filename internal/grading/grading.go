// Package grading holds the pure grade arithmetic: score classification,
// subject-code decoding, and credit-weighted GPA aggregation. Everything
// here is a total function with no storage access, safe to call from any
// goroutine.
package grading

import (
	"fmt"
	"sort"
	"strconv"

	"kstudent_backend/internal/model"
)

// gradeScale is evaluated highest threshold first. Thresholds are
// inclusive lower bounds on the 0-100 total score.
var gradeScale = []struct {
	min    float64
	letter string
	points float64
}{
	{80, "A", 4.0},
	{75, "B+", 3.5},
	{70, "B", 3.0},
	{65, "C+", 2.5},
	{60, "C", 2.0},
	{55, "D+", 1.5},
	{50, "D", 1.0},
}

// Classify maps a total score to its letter grade and grade-point value.
func Classify(total float64) (string, float64) {
	for _, g := range gradeScale {
		if total >= g.min {
			return g.letter, g.points
		}
	}
	return "F", 0
}

// Points returns the grade-point value of a letter grade, 0 for anything
// unrecognised.
func Points(letter string) float64 {
	for _, g := range gradeScale {
		if g.letter == letter {
			return g.points
		}
	}
	return 0
}

// levelSegments maps characters 2-3 of a subject code to the grade level
// (Mattayom 1-6).
var levelSegments = map[string]int{
	"21": 1,
	"22": 2,
	"23": 3,
	"31": 4,
	"32": 5,
	"33": 6,
}

// LevelTerm decodes a subject code into its grade level and semester.
// Characters 2-3 select the level; the final digit's parity selects the
// semester (odd = 1, even = 2). Codes are Thai strings such as "ค33102",
// so positions are counted in runes, not bytes. Malformed codes fall back
// to level 1, term 1, matching the long-standing report behaviour.
func LevelTerm(code string) (level, term int) {
	level, term = 1, 1

	runes := []rune(code)
	if len(runes) < 3 {
		return level, term
	}

	if l, ok := levelSegments[string(runes[1:3])]; ok {
		level = l
	}

	if last, err := strconv.Atoi(string(runes[len(runes)-1])); err == nil {
		if last%2 == 0 {
			term = 2
		}
	}

	return level, term
}

// Group is one (level, semester) bucket of a transcript.
type Group struct {
	Level        int               `json:"level"`
	Term         int               `json:"term"`
	Grades       []model.GradeView `json:"grades"`
	TotalCredits float64           `json:"totalCredits"`
	TotalPoints  float64           `json:"totalPoints"`
	GPA          string            `json:"gpa"`
}

// Transcript is the aggregation result over a set of grade records.
type Transcript struct {
	Groups     []Group `json:"groups"`
	OverallGPA string  `json:"overallGpa"`
}

// Aggregate buckets records by (level, term) and computes credit-weighted
// GPAs. The overall GPA is weighted over the full record set, never
// averaged across groups. The numeric results do not depend on input
// order; groups come back sorted by level then term.
func Aggregate(records []model.GradeView) Transcript {
	grouped := make(map[[2]int]*Group)
	var totalCredits, totalPoints float64

	for _, g := range records {
		level, term := LevelTerm(g.SubjectCode)
		// The stored letter is authoritative for grade points; the raw
		// total only matters at classification time.
		points := Points(g.GradeChar)

		totalPoints += points * g.Credit
		totalCredits += g.Credit

		key := [2]int{level, term}
		grp, ok := grouped[key]
		if !ok {
			grp = &Group{Level: level, Term: term}
			grouped[key] = grp
		}
		grp.Grades = append(grp.Grades, g)
		grp.TotalCredits += g.Credit
		grp.TotalPoints += points * g.Credit
	}

	groups := make([]Group, 0, len(grouped))
	for _, grp := range grouped {
		grp.GPA = formatGPA(grp.TotalPoints, grp.TotalCredits)
		groups = append(groups, *grp)
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Level != groups[j].Level {
			return groups[i].Level < groups[j].Level
		}
		return groups[i].Term < groups[j].Term
	})

	return Transcript{
		Groups:     groups,
		OverallGPA: formatGPA(totalPoints, totalCredits),
	}
}

func formatGPA(points, credits float64) string {
	if credits == 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", points/credits)
}
