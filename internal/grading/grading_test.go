package grading

import (
	"math/rand"
	"testing"

	"kstudent_backend/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		total      float64
		wantLetter string
		wantPoints float64
	}{
		{100, "A", 4.0},
		{80, "A", 4.0},
		{79.99, "B+", 3.5},
		{75, "B+", 3.5},
		{74.5, "B", 3.0},
		{70, "B", 3.0},
		{65, "C+", 2.5},
		{60, "C", 2.0},
		{55, "D+", 1.5},
		{50, "D", 1.0},
		{49.99, "F", 0},
		{0, "F", 0},
	}

	for _, tt := range tests {
		letter, points := Classify(tt.total)
		if letter != tt.wantLetter || points != tt.wantPoints {
			t.Errorf("Classify(%v) = (%q, %v), want (%q, %v)",
				tt.total, letter, points, tt.wantLetter, tt.wantPoints)
		}
	}
}

func TestClassifyScaleOrder(t *testing.T) {
	// Letter grades must be monotone in the score: a higher total never
	// yields fewer grade points.
	prev := -1.0
	for total := 0.0; total <= 100; total += 0.5 {
		_, points := Classify(total)
		if points < prev {
			t.Fatalf("points dropped from %v to %v at total %v", prev, points, total)
		}
		prev = points
	}
}

func TestPoints(t *testing.T) {
	tests := []struct {
		letter string
		want   float64
	}{
		{"A", 4.0},
		{"B+", 3.5},
		{"B", 3.0},
		{"C+", 2.5},
		{"C", 2.0},
		{"D+", 1.5},
		{"D", 1.0},
		{"F", 0},
		{"", 0},
		{"X", 0},
	}

	for _, tt := range tests {
		if got := Points(tt.letter); got != tt.want {
			t.Errorf("Points(%q) = %v, want %v", tt.letter, got, tt.want)
		}
	}
}

func TestLevelTerm(t *testing.T) {
	tests := []struct {
		code      string
		wantLevel int
		wantTerm  int
	}{
		{"ว21101", 1, 1},
		{"ค33102", 6, 2},
		{"อ22204", 2, 2},
		{"ท23101", 3, 1},
		{"ส31103", 4, 1},
		{"ศ32206", 5, 2},
		// Malformed codes fall back to level 1, term 1.
		{"", 1, 1},
		{"ค3", 1, 1},
		{"ค99102", 1, 2},
		{"ค33xyz", 6, 1},
	}

	for _, tt := range tests {
		level, term := LevelTerm(tt.code)
		if level != tt.wantLevel || term != tt.wantTerm {
			t.Errorf("LevelTerm(%q) = (%d, %d), want (%d, %d)",
				tt.code, level, term, tt.wantLevel, tt.wantTerm)
		}
	}
}

func gradeView(code string, credit, total float64) model.GradeView {
	letter, _ := Classify(total)
	return model.GradeView{
		SubjectCode: code,
		Credit:      credit,
		TotalScore:  total,
		GradeChar:   letter,
	}
}

func TestAggregateEmpty(t *testing.T) {
	tr := Aggregate(nil)
	if tr.OverallGPA != "0.00" {
		t.Errorf("OverallGPA = %q, want %q", tr.OverallGPA, "0.00")
	}
	if len(tr.Groups) != 0 {
		t.Errorf("got %d groups, want 0", len(tr.Groups))
	}
}

func TestAggregateWeighted(t *testing.T) {
	// A (4.0) with credit 1.5 and C (2.0) with credit 0.5:
	// (4.0*1.5 + 2.0*0.5) / 2.0 = 3.50
	records := []model.GradeView{
		gradeView("ค21101", 1.5, 85),
		gradeView("ว21101", 0.5, 62),
	}

	tr := Aggregate(records)
	if tr.OverallGPA != "3.50" {
		t.Errorf("OverallGPA = %q, want %q", tr.OverallGPA, "3.50")
	}
	if len(tr.Groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(tr.Groups))
	}
	g := tr.Groups[0]
	if g.Level != 1 || g.Term != 1 {
		t.Errorf("group = (%d, %d), want (1, 1)", g.Level, g.Term)
	}
	if g.GPA != "3.50" {
		t.Errorf("group GPA = %q, want %q", g.GPA, "3.50")
	}
	if g.TotalCredits != 2.0 {
		t.Errorf("TotalCredits = %v, want 2.0", g.TotalCredits)
	}
}

func TestAggregateUsesStoredLetter(t *testing.T) {
	// Grade points come from the recorded letter, not a reclassification
	// of the raw total.
	record := model.GradeView{
		SubjectCode: "ค21101",
		Credit:      1.0,
		TotalScore:  85, // would classify as A
		GradeChar:   "C+",
	}

	tr := Aggregate([]model.GradeView{record})
	if tr.OverallGPA != "2.50" {
		t.Errorf("OverallGPA = %q, want %q", tr.OverallGPA, "2.50")
	}
}

func TestAggregateZeroCreditGroup(t *testing.T) {
	tr := Aggregate([]model.GradeView{gradeView("ก21101", 0, 90)})
	if len(tr.Groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(tr.Groups))
	}
	if tr.Groups[0].GPA != "0.00" {
		t.Errorf("group GPA = %q, want %q", tr.Groups[0].GPA, "0.00")
	}
	if tr.OverallGPA != "0.00" {
		t.Errorf("OverallGPA = %q, want %q", tr.OverallGPA, "0.00")
	}
}

func TestAggregateOverallIsNotGroupMean(t *testing.T) {
	// Two groups with very different credit loads. A mean of the two group
	// GPAs would give 3.00; the credit-weighted overall must not.
	records := []model.GradeView{
		gradeView("ค21101", 3.0, 95), // level 1 term 1, A
		gradeView("ค21102", 0.5, 60), // level 1 term 2, C
	}

	tr := Aggregate(records)
	if len(tr.Groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(tr.Groups))
	}
	// (4.0*3.0 + 2.0*0.5) / 3.5 = 3.7142... -> "3.71"
	if tr.OverallGPA != "3.71" {
		t.Errorf("OverallGPA = %q, want %q", tr.OverallGPA, "3.71")
	}
}

func TestAggregateGroupOrder(t *testing.T) {
	records := []model.GradeView{
		gradeView("ค33102", 1, 80), // level 6 term 2
		gradeView("ว21101", 1, 80), // level 1 term 1
		gradeView("อ21102", 1, 80), // level 1 term 2
		gradeView("ท32101", 1, 80), // level 5 term 1
	}

	tr := Aggregate(records)
	want := [][2]int{{1, 1}, {1, 2}, {5, 1}, {6, 2}}
	if len(tr.Groups) != len(want) {
		t.Fatalf("got %d groups, want %d", len(tr.Groups), len(want))
	}
	for i, w := range want {
		if tr.Groups[i].Level != w[0] || tr.Groups[i].Term != w[1] {
			t.Errorf("group %d = (%d, %d), want (%d, %d)",
				i, tr.Groups[i].Level, tr.Groups[i].Term, w[0], w[1])
		}
	}
}

func TestAggregateOrderInvariant(t *testing.T) {
	records := []model.GradeView{
		gradeView("ค21101", 1.5, 85),
		gradeView("ว21102", 1.0, 73),
		gradeView("อ22101", 0.5, 48),
		gradeView("ท33102", 2.0, 91),
		gradeView("ส32101", 1.0, 55),
	}

	base := Aggregate(records)

	r := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := make([]model.GradeView, len(records))
		copy(shuffled, records)
		r.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got := Aggregate(shuffled)
		if got.OverallGPA != base.OverallGPA {
			t.Fatalf("OverallGPA changed with input order: %q vs %q", got.OverallGPA, base.OverallGPA)
		}
		if len(got.Groups) != len(base.Groups) {
			t.Fatalf("group count changed with input order")
		}
		for j := range got.Groups {
			if got.Groups[j].Level != base.Groups[j].Level ||
				got.Groups[j].Term != base.Groups[j].Term ||
				got.Groups[j].GPA != base.Groups[j].GPA {
				t.Fatalf("group %d changed with input order", j)
			}
		}
	}
}
