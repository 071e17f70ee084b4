package quiz

import (
	"os"
	"path/filepath"
	"testing"
)

func writeBank(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write bank file: %v", err)
	}
	return path
}

const validBank = `{
  "sections": [
    {
      "id": "aptitude",
      "name": "Aptitude",
      "questions": [
        {"id": 1, "type": "mcq", "question": "2+2?", "options": ["3", "4"], "correctAnswer": 1, "marks": 2},
        {"id": 2, "type": "fill", "question": "HTTP stands for ____", "marks": 3}
      ]
    },
    {
      "id": "coding",
      "name": "Coding",
      "questions": [
        {"id": 3, "type": "programming", "question": "Reverse a string", "marks": 5, "cognitiveSkills": ["Problem Solving"]}
      ]
    }
  ]
}`

func TestLoad(t *testing.T) {
	b, err := Load(writeBank(t, validBank))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := b.Count(); got != 3 {
		t.Errorf("Count = %d, want 3", got)
	}
	if got := b.TotalMarks(); got != 10 {
		t.Errorf("TotalMarks = %d, want 10", got)
	}

	// 顺序保持题库文件内的顺序,并标注分区
	qs := b.Questions()
	if qs[0].ID != 1 || qs[1].ID != 2 || qs[2].ID != 3 {
		t.Errorf("order = %d,%d,%d, want 1,2,3", qs[0].ID, qs[1].ID, qs[2].ID)
	}
	if qs[2].Section != "Coding" || qs[2].SectionID != "coding" {
		t.Errorf("section annotation = %q/%q", qs[2].Section, qs[2].SectionID)
	}

	// fill 归一化为 fitb
	if qs[1].Type != TypeFITB {
		t.Errorf("fill type normalized to %q, want %q", qs[1].Type, TypeFITB)
	}

	if q := b.ByID(2); q == nil || q.Question != "HTTP stands for ____" {
		t.Errorf("ByID(2) = %+v", q)
	}
	if q := b.ByID(99); q != nil {
		t.Errorf("ByID(99) = %+v, want nil", q)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty sections", `{"sections": []}`},
		{"bad json", `{`},
		{"mcq without options", `{"sections":[{"id":"s","name":"S","questions":[{"id":1,"type":"mcq","question":"q","correctAnswer":0,"marks":1}]}]}`},
		{"mcq answer out of range", `{"sections":[{"id":"s","name":"S","questions":[{"id":1,"type":"mcq","question":"q","options":["a","b"],"correctAnswer":2,"marks":1}]}]}`},
		{"mcq missing answer", `{"sections":[{"id":"s","name":"S","questions":[{"id":1,"type":"mcq","question":"q","options":["a","b"],"marks":1}]}]}`},
		{"zero marks", `{"sections":[{"id":"s","name":"S","questions":[{"id":1,"type":"fitb","question":"q","marks":0}]}]}`},
		{"unknown type", `{"sections":[{"id":"s","name":"S","questions":[{"id":1,"type":"essay","question":"q","marks":1}]}]}`},
		{"duplicate id", `{"sections":[{"id":"s","name":"S","questions":[{"id":1,"type":"fitb","question":"q","marks":1},{"id":1,"type":"fitb","question":"q2","marks":1}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeBank(t, tt.content)); err == nil {
				t.Errorf("Load succeeded, want error")
			}
		})
	}
}

func TestStudentViewHidesAnswers(t *testing.T) {
	b, err := Load(writeBank(t, validBank))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	view := b.StudentView()
	if len(view) != 3 {
		t.Fatalf("len(view) = %d, want 3", len(view))
	}
	for _, q := range view {
		if q.ID == 0 || q.Question == "" || q.Marks == 0 {
			t.Errorf("question %d missing fields: %+v", q.ID, q)
		}
	}
	// 视图结构体本身没有 CorrectAnswer 字段,这里验证选项仍然下发
	if len(view[0].Options) != 2 {
		t.Errorf("mcq options = %v", view[0].Options)
	}
}
