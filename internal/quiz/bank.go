package quiz

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// 题型常量
const (
	TypeMCQ         = "mcq"
	TypeFITB        = "fitb"
	TypeProgramming = "programming"
	TypeDebugging   = "debugging"
)

// Question 题库中的单道题目,加载时已标注所属分区
type Question struct {
	ID              int      `json:"id"`
	Type            string   `json:"type"`
	Question        string   `json:"question"`
	Options         []string `json:"options,omitempty"`
	CorrectAnswer   *int     `json:"correctAnswer,omitempty"`
	Marks           int      `json:"marks"`
	Difficulty      string   `json:"difficulty,omitempty"`
	Hints           []string `json:"hints,omitempty"`
	BuggyCode       string   `json:"buggyCode,omitempty"`
	Description     string   `json:"description,omitempty"`
	CognitiveSkills []string `json:"cognitiveSkills,omitempty"`
	Section         string   `json:"section"`
	SectionID       string   `json:"sectionId"`
}

// StudentQuestion 下发给学生的题目视图,不包含正确答案
type StudentQuestion struct {
	ID          int      `json:"id"`
	Type        string   `json:"type"`
	Question    string   `json:"question"`
	Options     []string `json:"options,omitempty"`
	Marks       int      `json:"marks"`
	Difficulty  string   `json:"difficulty,omitempty"`
	Hints       []string `json:"hints,omitempty"`
	BuggyCode   string   `json:"buggyCode,omitempty"`
	Description string   `json:"description,omitempty"`
	Section     string   `json:"section"`
	SectionID   string   `json:"sectionId"`
}

type section struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
}

type bankFile struct {
	Sections []section `json:"sections"`
}

// Bank 内存题库,进程启动时加载一次,之后只读
type Bank struct {
	questions []Question
	byID      map[int]*Question
	total     int
}

// Load 从 JSON 文件加载题库并校验,任何一道题无效都会返回错误
func Load(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}

	var file bankFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}
	if len(file.Sections) == 0 {
		return nil, fmt.Errorf("question bank %s has no sections", path)
	}

	b := &Bank{byID: make(map[int]*Question)}
	for _, sec := range file.Sections {
		for _, q := range sec.Questions {
			q.Section = sec.Name
			q.SectionID = sec.ID
			if q.Type == "fill" {
				q.Type = TypeFITB
			}
			if err := validate(&q); err != nil {
				return nil, fmt.Errorf("section %s question %d: %w", sec.ID, q.ID, err)
			}
			if _, dup := b.byID[q.ID]; dup {
				return nil, fmt.Errorf("duplicate question id %d", q.ID)
			}
			b.questions = append(b.questions, q)
			b.byID[q.ID] = &b.questions[len(b.questions)-1]
			b.total += q.Marks
		}
	}

	// append 扩容会搬移底层数组,重建指针保证 byID 指向最终切片
	b.byID = make(map[int]*Question, len(b.questions))
	for i := range b.questions {
		b.byID[b.questions[i].ID] = &b.questions[i]
	}
	return b, nil
}

func validate(q *Question) error {
	if q.Marks <= 0 {
		return fmt.Errorf("marks must be positive, got %d", q.Marks)
	}
	if q.Question == "" {
		return fmt.Errorf("empty question text")
	}
	switch q.Type {
	case TypeMCQ:
		if len(q.Options) < 2 {
			return fmt.Errorf("mcq needs at least 2 options, got %d", len(q.Options))
		}
		if q.CorrectAnswer == nil {
			return fmt.Errorf("mcq missing correctAnswer")
		}
		if *q.CorrectAnswer < 0 || *q.CorrectAnswer >= len(q.Options) {
			return fmt.Errorf("correctAnswer %d out of range [0,%d)", *q.CorrectAnswer, len(q.Options))
		}
	case TypeFITB, TypeProgramming, TypeDebugging:
	default:
		return fmt.Errorf("unknown question type %q", q.Type)
	}
	return nil
}

// Questions 返回扁平化后的全部题目,保持题库文件内的顺序
func (b *Bank) Questions() []Question {
	return b.questions
}

// ByID 按题号查找,未找到返回 nil
func (b *Bank) ByID(id int) *Question {
	return b.byID[id]
}

// TotalMarks 题库满分
func (b *Bank) TotalMarks() int {
	return b.total
}

// Count 题目总数
func (b *Bank) Count() int {
	return len(b.questions)
}

// Answered 返回有作答的题目子集,保持题库顺序。
// 未作答的题目不参与计分,既不进分子也不进分母
func (b *Bank) Answered(answers map[string]interface{}) []Question {
	out := make([]Question, 0, len(answers))
	for _, q := range b.questions {
		if isAnswered(answers[strconv.Itoa(q.ID)]) {
			out = append(out, q)
		}
	}
	return out
}

// isAnswered 缺失、nil 与纯空白字符串都视为未作答
func isAnswered(answer interface{}) bool {
	switch v := answer.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(v) != ""
	}
	return true
}

// StudentView 学生视图,剥离正确答案与认知技能标签
func (b *Bank) StudentView() []StudentQuestion {
	out := make([]StudentQuestion, 0, len(b.questions))
	for _, q := range b.questions {
		out = append(out, StudentQuestion{
			ID:          q.ID,
			Type:        q.Type,
			Question:    q.Question,
			Options:     q.Options,
			Marks:       q.Marks,
			Difficulty:  q.Difficulty,
			Hints:       q.Hints,
			BuggyCode:   q.BuggyCode,
			Description: q.Description,
			Section:     q.Section,
			SectionID:   q.SectionID,
		})
	}
	return out
}
