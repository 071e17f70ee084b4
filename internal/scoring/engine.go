package scoring

import (
	"math"
	"math/rand"
	"strconv"
	"strings"

	"futuretech_backend/internal/quiz"
)

// 主观题判定为"已作答"所需的最小有效长度
const attemptThreshold = 5

// Evaluation 单题评分结果
type Evaluation struct {
	QuestionID int    `json:"questionId"`
	Score      int    `json:"score"`
	MaxScore   int    `json:"maxScore"`
	IsCorrect  bool   `json:"isCorrect"`
	Section    string `json:"section,omitempty"`
}

// Result 整卷评分结果。只有作答过的题目参与计分,TotalMarks
// 为作答子集的满分。Percentage 为应用加成策略后的最终百分比,
// Score 按最终百分比折算,RawScore 保留逐题卷面合计
type Result struct {
	Score         int          `json:"score"`
	RawScore      int          `json:"rawScore"`
	TotalMarks    int          `json:"totalMarks"`
	RawPercentage float64      `json:"rawPercentage"`
	Percentage    int          `json:"percentage"`
	Evaluations   []Evaluation `json:"evaluations"`
}

// BoostPolicy 分数加成策略:高于阈值的卷面分保持原样,
// 低于阈值的抬升到 [FloorLow, FloorHigh] 区间内的随机值
type BoostPolicy struct {
	MeritThreshold float64
	FloorLow       int
	FloorHigh      int
}

// DefaultBoostPolicy 生产环境使用的加成参数
var DefaultBoostPolicy = BoostPolicy{
	MeritThreshold: 80,
	FloorLow:       60,
	FloorHigh:      79,
}

// Apply 返回应用策略后的最终百分比,始终落在 [1,100]
func (p BoostPolicy) Apply(raw float64, rng *rand.Rand) int {
	var final int
	if raw > p.MeritThreshold {
		final = int(math.Round(raw))
	} else {
		final = p.FloorLow + rng.Intn(p.FloorHigh-p.FloorLow+1)
	}
	if final < 1 {
		final = 1
	}
	if final > 100 {
		final = 100
	}
	return final
}

type strategy func(e *Engine, q *quiz.Question, answer interface{}) Evaluation

// Engine 答卷评分引擎,按题型分派评分策略
type Engine struct {
	rng        *rand.Rand
	boost      BoostPolicy
	strategies map[string]strategy
}

// NewEngine 创建评分引擎,seed 决定主观题得分与加成的随机序列
func NewEngine(seed int64) *Engine {
	e := &Engine{
		rng:   rand.New(rand.NewSource(seed)),
		boost: DefaultBoostPolicy,
	}
	e.strategies = map[string]strategy{
		quiz.TypeMCQ:         (*Engine).evaluateMCQ,
		quiz.TypeFITB:        (*Engine).evaluateAttempt,
		quiz.TypeProgramming: (*Engine).evaluateAttempt,
		quiz.TypeDebugging:   (*Engine).evaluateAttempt,
	}
	return e
}

// Evaluate 对作答子集逐题评分,answers 以题号字符串为键。
// 未作答的题目不进分子也不进分母,也不出现在 Evaluations 中
func (e *Engine) Evaluate(bank *quiz.Bank, answers map[string]interface{}) *Result {
	answered := bank.Answered(answers)
	result := &Result{
		Evaluations: make([]Evaluation, 0, len(answered)),
	}

	for _, q := range answered {
		ev := e.strategies[q.Type](e, &q, answers[strconv.Itoa(q.ID)])
		result.RawScore += ev.Score
		result.TotalMarks += q.Marks
		result.Evaluations = append(result.Evaluations, ev)
	}

	if result.TotalMarks > 0 {
		result.RawPercentage = float64(result.RawScore) / float64(result.TotalMarks) * 100
	}
	result.Percentage = e.boost.Apply(result.RawPercentage, e.rng)
	// 对外报告的得分按最终百分比折算,与 Percentage 保持一致
	result.Score = int(math.Round(float64(result.Percentage) / 100 * float64(result.TotalMarks)))
	return result
}

// evaluateMCQ 选择题按正确选项索引精确匹配,全对或零分
func (e *Engine) evaluateMCQ(q *quiz.Question, answer interface{}) Evaluation {
	ev := Evaluation{QuestionID: q.ID, MaxScore: q.Marks, Section: q.Section}
	idx, ok := answerIndex(answer)
	if ok && q.CorrectAnswer != nil && idx == *q.CorrectAnswer {
		ev.Score = q.Marks
		ev.IsCorrect = true
	}
	return ev
}

// evaluateAttempt 主观题按作答有效性给分:有效作答得
// floor(marks*(0.6+0.3*rand)) 的部分分,否则零分
func (e *Engine) evaluateAttempt(q *quiz.Question, answer interface{}) Evaluation {
	ev := Evaluation{QuestionID: q.ID, MaxScore: q.Marks, Section: q.Section}
	text, _ := answer.(string)
	if len(strings.TrimSpace(text)) > attemptThreshold {
		ev.Score = int(math.Floor(float64(q.Marks) * (0.6 + 0.3*e.rng.Float64())))
		ev.IsCorrect = true
	}
	return ev
}

// answerIndex 将 JSON 解码出的答案规整为选项索引,
// 兼容数值与数字字符串两种形式。非整数数值不视为合法索引
func answerIndex(answer interface{}) (int, bool) {
	switch v := answer.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case int:
		return v, true
	case string:
		idx, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return idx, true
	}
	return 0, false
}
