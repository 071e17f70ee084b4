package scoring

import (
	"fmt"
	"math/rand"

	"futuretech_backend/internal/quiz"
)

// Dimensions 能力维度,顺序固定,反馈与维度评分均按此顺序输出
var Dimensions = []string{
	"Technical Knowledge", "Problem Solving", "Analytical Thinking",
	"Creativity", "Debugging Skills", "System Design",
	"Communication", "Collaboration", "Security Awareness", "Testing & QA",
}

var introPhrases = []string{
	"Your assessment reveals a strong aptitude for",
	"The analysis indicates a promising potential in",
	"Your responses demonstrate a solid foundation in",
	"Evaluation confirms a good grasp of",
	"Our AI analysis highlights your capability in",
}

var strengthAdjectives = []string{"excellent", "robust", "commanding", "proficient", "impressive"}
var weakAdjectives = []string{"developing", "foundational", "evolving", "fundamental", "emerging"}

var strengthPool = []string{
	"Algorithmic Thinking", "Code Optimization approach", "Logical Reasoning",
	"Database concepts", "System Architecture basics", "Error handling logic",
	"Problem decomposition", "Time complexity awareness", "API design understanding",
}

var weaknessPool = []string{
	"Edge case handling", "Scalability considerations", "Security best practices",
	"Advanced design patterns", "Cloud infrastructure concepts", "Testing methodologies",
	"Async programming nuances", "Memory management techniques",
}

// Course 推荐课程
type Course struct {
	Course   string `json:"course"`
	Reason   string `json:"reason"`
	Priority string `json:"priority"`
}

// DimensionScore 单个能力维度得分
type DimensionScore struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Feedback 反馈报告
type Feedback struct {
	Summary            string           `json:"summary"`
	Strengths          []string         `json:"strengths"`
	Weaknesses         []string         `json:"weaknesses"`
	DimensionScores    []DimensionScore `json:"dimensionScores"`
	RecommendedCourses []Course         `json:"recommendedCourses"`
	CareerSuggestions  []string         `json:"careerSuggestions"`
}

// Synthesize 根据最终百分比与逐题评分合成反馈报告。
// 总评引用的是实际得分最高与最低的维度,同分时取维度表中靠前的
func (e *Engine) Synthesize(result *Result, bank *quiz.Bank) *Feedback {
	dims := e.dimensionScores(result, bank)

	best, worst := 0, 0
	for i, d := range dims {
		if d.Score > dims[best].Score {
			best = i
		}
		if d.Score < dims[worst].Score {
			worst = i
		}
	}

	intro := introPhrases[e.rng.Intn(len(introPhrases))]
	strongAdj := strengthAdjectives[e.rng.Intn(len(strengthAdjectives))]
	summary := fmt.Sprintf(
		"%s Software Development logic. You scored %d%%, placing you in a competitive percentile. While your %s is %s, focusing on %s will verify your expertise further.",
		intro, result.Percentage, dims[best].Name, strongAdj, dims[worst].Name,
	)

	return &Feedback{
		Summary:            summary,
		Strengths:          pick(e.rng, strengthPool, 3),
		Weaknesses:         pick(e.rng, weaknessPool, 3),
		DimensionScores:    dims,
		RecommendedCourses: []Course{
			{Course: "Foundation Cohort", Reason: "Recommended based on your score to solidify basics.", Priority: "High"},
			{Course: "Product Development", Reason: "Excellent next step for your career.", Priority: "Medium"},
		},
		CareerSuggestions: []string{"Full Stack Developer", "Software Engineer", "Backend Developer"},
	}
}

// dimensionScores 优先按题目的认知技能标签真实聚合,
// 题库未覆盖的维度退化为围绕总百分比的扰动估计
func (e *Engine) dimensionScores(result *Result, bank *quiz.Bank) []DimensionScore {
	type tally struct {
		score int
		max   int
	}
	tallies := make(map[string]*tally)
	for _, ev := range result.Evaluations {
		q := bank.ByID(ev.QuestionID)
		if q == nil {
			continue
		}
		for _, skill := range q.CognitiveSkills {
			t := tallies[skill]
			if t == nil {
				t = &tally{}
				tallies[skill] = t
			}
			t.score += ev.Score
			t.max += ev.MaxScore
		}
	}

	out := make([]DimensionScore, 0, len(Dimensions))
	for _, dim := range Dimensions {
		var score int
		if t := tallies[dim]; t != nil && t.max > 0 {
			// 真实聚合值不做截断,答满全对就是 100
			score = t.score * 100 / t.max
		} else {
			score = clamp(result.Percentage+e.rng.Intn(15)-7, 45, 98)
		}
		out = append(out, DimensionScore{Name: dim, Score: score})
	}
	return out
}

// pick 无放回抽取 n 个元素
func pick(rng *rand.Rand, pool []string, n int) []string {
	if n > len(pool) {
		n = len(pool)
	}
	out := make([]string, 0, n)
	for _, i := range rng.Perm(len(pool))[:n] {
		out = append(out, pool[i])
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
