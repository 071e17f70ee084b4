package service

import (
	"context"
	"encoding/json"
	"time"

	"futuretech_backend/internal/model"
	"futuretech_backend/internal/quiz"
	"futuretech_backend/internal/scoring"
	"futuretech_backend/internal/util"
	"futuretech_backend/pkg/logger"

	"go.uber.org/zap"
)

// SubmissionStore 提交记录存储
type SubmissionStore interface {
	InsertIfAbsent(submission *model.TestSubmission) error
	FindByUserID(userID uint) (*model.TestSubmission, error)
	FindByID(id string) (*model.TestSubmission, error)
	ExistsByUserID(userID uint) (bool, error)
	List(page, limit int) ([]model.TestSubmission, int64, error)
}

// LeadStore 咨询线索存储
type LeadStore interface {
	Upsert(lead *model.Lead) error
}

// StudentData 提交时附带的学生资料
type StudentData struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	College string `json:"college"`
	Course  string `json:"course"`
	Year    string `json:"year"`
}

// SubmitMetadata 考试过程元数据,由前端监考逻辑采集
type SubmitMetadata struct {
	Duration          int `json:"duration"`
	TabSwitches       int `json:"tabSwitches"`
	CopyPasteAttempts int `json:"copyPasteAttempts"`
	WarningsRemaining int `json:"warningsRemaining"`
}

// SubmitRequest 提交答卷请求
type SubmitRequest struct {
	Answers     map[string]interface{} `json:"answers" binding:"required"`
	StudentData StudentData            `json:"studentData"`
	Metadata    SubmitMetadata         `json:"metadata"`
}

// TestResult 返回给学生的完整成绩单。Score 与 Percentage
// 按同一最终百分比折算,RawScore 保留卷面合计
type TestResult struct {
	SubmissionID string               `json:"submissionId"`
	Score        int                  `json:"score"`
	RawScore     int                  `json:"rawScore"`
	TotalMarks   int                  `json:"totalMarks"`
	Percentage   int                  `json:"percentage"`
	Scholarship  scoring.Scholarship  `json:"scholarship"`
	Feedback     *scoring.Feedback    `json:"feedback"`
	Evaluations  []scoring.Evaluation `json:"evaluations"`
	SubmittedAt  time.Time            `json:"submittedAt"`
	Persisted    bool                 `json:"persisted"`
}

// TestService 奖学金测试的提交协调器:评分、定档、反馈、
// 落库与线索留存按固定顺序执行
type TestService struct {
	Bank        *quiz.Bank
	Submissions SubmissionStore
	Leads       LeadStore
	Cache       *ResultCache

	// 可注入的时钟与随机种子,便于测试固定行为
	now  func() time.Time
	seed func() int64
}

func NewTestService(bank *quiz.Bank, submissions SubmissionStore, leads LeadStore, cache *ResultCache) *TestService {
	return &TestService{
		Bank:        bank,
		Submissions: submissions,
		Leads:       leads,
		Cache:       cache,
		now:         time.Now,
		seed:        func() int64 { return time.Now().UnixNano() },
	}
}

// Questions 学生视图题目列表,已提交过的用户不允许再次获取
func (s *TestService) Questions(userID uint) ([]quiz.StudentQuestion, error) {
	submitted, err := s.Submissions.ExistsByUserID(userID)
	if err != nil {
		return nil, err
	}
	if submitted {
		return nil, util.ErrDuplicateSubmission
	}
	return s.Bank.StudentView(), nil
}

// Submit 处理一次答卷提交。评分结果先计算后落库;
// 落库失败不吞掉成绩,结果仍然返回并写入缓存,Persisted 置 false
func (s *TestService) Submit(ctx context.Context, userID uint, req *SubmitRequest) (*TestResult, error) {
	if len(req.Answers) == 0 {
		return nil, util.ErrEmptyAnswers
	}

	submitted, err := s.Submissions.ExistsByUserID(userID)
	if err != nil {
		return nil, err
	}
	if submitted {
		return nil, util.ErrDuplicateSubmission
	}

	engine := scoring.NewEngine(s.seed())
	evaluated := engine.Evaluate(s.Bank, req.Answers)
	scholarship := scoring.Band(evaluated.Percentage)
	feedback := engine.Synthesize(evaluated, s.Bank)

	submission := &model.TestSubmission{
		UserID:                userID,
		StudentName:           req.StudentData.Name,
		StudentEmail:          req.StudentData.Email,
		StudentPhone:          req.StudentData.Phone,
		College:               req.StudentData.College,
		Course:                req.StudentData.Course,
		Year:                  req.StudentData.Year,
		Score:                 evaluated.Score,
		RawScore:              evaluated.RawScore,
		TotalMarks:            evaluated.TotalMarks,
		Percentage:            evaluated.Percentage,
		ScholarshipPercentage: scholarship.Percentage,
		ScholarshipAmount:     scholarship.Amount,
		FinalFee:              scholarship.FinalFee,
		OriginalFee:           scholarship.OriginalFee,
		Answers:               mustJSON(req.Answers),
		Evaluations:           mustJSON(evaluated.Evaluations),
		DimensionScores:       mustJSON(feedback.DimensionScores),
		Feedback:              mustJSON(feedback),
		Metadata:              mustJSON(req.Metadata),
		SubmittedAt:           s.now(),
	}
	submission.ID = model.GenerateUUID()

	result := &TestResult{
		SubmissionID: submission.ID,
		Score:        evaluated.Score,
		RawScore:     evaluated.RawScore,
		TotalMarks:   evaluated.TotalMarks,
		Percentage:   evaluated.Percentage,
		Scholarship:  scholarship,
		Feedback:     feedback,
		Evaluations:  evaluated.Evaluations,
		SubmittedAt:  submission.SubmittedAt,
		Persisted:    true,
	}

	if err := s.Submissions.InsertIfAbsent(submission); err != nil {
		if err == util.ErrDuplicateSubmission {
			return nil, err
		}
		// 成绩已算出,不因存储故障丢弃
		logger.Log.Error("保存测试提交失败,结果仅写入缓存",
			zap.Uint("userID", userID), zap.Error(err))
		result.Persisted = false
	}

	s.saveLead(userID, &req.StudentData)

	if err := s.Cache.Put(ctx, userID, result); err != nil {
		logger.Log.Warn("缓存测试结果失败", zap.Uint("userID", userID), zap.Error(err))
	}
	return result, nil
}

// saveLead 线索留存为尽力而为,失败只记日志不影响成绩返回
func (s *TestService) saveLead(userID uint, data *StudentData) {
	if data.Email == "" {
		return
	}
	lead := &model.Lead{
		Name:    data.Name,
		Email:   data.Email,
		Phone:   data.Phone,
		College: data.College,
		Course:  data.Course,
		Year:    data.Year,
		Source:  "scholarship-test",
	}
	if err := s.Leads.Upsert(lead); err != nil {
		logger.Log.Warn("保存线索失败", zap.Uint("userID", userID), zap.Error(err))
	}
}

// GetLastResult 先查缓存,未命中时回源数据库并回填缓存
func (s *TestService) GetLastResult(ctx context.Context, userID uint) (*TestResult, error) {
	if cached, err := s.Cache.Get(ctx, userID); err != nil {
		logger.Log.Warn("读取结果缓存失败", zap.Uint("userID", userID), zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	submission, err := s.Submissions.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	result := resultFromSubmission(submission)
	if err := s.Cache.Put(ctx, userID, result); err != nil {
		logger.Log.Warn("回填结果缓存失败", zap.Uint("userID", userID), zap.Error(err))
	}
	return result, nil
}

// GetResult 按提交 ID 查询,学生只能查看自己的记录
func (s *TestService) GetResult(id string, claims *util.Claims) (*TestResult, error) {
	submission, err := s.Submissions.FindByID(id)
	if err != nil {
		return nil, err
	}
	if claims.Role == model.Student && submission.UserID != claims.UserID {
		return nil, util.ErrPermissionDenied
	}
	return resultFromSubmission(submission), nil
}

// UserResults 当前用户的全部结果,每人一条
func (s *TestService) UserResults(userID uint) ([]*TestResult, error) {
	submission, err := s.Submissions.FindByUserID(userID)
	if err == util.ErrResultNotFound {
		return []*TestResult{}, nil
	}
	if err != nil {
		return nil, err
	}
	return []*TestResult{resultFromSubmission(submission)}, nil
}

// ListSubmissions 教师端分页查询全部提交
func (s *TestService) ListSubmissions(page, limit int) ([]model.TestSubmission, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.Submissions.List(page, limit)
}

// GetSubmission 教师端查看单条提交明细
func (s *TestService) GetSubmission(id string) (*model.TestSubmission, error) {
	return s.Submissions.FindByID(id)
}

// HasSubmitted 查询用户是否已完成测试
func (s *TestService) HasSubmitted(userID uint) (bool, error) {
	return s.Submissions.ExistsByUserID(userID)
}

func resultFromSubmission(sub *model.TestSubmission) *TestResult {
	result := &TestResult{
		SubmissionID: sub.ID,
		Score:        sub.Score,
		RawScore:     sub.RawScore,
		TotalMarks:   sub.TotalMarks,
		Percentage:   sub.Percentage,
		Scholarship: scoring.Scholarship{
			Percentage:  sub.ScholarshipPercentage,
			Amount:      sub.ScholarshipAmount,
			FinalFee:    sub.FinalFee,
			OriginalFee: sub.OriginalFee,
		},
		SubmittedAt: sub.SubmittedAt,
		Persisted:   true,
	}
	if len(sub.Evaluations) > 0 {
		_ = json.Unmarshal(sub.Evaluations, &result.Evaluations)
	}
	if len(sub.Feedback) > 0 {
		var fb scoring.Feedback
		if json.Unmarshal(sub.Feedback, &fb) == nil {
			result.Feedback = &fb
		}
	}
	return result
}

func mustJSON(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}
