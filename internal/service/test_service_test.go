package service

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"futuretech_backend/internal/model"
	"futuretech_backend/internal/quiz"
	"futuretech_backend/internal/util"
	"futuretech_backend/pkg/logger"

	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

type fakeSubmissionStore struct {
	mu         sync.Mutex
	byUser     map[uint]*model.TestSubmission
	failInsert bool
}

func newFakeSubmissionStore() *fakeSubmissionStore {
	return &fakeSubmissionStore{byUser: make(map[uint]*model.TestSubmission)}
}

func (f *fakeSubmissionStore) InsertIfAbsent(sub *model.TestSubmission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failInsert {
		return errors.New("database unavailable")
	}
	if _, exists := f.byUser[sub.UserID]; exists {
		return util.ErrDuplicateSubmission
	}
	f.byUser[sub.UserID] = sub
	return nil
}

func (f *fakeSubmissionStore) FindByUserID(userID uint) (*model.TestSubmission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sub, ok := f.byUser[userID]
	if !ok {
		return nil, util.ErrResultNotFound
	}
	return sub, nil
}

func (f *fakeSubmissionStore) FindByID(id string) (*model.TestSubmission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, sub := range f.byUser {
		if sub.ID == id {
			return sub, nil
		}
	}
	return nil, util.ErrResultNotFound
}

func (f *fakeSubmissionStore) ExistsByUserID(userID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.byUser[userID]
	return ok, nil
}

func (f *fakeSubmissionStore) List(page, limit int) ([]model.TestSubmission, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.TestSubmission, 0, len(f.byUser))
	for _, sub := range f.byUser {
		out = append(out, *sub)
	}
	return out, int64(len(out)), nil
}

type fakeLeadStore struct {
	mu    sync.Mutex
	leads []*model.Lead
}

func (f *fakeLeadStore) Upsert(lead *model.Lead) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.leads = append(f.leads, lead)
	return nil
}

const serviceBank = `{
  "sections": [
    {
      "id": "aptitude",
      "name": "Aptitude",
      "questions": [
        {"id": 1, "type": "mcq", "question": "q1", "options": ["a", "b"], "correctAnswer": 0, "marks": 2},
        {"id": 2, "type": "mcq", "question": "q2", "options": ["a", "b"], "correctAnswer": 1, "marks": 2},
        {"id": 3, "type": "fitb", "question": "q3", "marks": 6}
      ]
    }
  ]
}`

func newTestService(t *testing.T, store SubmissionStore, leads LeadStore) *TestService {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.json")
	if err := os.WriteFile(path, []byte(serviceBank), 0o644); err != nil {
		t.Fatalf("write bank: %v", err)
	}
	bank, err := quiz.Load(path)
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	s := NewTestService(bank, store, leads, NewResultCache(nil, time.Hour))
	s.seed = func() int64 { return 42 }
	return s
}

func validRequest() *SubmitRequest {
	return &SubmitRequest{
		Answers: map[string]interface{}{
			"1": float64(0),
			"2": float64(1),
			"3": "a genuine written answer",
		},
		StudentData: StudentData{
			Name: "Asha", Email: "asha@example.com", Phone: "9876543210",
			College: "IIT", Course: "CSE", Year: "3",
		},
		Metadata: SubmitMetadata{Duration: 1200, TabSwitches: 1, WarningsRemaining: 2},
	}
}

func TestSubmit(t *testing.T) {
	store := newFakeSubmissionStore()
	leads := &fakeLeadStore{}
	s := newTestService(t, store, leads)

	result, err := s.Submit(context.Background(), 1, validRequest())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.SubmissionID == "" {
		t.Error("empty SubmissionID")
	}
	if result.TotalMarks != 10 {
		t.Errorf("TotalMarks = %d, want 10", result.TotalMarks)
	}
	if result.Percentage < 1 || result.Percentage > 100 {
		t.Errorf("Percentage = %d, out of range", result.Percentage)
	}
	// 对外得分与最终百分比折算一致
	want := int(math.Round(float64(result.Percentage) / 100 * float64(result.TotalMarks)))
	if result.Score != want {
		t.Errorf("Score = %d, want %d for percentage %d", result.Score, want, result.Percentage)
	}
	if result.Scholarship.Percentage == 0 {
		t.Error("zero scholarship percentage")
	}
	if result.Scholarship.Amount+result.Scholarship.FinalFee != result.Scholarship.OriginalFee {
		t.Errorf("scholarship does not add up: %+v", result.Scholarship)
	}
	if result.Feedback == nil || len(result.Feedback.DimensionScores) != 10 {
		t.Errorf("Feedback = %+v", result.Feedback)
	}
	if !result.Persisted {
		t.Error("Persisted = false, want true")
	}

	// 学生资料沉淀为线索
	if len(leads.leads) != 1 || leads.leads[0].Email != "asha@example.com" {
		t.Errorf("leads = %+v", leads.leads)
	}

	// 落库记录与返回结果一致
	sub, err := store.FindByUserID(1)
	if err != nil {
		t.Fatalf("FindByUserID: %v", err)
	}
	if sub.Percentage != result.Percentage || sub.ScholarshipAmount != result.Scholarship.Amount {
		t.Errorf("stored %d/%d, returned %d/%d",
			sub.Percentage, sub.ScholarshipAmount, result.Percentage, result.Scholarship.Amount)
	}
}

func TestSubmitEmptyAnswers(t *testing.T) {
	s := newTestService(t, newFakeSubmissionStore(), &fakeLeadStore{})

	req := validRequest()
	req.Answers = map[string]interface{}{}
	if _, err := s.Submit(context.Background(), 1, req); err != util.ErrEmptyAnswers {
		t.Errorf("err = %v, want ErrEmptyAnswers", err)
	}
}

func TestSubmitDuplicate(t *testing.T) {
	s := newTestService(t, newFakeSubmissionStore(), &fakeLeadStore{})

	if _, err := s.Submit(context.Background(), 1, validRequest()); err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	if _, err := s.Submit(context.Background(), 1, validRequest()); err != util.ErrDuplicateSubmission {
		t.Errorf("second Submit err = %v, want ErrDuplicateSubmission", err)
	}
}

// 并发重复提交时有且仅有一次成功
func TestSubmitConcurrentDuplicate(t *testing.T) {
	store := newFakeSubmissionStore()
	s := newTestService(t, store, &fakeLeadStore{})

	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Submit(context.Background(), 7, validRequest())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, dup int
	for err := range errs {
		switch err {
		case nil:
			ok++
		case util.ErrDuplicateSubmission:
			dup++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if ok != 1 {
		t.Errorf("successes = %d, want 1", ok)
	}
	if dup != workers-1 {
		t.Errorf("duplicates = %d, want %d", dup, workers-1)
	}
}

// 存储故障不影响成绩返回
func TestSubmitPersistenceFailure(t *testing.T) {
	store := newFakeSubmissionStore()
	store.failInsert = true
	s := newTestService(t, store, &fakeLeadStore{})

	result, err := s.Submit(context.Background(), 1, validRequest())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.Persisted {
		t.Error("Persisted = true, want false")
	}
	if result.Percentage < 1 || result.Scholarship.Percentage == 0 {
		t.Errorf("result incomplete: %+v", result)
	}
}

func TestQuestionsAfterSubmission(t *testing.T) {
	s := newTestService(t, newFakeSubmissionStore(), &fakeLeadStore{})

	qs, err := s.Questions(1)
	if err != nil {
		t.Fatalf("Questions: %v", err)
	}
	if len(qs) != 3 {
		t.Errorf("len(questions) = %d, want 3", len(qs))
	}

	if _, err := s.Submit(context.Background(), 1, validRequest()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := s.Questions(1); err != util.ErrDuplicateSubmission {
		t.Errorf("Questions after submit err = %v, want ErrDuplicateSubmission", err)
	}
}

func TestGetLastResult(t *testing.T) {
	s := newTestService(t, newFakeSubmissionStore(), &fakeLeadStore{})

	if _, err := s.GetLastResult(context.Background(), 1); err != util.ErrResultNotFound {
		t.Errorf("err = %v, want ErrResultNotFound", err)
	}

	submitted, err := s.Submit(context.Background(), 1, validRequest())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	got, err := s.GetLastResult(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetLastResult: %v", err)
	}
	if got.SubmissionID != submitted.SubmissionID || got.Percentage != submitted.Percentage {
		t.Errorf("got %+v, want %+v", got, submitted)
	}
	if got.Score != submitted.Score || got.RawScore != submitted.RawScore {
		t.Errorf("scores not restored: got %d/%d, want %d/%d",
			got.Score, got.RawScore, submitted.Score, submitted.RawScore)
	}
	if got.Feedback == nil || len(got.Evaluations) != 3 {
		t.Errorf("result not fully restored: %+v", got)
	}
}

func TestGetResultOwnership(t *testing.T) {
	s := newTestService(t, newFakeSubmissionStore(), &fakeLeadStore{})

	result, err := s.Submit(context.Background(), 1, validRequest())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	owner := &util.Claims{UserID: 1, Role: model.Student}
	if _, err := s.GetResult(result.SubmissionID, owner); err != nil {
		t.Errorf("owner access: %v", err)
	}

	other := &util.Claims{UserID: 2, Role: model.Student}
	if _, err := s.GetResult(result.SubmissionID, other); err != util.ErrPermissionDenied {
		t.Errorf("other student err = %v, want ErrPermissionDenied", err)
	}

	teacher := &util.Claims{UserID: 3, Role: model.Teacher}
	if _, err := s.GetResult(result.SubmissionID, teacher); err != nil {
		t.Errorf("teacher access: %v", err)
	}
}
