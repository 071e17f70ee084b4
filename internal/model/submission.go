package model

import (
	"encoding/json"
	"time"
)

// TestSubmission 学生奖学金测试提交记录,每个用户仅允许一条
// swagger:model TestSubmission
type TestSubmission struct {
	UUIDBase
	UserID       uint   `gorm:"uniqueIndex;not null" json:"userId"`
	StudentName  string `gorm:"size:100" json:"studentName"`
	StudentEmail string `gorm:"size:100;index" json:"studentEmail"`
	StudentPhone string `gorm:"size:20" json:"studentPhone"`
	College      string `gorm:"size:200" json:"college"`
	Course       string `gorm:"size:100" json:"course"`
	Year         string `gorm:"size:20" json:"year"`

	Score                 int `gorm:"not null" json:"score"`
	RawScore              int `gorm:"not null" json:"rawScore"`
	TotalMarks            int `gorm:"not null" json:"totalMarks"`
	Percentage            int `gorm:"not null" json:"percentage"`
	ScholarshipPercentage int `gorm:"not null" json:"scholarshipPercentage"`
	ScholarshipAmount     int `gorm:"not null" json:"scholarshipAmount"`
	FinalFee              int `gorm:"not null" json:"finalFee"`
	OriginalFee           int `gorm:"not null" json:"originalFee"`

	Answers         json.RawMessage `gorm:"type:json" json:"answers,omitempty"`
	Evaluations     json.RawMessage `gorm:"type:json" json:"evaluations,omitempty"`
	DimensionScores json.RawMessage `gorm:"type:json" json:"dimensionScores,omitempty"`
	Feedback        json.RawMessage `gorm:"type:json" json:"feedback,omitempty"`
	Metadata        json.RawMessage `gorm:"type:json" json:"metadata,omitempty"`

	SubmittedAt time.Time `gorm:"not null" json:"submittedAt"`
}

func (TestSubmission) TableName() string {
	return "test_submissions"
}
