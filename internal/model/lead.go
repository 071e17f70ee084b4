package model

import "time"

// Lead 咨询线索,按邮箱去重,重复保存时更新
// swagger:model Lead
type Lead struct {
	BaseModel
	Name          string    `gorm:"size:100;not null" json:"name"`
	Email         string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone         string    `gorm:"size:20" json:"phone"`
	College       string    `gorm:"size:200" json:"college"`
	Course        string    `gorm:"size:100" json:"course"`
	Year          string    `gorm:"size:20" json:"year"`
	Source        string    `gorm:"size:50;default:'scholarship-test'" json:"source"`
	LastContactAt time.Time `json:"lastContactAt"`
}

func (Lead) TableName() string {
	return "leads"
}
