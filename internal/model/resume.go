package model

import "encoding/json"

// Resume 用户生成的简历,内容以 JSON 保存,渲染产物存入对象存储
// swagger:model Resume
type Resume struct {
	UUIDBase
	UserID   uint            `gorm:"index;not null" json:"userId"`
	Title    string          `gorm:"size:200;not null" json:"title"`
	Template string          `gorm:"size:50;default:'classic'" json:"template"`
	Content  json.RawMessage `gorm:"type:json" json:"content"`
	FileURL  string          `gorm:"size:500" json:"fileUrl"`
}

func (Resume) TableName() string {
	return "resumes"
}
