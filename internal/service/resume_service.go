package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"

	"futuretech_backend/internal/model"
	"futuretech_backend/internal/repository"
	"futuretech_backend/pkg/logger"

	"go.uber.org/zap"
)

// ResumeContent 简历内容结构
type ResumeContent struct {
	FullName  string            `json:"fullName"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone"`
	Summary   string            `json:"summary"`
	Education []EducationEntry  `json:"education"`
	Skills    []string          `json:"skills"`
	Projects  []ProjectEntry    `json:"projects"`
	Links     map[string]string `json:"links,omitempty"`
}

type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Year        string `json:"year"`
}

type ProjectEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Link        string `json:"link,omitempty"`
}

// GenerateResumeRequest 生成简历请求
type GenerateResumeRequest struct {
	Title    string        `json:"title" binding:"required"`
	Template string        `json:"template"`
	Content  ResumeContent `json:"content" binding:"required"`
}

var resumeTemplate = template.Must(template.New("resume").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.FullName}} - Resume</title>
<style>
body { font-family: 'Segoe UI', Arial, sans-serif; max-width: 800px; margin: 40px auto; color: #222; }
h1 { margin-bottom: 0; }
.contact { color: #555; margin-bottom: 24px; }
h2 { border-bottom: 2px solid #2c6fbb; padding-bottom: 4px; }
.skills span { display: inline-block; background: #eef4fb; padding: 4px 10px; margin: 3px; border-radius: 4px; }
</style>
</head>
<body>
<h1>{{.FullName}}</h1>
<div class="contact">{{.Email}}{{if .Phone}} | {{.Phone}}{{end}}</div>
{{if .Summary}}<h2>Summary</h2><p>{{.Summary}}</p>{{end}}
{{if .Education}}<h2>Education</h2>
<ul>{{range .Education}}<li><strong>{{.Institution}}</strong> - {{.Degree}}{{if .Year}} ({{.Year}}){{end}}</li>{{end}}</ul>{{end}}
{{if .Skills}}<h2>Skills</h2>
<div class="skills">{{range .Skills}}<span>{{.}}</span>{{end}}</div>{{end}}
{{if .Projects}}<h2>Projects</h2>
<ul>{{range .Projects}}<li><strong>{{.Name}}</strong>: {{.Description}}{{if .Link}} ({{.Link}}){{end}}</li>{{end}}</ul>{{end}}
</body>
</html>
`))

// ResumeService 简历生成服务,渲染 HTML 并写入对象存储
type ResumeService struct {
	ResumeRepo *repository.ResumeRepository
	Storage    *StorageService
}

func NewResumeService(resumeRepo *repository.ResumeRepository, storage *StorageService) *ResumeService {
	return &ResumeService{ResumeRepo: resumeRepo, Storage: storage}
}

func (s *ResumeService) Generate(ctx context.Context, userID uint, req *GenerateResumeRequest) (*model.Resume, error) {
	var buf bytes.Buffer
	if err := resumeTemplate.Execute(&buf, &req.Content); err != nil {
		return nil, err
	}

	content, err := json.Marshal(req.Content)
	if err != nil {
		return nil, err
	}

	tmpl := req.Template
	if tmpl == "" {
		tmpl = "classic"
	}
	resume := &model.Resume{
		UserID:   userID,
		Title:    req.Title,
		Template: tmpl,
		Content:  content,
	}
	resume.ID = model.GenerateUUID()

	filename := fmt.Sprintf("resumes/%s.html", resume.ID)
	url, err := s.Storage.Upload(ctx, filename, &buf, int64(buf.Len()), "text/html; charset=utf-8")
	if err != nil {
		// 渲染产物上传失败不阻塞简历记录,URL 留空
		logger.Log.Warn("上传简历文件失败", zap.String("resumeID", resume.ID), zap.Error(err))
	} else {
		resume.FileURL = url
	}

	if err := s.ResumeRepo.Create(resume); err != nil {
		return nil, err
	}
	return resume, nil
}

func (s *ResumeService) List(userID uint) ([]model.Resume, error) {
	return s.ResumeRepo.FindByUserID(userID)
}

func (s *ResumeService) Get(id string, userID uint) (*model.Resume, error) {
	return s.ResumeRepo.FindByID(id, userID)
}
