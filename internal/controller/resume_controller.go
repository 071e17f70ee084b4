package controller

import (
	"errors"

	"futuretech_backend/internal/service"
	"futuretech_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ResumeController struct {
	ResumeService *service.ResumeService
}

func NewResumeController(resumeService *service.ResumeService) *ResumeController {
	return &ResumeController{ResumeService: resumeService}
}

// Generate godoc
// @Summary 生成简历
// @Description 根据提交的内容渲染 HTML 简历并保存
// @Tags 简历
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.GenerateResumeRequest true "简历内容"
// @Success 201 {object} util.Response{data=model.Resume}
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/resume/generate [post]
func (c *ResumeController) Generate(ctx *gin.Context) {
	var req service.GenerateResumeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	resume, err := c.ResumeService.Generate(ctx.Request.Context(), claims.UserID, &req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, resume)
}

// List godoc
// @Summary 当前用户的简历列表
// @Tags 简历
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=object}
// @Router /api/resumes [get]
func (c *ResumeController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	resumes, err := c.ResumeService.List(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"resumes": resumes})
}

// Get godoc
// @Summary 查看单份简历
// @Tags 简历
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "简历 ID"
// @Success 200 {object} util.Response{data=model.Resume}
// @Failure 404 {object} util.Response "简历不存在"
// @Router /api/resumes/{id} [get]
func (c *ResumeController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	resume, err := c.ResumeService.Get(ctx.Param("id"), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrResumeNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, resume)
}
