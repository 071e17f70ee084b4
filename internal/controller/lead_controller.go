package controller

import (
	"errors"
	"strconv"

	"futuretech_backend/internal/service"
	"futuretech_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LeadController struct {
	LeadService *service.LeadService
}

func NewLeadController(leadService *service.LeadService) *LeadController {
	return &LeadController{LeadService: leadService}
}

// Save godoc
// @Summary 保存咨询线索
// @Description 按邮箱去重,重复保存时更新联系信息
// @Tags 线索
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.SaveLeadRequest true "线索信息"
// @Success 200 {object} util.Response{data=model.Lead}
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/save-lead [post]
func (c *LeadController) Save(ctx *gin.Context) {
	var req service.SaveLeadRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lead, err := c.LeadService.Save(&req)
	if err != nil {
		if errors.Is(err, util.ErrLeadInvalid) {
			util.BadRequest(ctx, "线索数据无效")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, lead)
}

// List godoc
// @Summary 分页查询线索
// @Description 教师端接口
// @Tags 教师
// @Produce  json
// @Security BearerAuth
// @Param   page  query int false "页码" default(1)
// @Param   limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/teacher/leads [get]
func (c *LeadController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	leads, total, err := c.LeadService.List(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{
		List:  leads,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}
