package controller

import (
	"errors"
	"strconv"

	"futuretech_backend/internal/service"
	"futuretech_backend/internal/util"
	"futuretech_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type TestController struct {
	TestService *service.TestService
}

func NewTestController(testService *service.TestService) *TestController {
	return &TestController{TestService: testService}
}

// Questions godoc
// @Summary 获取测试题目
// @Description 返回学生视图的题目列表,不含答案;已提交过的用户返回 403
// @Tags 测试
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=object}
// @Failure 403 {object} util.Response "已提交过测试"
// @Router /api/questions [get]
func (c *TestController) Questions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	questions, err := c.TestService.Questions(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrDuplicateSubmission) {
			util.Forbidden(ctx, "测试已提交,不允许重复参加")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"questions": questions, "total": len(questions)})
}

// Submit godoc
// @Summary 提交答卷
// @Description 评分、计算奖学金档位并生成反馈报告,每个用户仅允许提交一次
// @Tags 测试
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.SubmitRequest true "答卷数据"
// @Success 200 {object} util.Response{data=service.TestResult}
// @Failure 400 {object} util.Response "答案为空"
// @Failure 403 {object} util.Response "重复提交"
// @Router /api/submit-test [post]
func (c *TestController) Submit(ctx *gin.Context) {
	var req service.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	result, err := c.TestService.Submit(ctx.Request.Context(), claims.UserID, &req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEmptyAnswers):
			monitoring.ObserveSubmission("rejected", 0)
			util.BadRequest(ctx, "答案不能为空")
		case errors.Is(err, util.ErrDuplicateSubmission):
			monitoring.ObserveSubmission("duplicate", 0)
			util.Forbidden(ctx, "测试已提交,不允许重复提交")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	monitoring.ObserveSubmission("accepted", result.Scholarship.Percentage)
	util.Success(ctx, result)
}

// LastResult godoc
// @Summary 最近一次测试结果
// @Description 优先读缓存,未命中回源数据库
// @Tags 测试
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.TestResult}
// @Failure 404 {object} util.Response "暂无测试结果"
// @Router /api/get-last-result [get]
func (c *TestController) LastResult(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	result, err := c.TestService.GetLastResult(ctx.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrResultNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// UserResults godoc
// @Summary 当前用户全部测试结果
// @Tags 测试
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=object}
// @Router /api/user-results [get]
func (c *TestController) UserResults(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	results, err := c.TestService.UserResults(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"results": results})
}

// Result godoc
// @Summary 按 ID 查询测试结果
// @Description 学生仅能查询自己的提交,教师与管理员不受限
// @Tags 测试
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "提交 ID"
// @Success 200 {object} util.Response{data=service.TestResult}
// @Failure 403 {object} util.Response "无权限查看"
// @Failure 404 {object} util.Response "结果不存在"
// @Router /api/test-result/{id} [get]
func (c *TestController) Result(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	result, err := c.TestService.GetResult(ctx.Param("id"), claims)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrResultNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx, "无权限查看此结果")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// ListSubmissions godoc
// @Summary 分页查询全部提交
// @Description 教师端接口
// @Tags 教师
// @Produce  json
// @Security BearerAuth
// @Param   page  query int false "页码" default(1)
// @Param   limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/teacher/submissions [get]
func (c *TestController) ListSubmissions(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	submissions, total, err := c.TestService.ListSubmissions(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{
		List:  submissions,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// Submission godoc
// @Summary 查看单条提交明细
// @Description 教师端接口,包含原始答卷与逐题评分
// @Tags 教师
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "提交 ID"
// @Success 200 {object} util.Response{data=model.TestSubmission}
// @Failure 404 {object} util.Response "提交不存在"
// @Router /api/teacher/submissions/{id} [get]
func (c *TestController) Submission(ctx *gin.Context) {
	submission, err := c.TestService.GetSubmission(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrResultNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, submission)
}

// BankQuestions godoc
// @Summary 查看完整题库
// @Description 教师端接口,含正确答案与认知技能标签
// @Tags 教师
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=object}
// @Router /api/teacher/questions [get]
func (c *TestController) BankQuestions(ctx *gin.Context) {
	questions := c.TestService.Bank.Questions()
	util.Success(ctx, gin.H{
		"questions":  questions,
		"total":      len(questions),
		"totalMarks": c.TestService.Bank.TotalMarks(),
	})
}
