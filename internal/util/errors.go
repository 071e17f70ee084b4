package util

import "errors"

// 业务错误定义,服务层返回,控制器层映射为 HTTP 状态码
var (
	ErrUserNotFound        = errors.New("用户不存在")
	ErrEmailRegistered     = errors.New("邮箱已注册")
	ErrInvalidCredentials  = errors.New("邮箱或密码错误")
	ErrPermissionDenied    = errors.New("无权限执行此操作")
	ErrDuplicateSubmission = errors.New("测试已提交,不允许重复提交")
	ErrEmptyAnswers        = errors.New("答案不能为空")
	ErrInvalidQuestion     = errors.New("题目数据无效")
	ErrUnknownQuestionType = errors.New("未知题型")
	ErrResultNotFound      = errors.New("测试结果不存在")
	ErrResumeNotFound      = errors.New("简历不存在")
	ErrLeadInvalid         = errors.New("线索数据无效")
)
