package util

import "errors"

// 未找到类：用户还没有完成测试，不能当作零分展示
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrNoResults       = errors.New("no test results found")
	ErrSessionNotFound = errors.New("no completed test session")
)

// 数据/配置类：测试数据本身有问题
var (
	ErrIncompleteData          = errors.New("question catalog is incomplete")
	ErrInstrumentMisconfigured = errors.New("instrument misconfigured")
)

var (
	ErrFetchFailed          = errors.New("failed to fetch test data")
	ErrEmailRegistered      = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrInvalidSubmission    = errors.New("invalid test submission")
	ErrTestAlreadySubmitted = errors.New("test already submitted")
)

// IsNotFound 判断是否为“尚未完成测试”一类的错误
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrNoResults) ||
		errors.Is(err, ErrSessionNotFound)
}

// IsDataProblem 判断是否为“测试数据有问题”一类的错误
func IsDataProblem(err error) bool {
	return errors.Is(err, ErrIncompleteData) || errors.Is(err, ErrInstrumentMisconfigured)
}
