package scoring

import (
	"errors"
	"fmt"
)

// ErrIncompleteCatalog 题库题目数量不足 7 道
var ErrIncompleteCatalog = errors.New("question catalog is incomplete")

// ConfigurationError 量表常量表与题库不匹配（置换表缺行、维度缺失等）
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("instrument misconfigured: %s: %v", e.Reason, e.Err)
	}
	return "instrument misconfigured: " + e.Reason
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// MalformedQuestionError 单个题目的选项不是恰好 8 个，或选项重复
type MalformedQuestionError struct {
	QuestionIndex int
	QuestionID    uint
	OptionCount   int
	Reason        string
}

func (e *MalformedQuestionError) Error() string {
	return fmt.Sprintf("question %s (id=%d) is malformed: %s",
		QuestionLabel(e.QuestionIndex), e.QuestionID, e.Reason)
}
