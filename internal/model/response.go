package model

import "time"

// TestSession 一次完成的测试
// swagger:model TestSession
type TestSession struct {
	UUIDBase
	UserID      uint      `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	CompletedAt time.Time `gorm:"index" json:"completedAt"`
	TotalScore  int       `gorm:"default:0" json:"totalScore"`
}

func (TestSession) TableName() string {
	return "user_test_sessions"
}

// UserTestResponse 只追加不修改
// swagger:model UserTestResponse
type UserTestResponse struct {
	BaseModel
	UserID     uint   `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	SessionID  string `gorm:"index;type:varchar(36)" json:"sessionId"`
	QuestionID uint   `gorm:"index;type:bigint unsigned;not null" json:"questionId"`
	OptionID   uint   `gorm:"type:bigint unsigned;not null" json:"optionId"`
	Points     int    `gorm:"not null;default:0" json:"points"`
}

func (UserTestResponse) TableName() string {
	return "user_test_responses"
}

// SessionSummary 按用户聚合的测试次数，不对应数据表
type SessionSummary struct {
	UserID       uint      `json:"userId"`
	TestCount    int64     `json:"testCount"`
	LastTestDate time.Time `json:"lastTestDate"`
}
