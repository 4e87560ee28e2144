package model

// swagger:model TestQuestion
type TestQuestion struct {
	BaseModel
	QuestionText  string       `gorm:"type:text;not null" json:"questionText"`
	QuestionOrder int          `gorm:"index;default:0" json:"questionOrder"`
	Options       []TestOption `gorm:"foreignKey:QuestionID" json:"options"`
}

func (TestQuestion) TableName() string {
	return "test_questions"
}

// TestOption 选项的自然顺序由 OptionOrder 决定，计分时按置换表映射到逻辑列
// swagger:model TestOption
type TestOption struct {
	BaseModel
	QuestionID  uint   `gorm:"index;type:bigint unsigned;not null" json:"questionId"`
	OptionText  string `gorm:"type:text;not null" json:"optionText"`
	OptionOrder int    `gorm:"default:0" json:"optionOrder"`
}

func (TestOption) TableName() string {
	return "test_options"
}
