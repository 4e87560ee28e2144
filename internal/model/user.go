package model

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	CanRetake bool      `gorm:"default:false" json:"canRetake"` // 管理员放开重测
	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}

// Admin 管理员账号，使用登录名而不是邮箱
// swagger:model Admin
type Admin struct {
	BaseModel
	LoginID  string `gorm:"size:64;unique;not null" json:"loginId"`
	Password string `gorm:"size:100;not null" json:"-"`
}

func (Admin) TableName() string {
	return "admins"
}
