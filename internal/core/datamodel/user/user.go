package user

import "time"

type User struct {
	Seq         int64     `gorm:"primaryKey;autoIncrement"`
	UserID      string    `gorm:"column:user_id;uniqueIndex;not null"`
	Username    string    `gorm:"column:username;uniqueIndex;not null"`
	Name        string    `gorm:"column:name;not null"`
	Email       string    `gorm:"column:email"`
	Department  string    `gorm:"column:department;not null"`
	IsAdmin     bool      `gorm:"column:is_admin;not null"`
	Permissions []string  `gorm:"column:permissions;type:text;serializer:json"`
	Credential  string    `gorm:"column:credential;not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (User) TableName() string {
	return "users"
}
