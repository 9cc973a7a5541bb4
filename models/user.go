package models

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	Email        string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex:uk_users_email" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	Name         string    `gorm:"column:name;type:varchar(128)" json:"name"`
	Role         string    `gorm:"column:role;type:varchar(16);not null;default:'customer'" json:"role"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
