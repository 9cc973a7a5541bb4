package dao

import (
	"Storefront/models"
	"context"

	"gorm.io/gorm"
)

type Users struct {
	Repo[models.User]
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{
		Repo: NewRepo[models.User](db),
	}
}

// FindByEmail 邮箱查询
func (u *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return u.Repo.FindByWhere(ctx, "email = ?", email)
}

// IsEmailExist 判断邮箱是否已注册
func (u *Users) IsEmailExist(ctx context.Context, email string) (bool, error) {
	return u.Repo.IsExist(ctx, "email = ?", email)
}
