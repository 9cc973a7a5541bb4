package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repo 单表通用操作
type Repo[T any] struct {
	Db *gorm.DB
}

func NewRepo[T any](db *gorm.DB) Repo[T] {
	return Repo[T]{Db: db}
}

// Model 带 ctx 的单表查询入口
func (r *Repo[T]) Model(ctx context.Context) *gorm.DB {
	return r.Db.WithContext(ctx).Model(new(T))
}

func (r *Repo[T]) Create(ctx context.Context, data *T) error {
	return r.Db.WithContext(ctx).Create(data).Error
}

func (r *Repo[T]) FindById(ctx context.Context, id int64) (*T, error) {
	var item T
	if err := r.Db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repo[T]) FindByIds(ctx context.Context, ids []int64) ([]*T, error) {
	items := make([]*T, 0, len(ids))
	if len(ids) == 0 {
		return items, nil
	}
	err := r.Db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error
	return items, err
}

func (r *Repo[T]) FindByWhere(ctx context.Context, where string, args ...any) (*T, error) {
	var item T
	if err := r.Db.WithContext(ctx).Where(where, args...).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repo[T]) FindCount(ctx context.Context, where string, args ...any) (int64, error) {
	var count int64
	err := r.Model(ctx).Where(where, args...).Count(&count).Error
	return count, err
}

func (r *Repo[T]) IsExist(ctx context.Context, where string, args ...any) (bool, error) {
	var item T
	err := r.Db.WithContext(ctx).Select("id").Where(where, args...).Limit(1).Take(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *Repo[T]) UpdateById(ctx context.Context, id int64, data map[string]any) (int64, error) {
	res := r.Model(ctx).Where("id = ?", id).Updates(data)
	return res.RowsAffected, res.Error
}

func (r *Repo[T]) DeleteById(ctx context.Context, id int64) (int64, error) {
	res := r.Db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	return res.RowsAffected, res.Error
}
