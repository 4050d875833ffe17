package model

import (
	"accounts/internal/entity"
	"context"
)

// Repository 定义数据库操作接口
type Repository interface {
	CreateUser(ctx context.Context, user *entity.DbUser) error
	UpdateUser(ctx context.Context, id uint, updates entity.UserUpdates) error
	GetUserByEmail(ctx context.Context, email string) (*entity.DbUser, error)
	GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error)
	GetUserByActivationKey(ctx context.Context, key string) (*entity.DbUser, error)
}
