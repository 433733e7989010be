package dbmysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"zentra/internal/common"
)

type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"column:name;size:100;not null" json:"name"`
	Username  string    `gorm:"column:username;uniqueIndex;size:50;not null" json:"username"`
	Avatar    *string   `gorm:"column:avatar;size:512" json:"avatar,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *User) error {
	if err := conn(ctx, r.db).Create(user).Error; err != nil {
		return common.Persistence("create user", err)
	}
	return nil
}

func (r *UserRepository) FindUserByID(ctx context.Context, id string) (*User, error) {
	var user User
	if err := conn(ctx, r.db).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFound(common.CodeUserNotFound, "User not found")
		}
		return nil, common.Persistence("find user", err)
	}
	return &user, nil
}
