package dbmysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	"zentra/internal/common"
)

type Follow struct {
	FollowerID string    `gorm:"primaryKey;column:follower_id;size:36" json:"follower_id"`
	FolloweeID string    `gorm:"primaryKey;column:followee_id;size:36;index" json:"followee_id"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

type FollowRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

func (r *FollowRepository) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	if err != nil {
		return false, common.Persistence("find follow", err)
	}
	return count > 0, nil
}

func (r *FollowRepository) CreateFollowLink(ctx context.Context, followerID, followeeID string) error {
	link := &Follow{FollowerID: followerID, FolloweeID: followeeID}
	if err := conn(ctx, r.db).Create(link).Error; err != nil {
		return common.Persistence("create follow", err)
	}
	return nil
}
