package dbmysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"zentra/internal/common"
)

type Post struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	AuthorID  string    `gorm:"column:author_id;not null;size:36;index" json:"author_id"`
	Content   string    `gorm:"column:content;type:text;not null" json:"content"`
	Likes     int       `gorm:"column:likes;not null;default:0" json:"likes"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

type Like struct {
	PostID    string    `gorm:"primaryKey;size:36" json:"post_id"`
	UserID    string    `gorm:"primaryKey;size:36" json:"user_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

type Comment struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	PostID          string    `gorm:"column:post_id;not null;size:36;index" json:"post_id"`
	AuthorID        string    `gorm:"column:author_id;not null;size:36" json:"author_id"`
	Content         string    `gorm:"column:content;type:text;not null" json:"content"`
	ParentCommentID *string   `gorm:"column:parent_comment_id;size:36" json:"parent_comment_id,omitempty"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) CreatePost(ctx context.Context, post *Post) error {
	if err := conn(ctx, r.db).Create(post).Error; err != nil {
		return common.Persistence("create post", err)
	}
	return nil
}

func (r *PostRepository) GetPostByID(ctx context.Context, id string) (*Post, error) {
	var post Post
	if err := conn(ctx, r.db).Where("id = ?", id).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFound(common.CodePostNotFound, "Post not found")
		}
		return nil, common.Persistence("find post", err)
	}
	return &post, nil
}

func (r *PostRepository) PostExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&Post{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, common.Persistence("find post", err)
	}
	return count > 0, nil
}

// ListPostIDs returns every post id. The feed permutes the full set.
func (r *PostRepository) ListPostIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := conn(ctx, r.db).Model(&Post{}).Pluck("id", &ids).Error; err != nil {
		return nil, common.Persistence("list post ids", err)
	}
	return ids, nil
}

// PostsByIDs loads posts in no particular order; missing ids are skipped.
func (r *PostRepository) PostsByIDs(ctx context.Context, ids []string) ([]Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var posts []Post
	if err := conn(ctx, r.db).Where("id IN ?", ids).Find(&posts).Error; err != nil {
		return nil, common.Persistence("load posts", err)
	}
	return posts, nil
}

func (r *PostRepository) IncrementLikes(ctx context.Context, id string) error {
	result := conn(ctx, r.db).Model(&Post{}).Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + ?", 1))
	if result.Error != nil {
		return common.Persistence("increment likes", result.Error)
	}
	if result.RowsAffected == 0 {
		return common.NotFound(common.CodePostNotFound, "Post not found")
	}
	return nil
}

func (r *PostRepository) HasLiked(ctx context.Context, postID, userID string) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&Like{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	if err != nil {
		return false, common.Persistence("find like", err)
	}
	return count > 0, nil
}

func (r *PostRepository) CreateLike(ctx context.Context, like *Like) error {
	if err := conn(ctx, r.db).Create(like).Error; err != nil {
		return common.Persistence("create like", err)
	}
	return nil
}

func (r *PostRepository) CreateComment(ctx context.Context, comment *Comment) error {
	if err := conn(ctx, r.db).Create(comment).Error; err != nil {
		return common.Persistence("create comment", err)
	}
	return nil
}

func (r *PostRepository) GetComment(ctx context.Context, id string) (*Comment, error) {
	var comment Comment
	if err := conn(ctx, r.db).Where("id = ?", id).First(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFound(common.CodeCommentNotFound, "Comment no longer exists")
		}
		return nil, common.Persistence("find comment", err)
	}
	return &comment, nil
}
