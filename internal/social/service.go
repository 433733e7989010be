// Package social couples each interaction's domain write with its
// notification in one transaction.
package social

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"zentra/internal/common"
	"zentra/internal/dbmysql"
	"zentra/internal/notif"
)

type Notifier interface {
	Notify(ctx context.Context, in notif.NotifyInput, mutations ...notif.Mutation) (*notif.EnrichedEvent, error)
}

type PostStore interface {
	GetPostByID(ctx context.Context, id string) (*dbmysql.Post, error)
	HasLiked(ctx context.Context, postID, userID string) (bool, error)
	CreateLike(ctx context.Context, like *dbmysql.Like) error
	IncrementLikes(ctx context.Context, id string) error
	CreateComment(ctx context.Context, comment *dbmysql.Comment) error
	GetComment(ctx context.Context, id string) (*dbmysql.Comment, error)
}

type FollowStore interface {
	IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error)
	CreateFollowLink(ctx context.Context, followerID, followeeID string) error
}

type UserFinder interface {
	FindUserByID(ctx context.Context, id string) (*dbmysql.User, error)
}

type SocialService struct {
	notifier Notifier
	posts    PostStore
	follows  FollowStore
	users    UserFinder
	logger   *zap.Logger
}

func NewSocialService(notifier Notifier, posts PostStore, follows FollowStore, users UserFinder, logger *zap.Logger) *SocialService {
	return &SocialService{
		notifier: notifier,
		posts:    posts,
		follows:  follows,
		users:    users,
		logger:   logger,
	}
}

// Like records the like, bumps the counter and notifies the post author.
func (s *SocialService) Like(ctx context.Context, userID, postID string) (*notif.EnrichedEvent, error) {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	in := notif.NotifyInput{
		Kind:        common.KindLike,
		SenderID:    userID,
		RecipientID: post.AuthorID,
		SubjectID:   post.ID,
	}
	return s.notifier.Notify(ctx, in, func(ctx context.Context) error {
		liked, err := s.posts.HasLiked(ctx, post.ID, userID)
		if err != nil {
			return err
		}
		if liked {
			return common.AlreadyExists("You already liked this post")
		}
		if err := s.posts.CreateLike(ctx, &dbmysql.Like{PostID: post.ID, UserID: userID}); err != nil {
			return err
		}
		return s.posts.IncrementLikes(ctx, post.ID)
	})
}

type CommentInput struct {
	Content         string
	ParentCommentID string
}

type CommentResult struct {
	Comment      *dbmysql.Comment
	Notification *notif.EnrichedEvent
}

// Comment notifies the post author, or the parent comment's author for a reply.
func (s *SocialService) Comment(ctx context.Context, userID, postID string, in CommentInput) (*CommentResult, error) {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &dbmysql.Comment{
		ID:       uuid.NewString(),
		PostID:   post.ID,
		AuthorID: userID,
		Content:  in.Content,
	}
	notice := notif.NotifyInput{
		Kind:        common.KindComment,
		SenderID:    userID,
		RecipientID: post.AuthorID,
		SubjectID:   post.ID,
	}

	if in.ParentCommentID != "" {
		parent, err := s.posts.GetComment(ctx, in.ParentCommentID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != post.ID {
			return nil, common.BadRequest("parent comment belongs to another post")
		}
		comment.ParentCommentID = &parent.ID
		notice.Kind = common.KindReply
		notice.RecipientID = parent.AuthorID
	}

	event, err := s.notifier.Notify(ctx, notice, func(ctx context.Context) error {
		return s.posts.CreateComment(ctx, comment)
	})
	if err != nil {
		return nil, err
	}
	return &CommentResult{Comment: comment, Notification: event}, nil
}

// Follow creates the follow link and notifies the followed user.
func (s *SocialService) Follow(ctx context.Context, followerID, targetID string) (*notif.EnrichedEvent, error) {
	if followerID == targetID {
		return nil, common.BadRequest("cannot follow yourself")
	}
	if _, err := s.users.FindUserByID(ctx, targetID); err != nil {
		return nil, err
	}

	in := notif.NotifyInput{
		Kind:        common.KindFollow,
		SenderID:    followerID,
		RecipientID: targetID,
	}
	return s.notifier.Notify(ctx, in, func(ctx context.Context) error {
		following, err := s.follows.IsFollowing(ctx, followerID, targetID)
		if err != nil {
			return err
		}
		if following {
			return common.AlreadyExists("You already follow this user")
		}
		return s.follows.CreateFollowLink(ctx, followerID, targetID)
	})
}
