package feed

import (
	"context"

	"github.com/ecodeclub/ekit/slice"

	"zentra/internal/dbmongo"
	"zentra/internal/dbmysql"
)

type sqlPosts interface {
	ListPostIDs(ctx context.Context) ([]string, error)
	PostsByIDs(ctx context.Context, ids []string) ([]dbmysql.Post, error)
}

// SQLSource reads the feed from the relational posts table.
type SQLSource struct {
	posts sqlPosts
}

func NewSQLSource(posts sqlPosts) *SQLSource {
	return &SQLSource{posts: posts}
}

func (s *SQLSource) ListIDs(ctx context.Context) ([]string, error) {
	return s.posts.ListPostIDs(ctx)
}

func (s *SQLSource) ByIDs(ctx context.Context, ids []string) ([]Item, error) {
	posts, err := s.posts.PostsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return slice.Map(posts, func(_ int, p dbmysql.Post) Item {
		return Item{ID: p.ID, AuthorID: p.AuthorID, Content: p.Content, Likes: p.Likes, CreatedAt: p.CreatedAt}
	}), nil
}

type mongoPosts interface {
	ListPostIDs(ctx context.Context) ([]string, error)
	PostsByIDs(ctx context.Context, ids []string) ([]dbmongo.PostDocument, error)
}

// MongoSource reads the feed from the posts collection.
type MongoSource struct {
	posts mongoPosts
}

func NewMongoSource(posts mongoPosts) *MongoSource {
	return &MongoSource{posts: posts}
}

func (s *MongoSource) ListIDs(ctx context.Context) ([]string, error) {
	return s.posts.ListPostIDs(ctx)
}

func (s *MongoSource) ByIDs(ctx context.Context, ids []string) ([]Item, error) {
	docs, err := s.posts.PostsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return slice.Map(docs, func(_ int, d dbmongo.PostDocument) Item {
		return Item{ID: d.ID.Hex(), AuthorID: d.AuthorID, Content: d.Content, Likes: d.Likes, CreatedAt: d.CreatedAt}
	}), nil
}
