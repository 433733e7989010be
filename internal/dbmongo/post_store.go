package dbmongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"zentra/internal/common"
)

// PostDocument mirrors the posts collection written by the content service.
type PostDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	AuthorID  string             `bson:"authorId"`
	Content   string             `bson:"content"`
	Likes     int                `bson:"likes"`
	CreatedAt time.Time          `bson:"createdAt"`
}

type PostStore struct {
	client *MongoClient
}

func NewPostStore(client *MongoClient) *PostStore {
	return &PostStore{client: client}
}

func (ps *PostStore) InsertPost(ctx context.Context, doc *PostDocument) (string, error) {
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	if _, err := ps.client.Posts.InsertOne(ctx, doc); err != nil {
		return "", common.Persistence("insert post", err)
	}
	return doc.ID.Hex(), nil
}

// ListPostIDs returns the hex id of every post.
func (ps *PostStore) ListPostIDs(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := ps.client.Posts.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, common.Persistence("list post ids", err)
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, common.Persistence("decode post id", err)
		}
		ids = append(ids, doc.ID.Hex())
	}
	if err := cursor.Err(); err != nil {
		return nil, common.Persistence("list post ids", err)
	}
	return ids, nil
}

// PostsByIDs loads posts in no particular order; malformed or missing ids are skipped.
func (ps *PostStore) PostsByIDs(ctx context.Context, ids []string) ([]PostDocument, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return nil, nil
	}

	cursor, err := ps.client.Posts.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, common.Persistence("load posts", err)
	}
	defer cursor.Close(ctx)

	var docs []PostDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, common.Persistence("decode posts", err)
	}
	return docs, nil
}
