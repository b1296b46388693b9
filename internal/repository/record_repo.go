package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bzhu9/BasicChat/internal/domain"
)

type record struct {
	ID       string           `bson:"_id"`
	Members  []string         `bson:"members,omitempty"`
	Messages []domain.Message `bson:"messages"`
}

// RecordRepository stores the shared per-conversation records holding the
// append-only message lists. One instance serves the one-to-one records, a
// second one the group-chat records.
type RecordRepository struct {
	coll *mongo.Collection
}

func NewRecordRepository(coll *mongo.Collection) *RecordRepository {
	return &RecordRepository{coll: coll}
}

func (r *RecordRepository) CreateRecord(ctx context.Context, id string, members []string, messages []domain.Message) error {
	if messages == nil {
		messages = []domain.Message{}
	}
	_, err := r.coll.InsertOne(ctx, record{ID: id, Members: members, Messages: messages})
	return err
}

func (r *RecordRepository) Exists(ctx context.Context, id string) (bool, error) {
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *RecordRepository) GetMessages(ctx context.Context, id string) ([]domain.Message, error) {
	var rec record
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if rec.Messages == nil {
		return []domain.Message{}, nil
	}
	return rec.Messages, nil
}

// ReplaceMessages rewrites the full message list. Appending is a
// read-modify-write of the entire array, matching the store's update model.
func (r *RecordRepository) ReplaceMessages(ctx context.Context, id string, messages []domain.Message) error {
	res, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M{"messages": messages}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RecordRepository) GetMembers(ctx context.Context, id string) ([]string, error) {
	var rec record
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec.Members, nil
}
