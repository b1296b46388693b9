package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bzhu9/BasicChat/internal/domain"
)

// UserRepository stores one document per account, keyed by safe email, with
// the denormalized conversation and group-chat indexes embedded. Index
// updates rewrite the full array; there is no concurrency control.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(coll *mongo.Collection) *UserRepository {
	return &UserRepository{coll: coll}
}

func (r *UserRepository) UserExists(ctx context.Context, safeEmail string) (bool, error) {
	err := r.coll.FindOne(ctx, bson.M{"_id": safeEmail}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *UserRepository) InsertUser(ctx context.Context, u *domain.User) error {
	if u.Conversations == nil {
		u.Conversations = []domain.ConversationEntry{}
	}
	if u.GroupChats == nil {
		u.GroupChats = []domain.GroupChatEntry{}
	}
	_, err := r.coll.InsertOne(ctx, u)
	return err
}

func (r *UserRepository) GetUser(ctx context.Context, safeEmail string) (*domain.User, error) {
	var u domain.User
	if err := r.coll.FindOne(ctx, bson.M{"_id": safeEmail}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetConversations(ctx context.Context, safeEmail string) ([]domain.ConversationEntry, error) {
	u, err := r.GetUser(ctx, safeEmail)
	if err != nil {
		return nil, err
	}
	if u.Conversations == nil {
		return []domain.ConversationEntry{}, nil
	}
	return u.Conversations, nil
}

func (r *UserRepository) ReplaceConversations(ctx context.Context, safeEmail string, entries []domain.ConversationEntry) error {
	opts := options.Update().SetUpsert(true)
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": safeEmail},
		bson.M{"$set": bson.M{"conversations": entries}}, opts)
	return err
}

func (r *UserRepository) GetGroupChats(ctx context.Context, safeEmail string) ([]domain.GroupChatEntry, error) {
	u, err := r.GetUser(ctx, safeEmail)
	if err != nil {
		return nil, err
	}
	if u.GroupChats == nil {
		return []domain.GroupChatEntry{}, nil
	}
	return u.GroupChats, nil
}

func (r *UserRepository) ReplaceGroupChats(ctx context.Context, safeEmail string, entries []domain.GroupChatEntry) error {
	opts := options.Update().SetUpsert(true)
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": safeEmail},
		bson.M{"$set": bson.M{"group_chats": entries}}, opts)
	return err
}

// RemoveConversation deletes the caller's own index entry. The shared
// conversation record is left in place.
func (r *UserRepository) RemoveConversation(ctx context.Context, safeEmail, conversationID string) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": safeEmail},
		bson.M{"$pull": bson.M{"conversations": bson.M{"id": conversationID}}})
	return err
}
