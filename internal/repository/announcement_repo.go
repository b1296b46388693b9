package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bzhu9/BasicChat/internal/domain"
)

type announcementDoc struct {
	Organization string                `bson:"_id"`
	Items        []domain.Announcement `bson:"items"`
}

// AnnouncementRepository stores one document per organization holding that
// organization's full announcement list.
type AnnouncementRepository struct {
	coll *mongo.Collection
}

func NewAnnouncementRepository(coll *mongo.Collection) *AnnouncementRepository {
	return &AnnouncementRepository{coll: coll}
}

func (r *AnnouncementRepository) GetAnnouncements(ctx context.Context, organization string) ([]domain.Announcement, error) {
	var doc announcementDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": organization}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return []domain.Announcement{}, nil
		}
		return nil, err
	}
	if doc.Items == nil {
		return []domain.Announcement{}, nil
	}
	return doc.Items, nil
}

func (r *AnnouncementRepository) ReplaceAnnouncements(ctx context.Context, organization string, items []domain.Announcement) error {
	opts := options.Update().SetUpsert(true)
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": organization},
		bson.M{"$set": bson.M{"items": items}}, opts)
	return err
}
