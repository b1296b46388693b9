package announce

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bzhu9/BasicChat/internal/domain"
	"github.com/bzhu9/BasicChat/internal/identity"
	"github.com/bzhu9/BasicChat/internal/repository"
)

var ErrNotFound = repository.ErrNotFound

// Store is the announcement side of the document database: one list per
// organization, rewritten in full on every change.
type Store interface {
	GetAnnouncements(ctx context.Context, organization string) ([]domain.Announcement, error)
	ReplaceAnnouncements(ctx context.Context, organization string, items []domain.Announcement) error
}

type Service struct {
	store Store
	log   *zap.SugaredLogger
	now   func() time.Time
}

func NewService(store Store, log *zap.SugaredLogger) *Service {
	return &Service{store: store, log: log, now: time.Now}
}

// CreateAnnouncement appends a post to the organization's feed and returns
// the generated announcement id ("{organization}_{dateString}").
func (s *Service) CreateAnnouncement(ctx context.Context, session identity.Session, organization, title, description string, photoURLs []string) (string, error) {
	items, err := s.store.GetAnnouncements(ctx, organization)
	if err != nil {
		return "", fmt.Errorf("fetch announcements for %s: %w", organization, err)
	}

	id := fmt.Sprintf("%s_%s", organization, domain.FormatDate(s.now()))
	if photoURLs == nil {
		photoURLs = []string{}
	}
	items = append(items, domain.Announcement{
		ID:          id,
		AuthorName:  session.DisplayName(),
		AuthorEmail: session.Email,
		Title:       title,
		Description: description,
		PhotoURLs:   photoURLs,
		Comments:    []domain.Comment{},
	})

	if err := s.store.ReplaceAnnouncements(ctx, organization, items); err != nil {
		return "", fmt.Errorf("write announcements for %s: %w", organization, err)
	}
	return id, nil
}

// ListAnnouncements returns the organization's full feed, oldest first.
func (s *Service) ListAnnouncements(ctx context.Context, organization string) ([]domain.Announcement, error) {
	return s.store.GetAnnouncements(ctx, organization)
}

// AddComment appends a comment to one announcement, rewriting the
// organization's list.
func (s *Service) AddComment(ctx context.Context, session identity.Session, organization, announcementID, text string) error {
	items, err := s.store.GetAnnouncements(ctx, organization)
	if err != nil {
		return fmt.Errorf("fetch announcements for %s: %w", organization, err)
	}

	for i := range items {
		if items[i].ID == announcementID {
			items[i].Comments = append(items[i].Comments, domain.Comment{
				SenderName:  session.DisplayName(),
				SenderEmail: session.Email,
				Text:        text,
			})
			if err := s.store.ReplaceAnnouncements(ctx, organization, items); err != nil {
				return fmt.Errorf("write announcements for %s: %w", organization, err)
			}
			return nil
		}
	}
	return ErrNotFound
}
