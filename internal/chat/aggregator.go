package chat

import (
	"context"
	"errors"
	"sort"

	"github.com/bzhu9/BasicChat/internal/domain"
	"github.com/bzhu9/BasicChat/internal/identity"
)

// ListConversations merges the caller's one-to-one and group-chat indexes
// into a single list ordered by latest-message date, newest first. The two
// indexes are fetched independently; there is no snapshot consistency
// between them. Entries with unparseable dates sort to the end, keeping
// their relative order.
func (s *Service) ListConversations(ctx context.Context, session identity.Session) ([]domain.Conversation, error) {
	safe := session.SafeEmail()

	entries, err := s.users.GetConversations(ctx, safe)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		entries = nil
	}
	groupEntries, err := s.users.GetGroupChats(ctx, safe)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		groupEntries = nil
	}

	merged := make([]domain.Conversation, 0, len(entries)+len(groupEntries))
	for _, e := range entries {
		merged = append(merged, domain.Conversation{
			ID:             e.ID,
			Name:           e.Name,
			OtherUserEmail: e.OtherUserEmail,
			LatestMessage:  e.LatestMessage,
		})
	}
	for _, g := range groupEntries {
		merged = append(merged, domain.Conversation{
			ID:            g.ID,
			Name:          g.ID,
			IsGroupChat:   true,
			OtherUsers:    g.OtherUsers,
			LatestMessage: g.LatestMessage,
		})
	}

	sort.SliceStable(merged, func(i, j int) bool {
		ti, erri := domain.ParseDate(merged[i].LatestMessage.Date)
		tj, errj := domain.ParseDate(merged[j].LatestMessage.Date)
		if erri != nil {
			return false
		}
		if errj != nil {
			return true
		}
		return ti.After(tj)
	})
	return merged, nil
}
