package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bzhu9/BasicChat/internal/domain"
	"github.com/bzhu9/BasicChat/internal/events"
	"github.com/bzhu9/BasicChat/internal/identity"
	"github.com/bzhu9/BasicChat/internal/repository"
)

// ErrNotFound is returned when a record or index entry does not exist.
var ErrNotFound = repository.ErrNotFound

// Service implements the conversation/message synchronization rules: sends
// append to the shared message list and then overwrite the latest-message
// summary in every participant's index. The writes are sequential and
// best-effort; a failure part way through leaves earlier writes in place, and
// concurrent sends to the same index can lose updates.
type Service struct {
	users  UserStore
	convs  RecordStore
	groups RecordStore
	pub    *events.Publisher
	log    *zap.SugaredLogger

	now func() time.Time
}

func NewService(users UserStore, convs, groups RecordStore, pub *events.Publisher, log *zap.SugaredLogger) *Service {
	return &Service{
		users:  users,
		convs:  convs,
		groups: groups,
		pub:    pub,
		log:    log,
		now:    time.Now,
	}
}

func messageID(otherEmail, selfEmail, date string) string {
	return fmt.Sprintf("%s_%s_%s",
		identity.SafeEmail(otherEmail), identity.SafeEmail(selfEmail), date)
}

func (s *Service) newMessage(session identity.Session, otherEmail string, content domain.Content) domain.Message {
	date := domain.FormatDate(s.now())
	return domain.Message{
		ID:          messageID(otherEmail, session.Email, date),
		Kind:        content.Kind(),
		Content:     content.Encode(),
		Date:        date,
		SenderEmail: session.Email,
		SenderName:  session.DisplayName(),
	}
}

// CreateConversation starts a new one-to-one conversation with a first
// message. It creates the shared record and an index entry for both sides,
// then returns the new conversation id.
func (s *Service) CreateConversation(ctx context.Context, session identity.Session, otherEmail, otherName string, content domain.Content) (string, domain.Message, error) {
	msg := s.newMessage(session, otherEmail, content)
	conversationID := "conversation_" + msg.ID

	if err := s.convs.CreateRecord(ctx, conversationID, nil, []domain.Message{msg}); err != nil {
		return "", domain.Message{}, fmt.Errorf("create conversation record: %w", err)
	}

	summary := msg.Summary()
	if err := s.upsertConversationEntry(ctx, session.SafeEmail(), conversationID, otherEmail, otherName, summary); err != nil {
		return "", domain.Message{}, err
	}
	if err := s.upsertConversationEntry(ctx, identity.SafeEmail(otherEmail), conversationID, session.Email, session.DisplayName(), summary); err != nil {
		return "", domain.Message{}, err
	}

	s.pub.ConversationCreated(ctx, conversationID, msg)
	return conversationID, msg, nil
}

// SendMessage appends a message to an existing one-to-one conversation and
// refreshes both participants' latest-message summaries. A missing message
// list fails the send.
func (s *Service) SendMessage(ctx context.Context, session identity.Session, conversationID, otherEmail, otherName string, content domain.Content) (domain.Message, error) {
	messages, err := s.convs.GetMessages(ctx, conversationID)
	if err != nil {
		return domain.Message{}, fmt.Errorf("fetch messages for %s: %w", conversationID, err)
	}

	msg := s.newMessage(session, otherEmail, content)
	messages = append(messages, msg)
	if err := s.convs.ReplaceMessages(ctx, conversationID, messages); err != nil {
		return domain.Message{}, fmt.Errorf("write messages for %s: %w", conversationID, err)
	}

	summary := msg.Summary()
	if err := s.upsertConversationEntry(ctx, session.SafeEmail(), conversationID, otherEmail, otherName, summary); err != nil {
		return domain.Message{}, err
	}
	if err := s.upsertConversationEntry(ctx, identity.SafeEmail(otherEmail), conversationID, session.Email, session.DisplayName(), summary); err != nil {
		return domain.Message{}, err
	}

	s.pub.MessageCreated(ctx, conversationID, msg)
	return msg, nil
}

// upsertConversationEntry rewrites one user's full conversation index with
// the entry's summary replaced, appending a fresh entry when none matches.
func (s *Service) upsertConversationEntry(ctx context.Context, safeEmail, conversationID, otherEmail, name string, summary domain.LatestMessage) error {
	entries, err := s.users.GetConversations(ctx, safeEmail)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("fetch conversations for %s: %w", safeEmail, err)
		}
		entries = []domain.ConversationEntry{}
	}

	found := false
	for i := range entries {
		if entries[i].ID == conversationID {
			entries[i].LatestMessage = summary
			found = true
			break
		}
	}
	if !found {
		entries = append(entries, domain.ConversationEntry{
			ID:             conversationID,
			OtherUserEmail: identity.SafeEmail(otherEmail),
			Name:           name,
			LatestMessage:  summary,
		})
	}

	if err := s.users.ReplaceConversations(ctx, safeEmail, entries); err != nil {
		return fmt.Errorf("write conversations for %s: %w", safeEmail, err)
	}
	return nil
}

// ConversationExists reports the id of an existing one-to-one conversation
// between the target and the current user. The first matching entry wins.
func (s *Service) ConversationExists(ctx context.Context, targetEmail, selfEmail string) (string, error) {
	entries, err := s.users.GetConversations(ctx, identity.SafeEmail(targetEmail))
	if err != nil {
		return "", err
	}
	selfSafe := identity.SafeEmail(selfEmail)
	for _, e := range entries {
		if e.OtherUserEmail == selfSafe {
			return e.ID, nil
		}
	}
	return "", ErrNotFound
}

// ListMessages returns the full message list of a one-to-one conversation.
func (s *Service) ListMessages(ctx context.Context, conversationID string) ([]domain.Message, error) {
	return s.convs.GetMessages(ctx, conversationID)
}

// MarkConversationRead flips the read flag on the caller's own latest-message
// summary. Other participants' copies are untouched.
func (s *Service) MarkConversationRead(ctx context.Context, session identity.Session, conversationID string) error {
	entries, err := s.users.GetConversations(ctx, session.SafeEmail())
	if err != nil {
		return err
	}
	for i := range entries {
		if entries[i].ID == conversationID {
			entries[i].LatestMessage.IsRead = true
			return s.users.ReplaceConversations(ctx, session.SafeEmail(), entries)
		}
	}
	return ErrNotFound
}

// DeleteConversation removes the caller's index entry only. The shared
// message record stays, so the other participant keeps their history.
func (s *Service) DeleteConversation(ctx context.Context, session identity.Session, conversationID string) error {
	return s.users.RemoveConversation(ctx, session.SafeEmail(), conversationID)
}
