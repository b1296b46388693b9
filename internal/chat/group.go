package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/bzhu9/BasicChat/internal/domain"
	"github.com/bzhu9/BasicChat/internal/identity"
)

// CreateGroupChat creates the shared group record under the chosen name and
// one index entry per member, each omitting that member from its own
// other-users list. Name collisions are not checked here; callers that care
// run GroupChatExists first.
func (s *Service) CreateGroupChat(ctx context.Context, session identity.Session, name string, others []domain.UserRef, content domain.Content) (domain.Message, error) {
	msg := s.newMessage(session, name, content)

	members := make([]string, 0, len(others)+1)
	members = append(members, session.Email)
	for _, o := range others {
		members = append(members, o.Email)
	}

	if err := s.groups.CreateRecord(ctx, name, members, []domain.Message{msg}); err != nil {
		return domain.Message{}, fmt.Errorf("create group chat record: %w", err)
	}

	all := make([]domain.UserRef, 0, len(others)+1)
	all = append(all, domain.UserRef{Name: session.DisplayName(), Email: session.Email})
	all = append(all, others...)

	summary := msg.Summary()
	for _, member := range all {
		entry := domain.GroupChatEntry{
			ID:            name,
			OtherUsers:    withoutMember(all, member.Email),
			LatestMessage: summary,
		}
		if err := s.putGroupChatEntry(ctx, identity.SafeEmail(member.Email), entry); err != nil {
			return domain.Message{}, err
		}
	}

	s.pub.GroupChatCreated(ctx, name, msg)
	return msg, nil
}

func withoutMember(all []domain.UserRef, email string) []domain.UserRef {
	out := make([]domain.UserRef, 0, len(all)-1)
	for _, u := range all {
		if u.Email != email {
			out = append(out, u)
		}
	}
	return out
}

// SendGroupMessage appends to the group's message list and refreshes the
// latest-message summary in every member's index, the sender included. Each
// member's index is fetched and rewritten independently.
func (s *Service) SendGroupMessage(ctx context.Context, session identity.Session, groupID string, content domain.Content) (domain.Message, error) {
	messages, err := s.groups.GetMessages(ctx, groupID)
	if err != nil {
		return domain.Message{}, fmt.Errorf("fetch messages for %s: %w", groupID, err)
	}

	msg := s.newMessage(session, groupID, content)
	messages = append(messages, msg)
	if err := s.groups.ReplaceMessages(ctx, groupID, messages); err != nil {
		return domain.Message{}, fmt.Errorf("write messages for %s: %w", groupID, err)
	}

	members, err := s.groups.GetMembers(ctx, groupID)
	if err != nil {
		return domain.Message{}, fmt.Errorf("fetch members for %s: %w", groupID, err)
	}

	summary := msg.Summary()
	for _, member := range members {
		if err := s.refreshGroupChatEntry(ctx, identity.SafeEmail(member), groupID, members, member, summary); err != nil {
			return domain.Message{}, err
		}
	}

	s.pub.MessageCreated(ctx, groupID, msg)
	return msg, nil
}

// putGroupChatEntry replaces a member's entry for the group, appending it
// when absent.
func (s *Service) putGroupChatEntry(ctx context.Context, safeEmail string, entry domain.GroupChatEntry) error {
	entries, err := s.users.GetGroupChats(ctx, safeEmail)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("fetch group chats for %s: %w", safeEmail, err)
		}
		entries = []domain.GroupChatEntry{}
	}

	found := false
	for i := range entries {
		if entries[i].ID == entry.ID {
			entries[i] = entry
			found = true
			break
		}
	}
	if !found {
		entries = append(entries, entry)
	}

	if err := s.users.ReplaceGroupChats(ctx, safeEmail, entries); err != nil {
		return fmt.Errorf("write group chats for %s: %w", safeEmail, err)
	}
	return nil
}

// refreshGroupChatEntry overwrites a member's latest-message summary,
// fabricating a bare entry from the member emails when none exists.
func (s *Service) refreshGroupChatEntry(ctx context.Context, safeEmail, groupID string, members []string, self string, summary domain.LatestMessage) error {
	entries, err := s.users.GetGroupChats(ctx, safeEmail)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("fetch group chats for %s: %w", safeEmail, err)
		}
		entries = []domain.GroupChatEntry{}
	}

	for i := range entries {
		if entries[i].ID == groupID {
			entries[i].LatestMessage = summary
			if err := s.users.ReplaceGroupChats(ctx, safeEmail, entries); err != nil {
				return fmt.Errorf("write group chats for %s: %w", safeEmail, err)
			}
			return nil
		}
	}

	others := make([]domain.UserRef, 0, len(members)-1)
	for _, m := range members {
		if m != self {
			others = append(others, domain.UserRef{Email: m})
		}
	}
	entries = append(entries, domain.GroupChatEntry{
		ID:            groupID,
		OtherUsers:    others,
		LatestMessage: summary,
	})
	if err := s.users.ReplaceGroupChats(ctx, safeEmail, entries); err != nil {
		return fmt.Errorf("write group chats for %s: %w", safeEmail, err)
	}
	return nil
}

// GroupChatExists reports whether a group record already uses the name.
func (s *Service) GroupChatExists(ctx context.Context, name string) (bool, error) {
	return s.groups.Exists(ctx, name)
}

// ListGroupMessages returns the full message list of a group chat.
func (s *Service) ListGroupMessages(ctx context.Context, groupID string) ([]domain.Message, error) {
	return s.groups.GetMessages(ctx, groupID)
}

// MarkGroupChatRead flips the read flag on the caller's own group summary.
func (s *Service) MarkGroupChatRead(ctx context.Context, session identity.Session, groupID string) error {
	entries, err := s.users.GetGroupChats(ctx, session.SafeEmail())
	if err != nil {
		return err
	}
	for i := range entries {
		if entries[i].ID == groupID {
			entries[i].LatestMessage.IsRead = true
			return s.users.ReplaceGroupChats(ctx, session.SafeEmail(), entries)
		}
	}
	return ErrNotFound
}
