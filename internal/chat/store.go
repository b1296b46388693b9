package chat

import (
	"context"

	"github.com/bzhu9/BasicChat/internal/domain"
)

// UserStore is the per-user side of the conversation store: account records
// and the denormalized conversation/group-chat indexes embedded in them.
type UserStore interface {
	UserExists(ctx context.Context, safeEmail string) (bool, error)
	InsertUser(ctx context.Context, u *domain.User) error
	GetUser(ctx context.Context, safeEmail string) (*domain.User, error)
	GetConversations(ctx context.Context, safeEmail string) ([]domain.ConversationEntry, error)
	ReplaceConversations(ctx context.Context, safeEmail string, entries []domain.ConversationEntry) error
	GetGroupChats(ctx context.Context, safeEmail string) ([]domain.GroupChatEntry, error)
	ReplaceGroupChats(ctx context.Context, safeEmail string, entries []domain.GroupChatEntry) error
	RemoveConversation(ctx context.Context, safeEmail, conversationID string) error
}

// RecordStore is the shared side: the records holding each conversation's
// message list and, for group chats, the member list.
type RecordStore interface {
	CreateRecord(ctx context.Context, id string, members []string, messages []domain.Message) error
	Exists(ctx context.Context, id string) (bool, error)
	GetMessages(ctx context.Context, id string) ([]domain.Message, error)
	ReplaceMessages(ctx context.Context, id string, messages []domain.Message) error
	GetMembers(ctx context.Context, id string) ([]string, error)
}
