package chat

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/bzhu9/BasicChat/internal/domain"
	"github.com/bzhu9/BasicChat/internal/repository"
)

// fakeUserStore mimics the users collection: one document per safe email,
// replaced wholesale on index writes, upserting like the Mongo repo does.
type fakeUserStore struct {
	users map[string]*domain.User

	replaceConvErr  error
	replaceGroupErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*domain.User{}}
}

func (f *fakeUserStore) addUser(safeEmail, first, last string) {
	f.users[safeEmail] = &domain.User{
		SafeEmail:     safeEmail,
		FirstName:     first,
		LastName:      last,
		Conversations: []domain.ConversationEntry{},
		GroupChats:    []domain.GroupChatEntry{},
	}
}

func (f *fakeUserStore) UserExists(_ context.Context, safeEmail string) (bool, error) {
	_, ok := f.users[safeEmail]
	return ok, nil
}

func (f *fakeUserStore) InsertUser(_ context.Context, u *domain.User) error {
	cp := *u
	f.users[u.SafeEmail] = &cp
	return nil
}

func (f *fakeUserStore) GetUser(_ context.Context, safeEmail string) (*domain.User, error) {
	u, ok := f.users[safeEmail]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) GetConversations(ctx context.Context, safeEmail string) ([]domain.ConversationEntry, error) {
	u, err := f.GetUser(ctx, safeEmail)
	if err != nil {
		return nil, err
	}
	return append([]domain.ConversationEntry{}, u.Conversations...), nil
}

func (f *fakeUserStore) ReplaceConversations(_ context.Context, safeEmail string, entries []domain.ConversationEntry) error {
	if f.replaceConvErr != nil {
		return f.replaceConvErr
	}
	u, ok := f.users[safeEmail]
	if !ok {
		u = &domain.User{SafeEmail: safeEmail}
		f.users[safeEmail] = u
	}
	u.Conversations = append([]domain.ConversationEntry{}, entries...)
	return nil
}

func (f *fakeUserStore) GetGroupChats(ctx context.Context, safeEmail string) ([]domain.GroupChatEntry, error) {
	u, err := f.GetUser(ctx, safeEmail)
	if err != nil {
		return nil, err
	}
	return append([]domain.GroupChatEntry{}, u.GroupChats...), nil
}

func (f *fakeUserStore) ReplaceGroupChats(_ context.Context, safeEmail string, entries []domain.GroupChatEntry) error {
	if f.replaceGroupErr != nil {
		return f.replaceGroupErr
	}
	u, ok := f.users[safeEmail]
	if !ok {
		u = &domain.User{SafeEmail: safeEmail}
		f.users[safeEmail] = u
	}
	u.GroupChats = append([]domain.GroupChatEntry{}, entries...)
	return nil
}

func (f *fakeUserStore) RemoveConversation(_ context.Context, safeEmail, conversationID string) error {
	u, ok := f.users[safeEmail]
	if !ok {
		return nil
	}
	kept := u.Conversations[:0]
	for _, e := range u.Conversations {
		if e.ID != conversationID {
			kept = append(kept, e)
		}
	}
	u.Conversations = kept
	return nil
}

type fakeRecord struct {
	members  []string
	messages []domain.Message
}

type fakeRecordStore struct {
	records map[string]*fakeRecord

	replaceErr error
}

func newFakeRecordStore() *fakeRecordStore {
	return &fakeRecordStore{records: map[string]*fakeRecord{}}
}

func (f *fakeRecordStore) CreateRecord(_ context.Context, id string, members []string, messages []domain.Message) error {
	f.records[id] = &fakeRecord{
		members:  append([]string{}, members...),
		messages: append([]domain.Message{}, messages...),
	}
	return nil
}

func (f *fakeRecordStore) Exists(_ context.Context, id string) (bool, error) {
	_, ok := f.records[id]
	return ok, nil
}

func (f *fakeRecordStore) GetMessages(_ context.Context, id string) ([]domain.Message, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return append([]domain.Message{}, rec.messages...), nil
}

func (f *fakeRecordStore) ReplaceMessages(_ context.Context, id string, messages []domain.Message) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	rec, ok := f.records[id]
	if !ok {
		return repository.ErrNotFound
	}
	rec.messages = append([]domain.Message{}, messages...)
	return nil
}

func (f *fakeRecordStore) GetMembers(_ context.Context, id string) ([]string, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return append([]string{}, rec.members...), nil
}

// newTestService wires a service over the fakes with a ticking clock so every
// message gets a distinct date string.
func newTestService(users *fakeUserStore, convs, groups *fakeRecordStore) *Service {
	s := NewService(users, convs, groups, nil, zap.NewNop().Sugar())
	base := time.Date(2020, time.August, 30, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		base = base.Add(time.Second)
		return base
	}
	return s
}
