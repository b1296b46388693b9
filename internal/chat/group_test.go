package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bzhu9/BasicChat/internal/domain"
	"github.com/bzhu9/BasicChat/internal/identity"
)

var carol = identity.Session{Email: "carol@example.com", FirstName: "Carol", LastName: "Reyes"}

func groupFixture(t *testing.T) (*Service, *fakeUserStore, *fakeRecordStore, domain.Message) {
	t.Helper()
	users := newFakeUserStore()
	for _, u := range []identity.Session{alice, bob, carol} {
		users.addUser(u.SafeEmail(), u.FirstName, u.LastName)
	}
	groups := newFakeRecordStore()
	svc := newTestService(users, newFakeRecordStore(), groups)

	msg, err := svc.CreateGroupChat(context.Background(), alice, "chess club",
		[]domain.UserRef{
			{Name: "Bob Stone", Email: bob.Email},
			{Name: "Carol Reyes", Email: carol.Email},
		}, domain.Text("welcome"))
	require.NoError(t, err)
	return svc, users, groups, msg
}

func TestCreateGroupChat(t *testing.T) {
	_, users, groups, msg := groupFixture(t)
	ctx := context.Background()

	members, err := groups.GetMembers(ctx, "chess club")
	require.NoError(t, err)
	assert.Len(t, members, 3)

	messages, err := groups.GetMessages(ctx, "chess club")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "welcome", messages[0].Content)

	// exactly one entry per member, each omitting itself
	for _, u := range []identity.Session{alice, bob, carol} {
		entries, err := users.GetGroupChats(ctx, u.SafeEmail())
		require.NoError(t, err)
		require.Len(t, entries, 1, "entry for %s", u.Email)
		assert.Equal(t, "chess club", entries[0].ID)
		assert.Len(t, entries[0].OtherUsers, 2)
		for _, o := range entries[0].OtherUsers {
			assert.NotEqual(t, u.Email, o.Email)
		}
		assert.Equal(t, msg.Summary(), entries[0].LatestMessage)
	}
}

func TestGroupChatExists(t *testing.T) {
	svc, _, _, _ := groupFixture(t)
	ctx := context.Background()

	ok, err := svc.GroupChatExists(ctx, "chess club")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.GroupChatExists(ctx, "debate team")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSendGroupMessageRefreshesEveryMember(t *testing.T) {
	svc, users, groups, _ := groupFixture(t)
	ctx := context.Background()

	msg, err := svc.SendGroupMessage(ctx, bob, "chess club", domain.Text("next meeting friday"))
	require.NoError(t, err)

	messages, err := groups.GetMessages(ctx, "chess club")
	require.NoError(t, err)
	assert.Len(t, messages, 2)

	for _, u := range []identity.Session{alice, bob, carol} {
		entries, err := users.GetGroupChats(ctx, u.SafeEmail())
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, msg.Summary(), entries[0].LatestMessage)
	}
}

func TestSendGroupMessageMissingGroup(t *testing.T) {
	svc, _, _, _ := groupFixture(t)

	_, err := svc.SendGroupMessage(context.Background(), bob, "debate team", domain.Text("x"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSendGroupMessageFabricatesMissingEntry(t *testing.T) {
	svc, users, _, _ := groupFixture(t)
	ctx := context.Background()

	// carol lost her entry; the next send rebuilds a bare one
	require.NoError(t, users.ReplaceGroupChats(ctx, carol.SafeEmail(), []domain.GroupChatEntry{}))

	msg, err := svc.SendGroupMessage(ctx, alice, "chess club", domain.Text("hello again"))
	require.NoError(t, err)

	entries, err := users.GetGroupChats(ctx, carol.SafeEmail())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "chess club", entries[0].ID)
	assert.Len(t, entries[0].OtherUsers, 2)
	assert.Equal(t, msg.Summary(), entries[0].LatestMessage)
}

func TestMarkGroupChatRead(t *testing.T) {
	svc, users, _, _ := groupFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.MarkGroupChatRead(ctx, carol, "chess club"))

	entries, err := users.GetGroupChats(ctx, carol.SafeEmail())
	require.NoError(t, err)
	assert.True(t, entries[0].LatestMessage.IsRead)

	assert.ErrorIs(t, svc.MarkGroupChatRead(ctx, carol, "debate team"), ErrNotFound)
}
