package domain

// LatestMessage is the cached last-message metadata inside an index entry.
// It is overwritten in place on every send.
type LatestMessage struct {
	Date    string `bson:"date" json:"date"`
	Message string `bson:"message" json:"message"`
	IsRead  bool   `bson:"is_read" json:"is_read"`
	Kind    Kind   `bson:"type" json:"type"`
}

// UserRef names another participant of a group chat.
type UserRef struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
}

// ConversationEntry is one user's denormalized index entry for a one-to-one
// conversation. Every participant owns their own copy.
type ConversationEntry struct {
	ID             string        `bson:"id" json:"id"`
	OtherUserEmail string        `bson:"other_user_email" json:"other_user_email"`
	Name           string        `bson:"name" json:"name"`
	LatestMessage  LatestMessage `bson:"latest_message" json:"latest_message"`
}

// GroupChatEntry is one member's denormalized index entry for a group chat.
// OtherUsers excludes the owning member.
type GroupChatEntry struct {
	ID            string        `bson:"id" json:"id"`
	OtherUsers    []UserRef     `bson:"other_users" json:"other_users"`
	LatestMessage LatestMessage `bson:"latest_message" json:"latest_message"`
}

// Conversation is one item of the merged, time-ordered conversation list.
type Conversation struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	IsGroupChat    bool          `json:"is_group_chat"`
	OtherUserEmail string        `json:"other_user_email,omitempty"`
	OtherUsers     []UserRef     `json:"other_users,omitempty"`
	LatestMessage  LatestMessage `json:"latest_message"`
}

// User is the root record of one account, holding both denormalized indexes.
type User struct {
	SafeEmail     string              `bson:"_id" json:"safe_email"`
	FirstName     string              `bson:"first_name" json:"first_name"`
	LastName      string              `bson:"last_name" json:"last_name"`
	Conversations []ConversationEntry `bson:"conversations" json:"conversations"`
	GroupChats    []GroupChatEntry    `bson:"group_chats" json:"group_chats"`
}
