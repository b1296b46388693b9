package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeEmail(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"alice@example.com", "alice-example-com"},
		{"bob.smith@school.edu", "bob-smith-school-edu"},
		{"already-safe", "already-safe"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SafeEmail(tt.email))
	}
}

func TestSession(t *testing.T) {
	s := Session{Email: "alice@example.com", FirstName: "Alice", LastName: "Liddell"}
	assert.Equal(t, "alice-example-com", s.SafeEmail())
	assert.Equal(t, "Alice Liddell", s.DisplayName())
	assert.Equal(t, "alice-example-com_profile_picture.png", s.ProfilePictureFileName())
}
