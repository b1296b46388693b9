package identity

import "strings"

// SafeEmail converts an email address into a key that is safe to use as a
// database path segment. "." and "@" are replaced with "-".
func SafeEmail(email string) string {
	s := strings.ReplaceAll(email, ".", "-")
	return strings.ReplaceAll(s, "@", "-")
}

// Session identifies the authenticated user for a request. It is passed
// explicitly to every operation that acts on behalf of a user.
type Session struct {
	Email     string
	FirstName string
	LastName  string
}

func (s Session) SafeEmail() string { return SafeEmail(s.Email) }

func (s Session) DisplayName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// ProfilePictureFileName is the object name under which the user's profile
// picture is stored.
func (s Session) ProfilePictureFileName() string {
	return s.SafeEmail() + "_profile_picture.png"
}
