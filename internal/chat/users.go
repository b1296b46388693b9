package chat

import (
	"context"

	"github.com/bzhu9/BasicChat/internal/domain"
	"github.com/bzhu9/BasicChat/internal/identity"
)

// UserExists reports whether an account record exists for the email.
func (s *Service) UserExists(ctx context.Context, email string) (bool, error) {
	return s.users.UserExists(ctx, identity.SafeEmail(email))
}

// RegisterUser creates the account record for a newly authenticated user.
// Registration with the identity provider happens upstream; this only writes
// the database record the indexes hang off.
func (s *Service) RegisterUser(ctx context.Context, session identity.Session) error {
	return s.users.InsertUser(ctx, &domain.User{
		SafeEmail: session.SafeEmail(),
		FirstName: session.FirstName,
		LastName:  session.LastName,
	})
}

// GetUser returns the full account record, indexes included.
func (s *Service) GetUser(ctx context.Context, email string) (*domain.User, error) {
	return s.users.GetUser(ctx, identity.SafeEmail(email))
}
