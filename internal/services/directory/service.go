package directory

import (
	"context"

	"github.com/pkg/errors"

	"sealdm/internal/crypto"
	"sealdm/internal/domain"
)

// Service is the enrollment surface. It stores public key records and
// profile fields for identities the external auth layer has already
// vouched for; private keys never reach it.
type Service struct {
	users domain.UserStore
}

// New returns a directory backed by the given user store.
func New(users domain.UserStore) *Service { return &Service{users: users} }

// Enroll registers an identity with its public key record. The record is
// validated as importable key material before it is accepted, so peers
// fetching it later can always derive against it.
func (s *Service) Enroll(ctx context.Context, u domain.User) error {
	if u.ID == "" {
		return errors.New("identity id is required")
	}
	if u.Handle == "" {
		return errors.New("handle is required")
	}
	if _, err := crypto.ImportPublic(u.PublicKey); err != nil {
		return errors.Wrap(err, "public key record")
	}
	return s.users.UpsertUser(ctx, u)
}

// Lookup resolves an identity to its public profile and key record.
func (s *Service) Lookup(ctx context.Context, id domain.IdentityID) (domain.User, error) {
	return s.users.GetUser(ctx, id)
}

// Search finds an enrolled identity by handle.
func (s *Service) Search(ctx context.Context, handle string) (domain.User, error) {
	if handle == "" {
		return domain.User{}, errors.New("handle is required")
	}
	return s.users.FindUserByHandle(ctx, handle)
}

var _ domain.Directory = (*Service)(nil)
