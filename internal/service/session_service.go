package service

import (
	"context"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/api/request"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/treasury"
)

// SessionService toggles the demo authentication flag.
type SessionService struct {
	store *Store
}

// NewSessionService creates a new SessionService backed by store.
func NewSessionService(store *Store) *SessionService {
	return &SessionService{store: store}
}

// Login marks the session authenticated. A blank password returns ErrInvalidCredentials.
func (s *SessionService) Login(ctx context.Context, req request.LoginRequest) error {
	op := &Op{Command: "login", Category: model.LogCategorySession, Message: "Login"}
	_, err := s.store.Update(ctx, op, func(snap model.Snapshot) (model.Snapshot, error) {
		next, ok := treasury.Login(snap, req.Password)
		if !ok {
			return snap, apperrors.ErrInvalidCredentials
		}
		return next, nil
	})
	return err
}

// Logout clears the authenticated flag.
func (s *SessionService) Logout(ctx context.Context) error {
	op := &Op{Command: "logout", Category: model.LogCategorySession, Message: "Logout"}
	_, err := s.store.Update(ctx, op, func(snap model.Snapshot) (model.Snapshot, error) {
		return treasury.Logout(snap), nil
	})
	return err
}

// IsAuthenticated reports the session flag.
func (s *SessionService) IsAuthenticated() bool {
	return Read(s.store, func(snap model.Snapshot) bool { return snap.IsAuthenticated })
}
