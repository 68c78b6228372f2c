package treasury

import (
	"strings"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
)

// Login marks the session authenticated when the trimmed password is non-empty.
func Login(s model.Snapshot, password string) (model.Snapshot, bool) {
	if strings.TrimSpace(password) == "" {
		return s, false
	}
	next := s.Clone()
	next.IsAuthenticated = true
	return next, true
}

// Logout clears the authenticated flag.
func Logout(s model.Snapshot) model.Snapshot {
	next := s.Clone()
	next.IsAuthenticated = false
	return next
}
