package board

import (
	"context"
	"encoding/json"
	"fmt"

	"tableflip.dev/campusboard/pkg/notice"
	"tableflip.dev/campusboard/pkg/store"
)

// Register adds a new user. Usernames are compared case-sensitively.
func (b *Board) Register(ctx context.Context, u notice.User) (notice.User, error) {
	if err := b.check(u); err != nil {
		return notice.User{}, err
	}
	b.mu.Lock()
	for _, existing := range b.users {
		if existing.Username == u.Username {
			b.mu.Unlock()
			return notice.User{}, ErrUsernameTaken
		}
	}
	u.ID = b.nextID()
	next := append(append([]notice.User(nil), b.users...), u)
	if err := b.persistLocked(ctx, store.KeyUsers, next); err != nil {
		b.mu.Unlock()
		return notice.User{}, err
	}
	b.users = next
	b.mu.Unlock()

	b.log.Info().Str("username", u.Username).Str("role", u.Role.String()).Msg("user registered")
	b.broadcast(Change{Key: store.KeyUsers})
	return u, nil
}

// Login returns the user whose username, password and role all match, and
// records it as the current user. Credentials are compared in plain text.
func (b *Board) Login(ctx context.Context, username, password string, role notice.Role) (notice.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, u := range b.users {
		if u.Username == username && u.Password == password && u.Role == role {
			data, err := json.Marshal(u)
			if err != nil {
				return notice.User{}, fmt.Errorf("board: encode current user: %w", err)
			}
			if err := b.backend.Write(ctx, store.KeyCurrentUser, data); err != nil {
				return notice.User{}, fmt.Errorf("board: write current user: %w", err)
			}
			cur := u
			b.current = &cur
			b.role = u.Role
			return u, nil
		}
	}
	return notice.User{}, ErrInvalidCredentials
}

// Logout clears the current user and the session role.
func (b *Board) Logout(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = nil
	b.role = notice.RoleNone
	if err := b.backend.Erase(ctx, store.KeyCurrentUser); err != nil {
		return fmt.Errorf("board: erase current user: %w", err)
	}
	return nil
}

// CurrentUser returns the logged in user, if any.
func (b *Board) CurrentUser() (notice.User, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.current == nil {
		return notice.User{}, false
	}
	return *b.current, true
}

// Role is the session role. It only controls which affordances are shown.
func (b *Board) Role() notice.Role {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.role
}

// SetRole selects a session role without credentials.
func (b *Board) SetRole(role notice.Role) {
	b.mu.Lock()
	b.role = role
	b.mu.Unlock()
}
