package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dropDatabas3/cvision/internal/store/core"
)

// fakeUsers implementa core.UserRepository en memoria, con la misma
// semántica de recorte FIFO que el store real.
type fakeUsers struct {
	mu     sync.Mutex
	seq    int
	byID   map[string]*core.User
	byMail map[string]string // email -> id
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{
		byID:   make(map[string]*core.User),
		byMail: make(map[string]string),
	}
}

func (f *fakeUsers) Create(_ context.Context, in core.CreateUserInput) (*core.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.byMail[in.Email]; ok {
		return nil, core.ErrConflict
	}
	f.seq++
	u := &core.User{
		ID:           fmt.Sprintf("user-%d", f.seq),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	f.byID[u.ID] = u
	f.byMail[u.Email] = u.ID
	return cloneUser(u), nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*core.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.byMail[email]
	if !ok {
		return nil, core.ErrNotFound
	}
	return cloneUser(f.byID[id]), nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*core.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return cloneUser(u), nil
}

func (f *fakeUsers) AppendRefreshTokenHash(_ context.Context, userID, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[userID]
	if !ok {
		return core.ErrNotFound
	}
	u.RefreshTokenHashes = append(u.RefreshTokenHashes, hash)
	if n := len(u.RefreshTokenHashes); n > core.MaxRefreshTokenHashes {
		u.RefreshTokenHashes = u.RefreshTokenHashes[n-core.MaxRefreshTokenHashes:]
	}
	return nil
}

func (f *fakeUsers) RemoveRefreshTokenHash(_ context.Context, userID, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[userID]
	if !ok {
		return core.ErrNotFound
	}
	out := u.RefreshTokenHashes[:0]
	for _, h := range u.RefreshTokenHashes {
		if h != hash {
			out = append(out, h)
		}
	}
	u.RefreshTokenHashes = out
	return nil
}

func (f *fakeUsers) ClearRefreshTokenHashes(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[userID]
	if !ok {
		return core.ErrNotFound
	}
	u.RefreshTokenHashes = nil
	return nil
}

func (f *fakeUsers) HasRefreshTokenHash(_ context.Context, userID, hash string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[userID]
	if !ok {
		return false, core.ErrNotFound
	}
	for _, h := range u.RefreshTokenHashes {
		if h == hash {
			return true, nil
		}
	}
	return false, nil
}

// hashes retorna una copia de la lista vigente, para asserts.
func (f *fakeUsers) hashes(userID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[userID]
	if !ok {
		return nil
	}
	return append([]string(nil), u.RefreshTokenHashes...)
}

func cloneUser(u *core.User) *core.User {
	cp := *u
	cp.RefreshTokenHashes = append([]string(nil), u.RefreshTokenHashes...)
	return &cp
}
