package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/mycms/portfolio-backend/internal/common"
	"github.com/mycms/portfolio-backend/model"
)

// fakePortfolios is an in-memory repository.Portfolios.
type fakePortfolios struct {
	mu        sync.Mutex
	records   []model.Portfolio
	createErr error
}

func (f *fakePortfolios) Create(_ context.Context, p *model.Portfolio) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p.Key = fmt.Sprintf("%d", len(f.records)+1)
	f.records = append(f.records, *p)
	return nil
}

func (f *fakePortfolios) ListByOwner(_ context.Context, owner string) ([]model.Portfolio, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Portfolio{}
	for _, p := range f.records {
		if p.Username == owner {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakePortfolios) Find(_ context.Context, filename string) (*model.Portfolio, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.records {
		if p.Filename == filename {
			found := p
			return &found, nil
		}
	}
	return nil, fmt.Errorf("portfolio %s: %w", filename, common.ErrNotFound)
}

func (f *fakePortfolios) Delete(_ context.Context, filename string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.records[:0]
	for _, p := range f.records {
		if p.Filename != filename {
			kept = append(kept, p)
		}
	}
	f.records = kept
	return nil
}

// fakeUsers is an in-memory repository.Users with the same conflict
// and falsy-means-keep semantics as the Arango implementation.
type fakeUsers struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[string]*model.User{}}
}

func (f *fakeUsers) Find(_ context.Context, username string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[username]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, fmt.Errorf("user %s: %w", username, common.ErrNotFound)
}

func (f *fakeUsers) Create(_ context.Context, u *model.User) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.Username]; ok {
		return "", fmt.Errorf("user %s: %w", u.Username, common.ErrConflict)
	}
	u.Key = fmt.Sprintf("%d", len(f.users)+1)
	copied := *u
	f.users[u.Username] = &copied
	return u.Key, nil
}

func (f *fakeUsers) Update(_ context.Context, username string, patch model.UserPatch) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[username]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", username, common.ErrNotFound)
	}
	if patch.Realname != "" {
		u.Realname = patch.Realname
	}
	if patch.Bio != "" {
		u.Bio = patch.Bio
	}
	if patch.ProfilePic != "" {
		u.ProfilePic = patch.ProfilePic
	}
	copied := *u
	return &copied, nil
}
