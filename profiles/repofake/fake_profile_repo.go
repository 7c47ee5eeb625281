package repofake

import (
	"context"
	"sync"

	"github.com/updeals/retailer-portal/profiles"
)

var _ profiles.Repo = (*FakeProfileRepo)(nil)

// FakeProfileRepo is an in-memory profile store for tests.
type FakeProfileRepo struct {
	profiles map[string]*profiles.Profile
	lock     sync.RWMutex
}

func NewFakeProfileRepo() *FakeProfileRepo {
	return &FakeProfileRepo{
		profiles: make(map[string]*profiles.Profile),
	}
}

func (r *FakeProfileRepo) Upsert(profile *profiles.Profile) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.profiles[profile.ID] = profile
}

func (r *FakeProfileRepo) GetByID(_ context.Context, subjectID string) (*profiles.Profile, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.profiles[subjectID], nil
}
