package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dietlog/dietlog-go/internal/model"
	"github.com/dietlog/dietlog-go/internal/repository"
)

type fakeUserStore struct {
	mu    sync.Mutex
	users []*model.User
	err   error
}

func (f *fakeUserStore) Create(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, u := range f.users {
		if u.Name == user.Name {
			return repository.ErrDuplicateName
		}
	}
	cp := *user
	f.users = append(f.users, &cp)
	return nil
}

func (f *fakeUserStore) GetByName(_ context.Context, name string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Name == name {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserStore) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	for _, u := range f.users {
		if u.ID == id {
			return true, nil
		}
	}
	return false, nil
}

// fakeMealStore keeps meals in insertion order, like the SQL store's
// created_at ordering.
type fakeMealStore struct {
	mu    sync.Mutex
	meals []model.Meal
	err   error
}

func (f *fakeMealStore) Create(_ context.Context, meal *model.Meal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.meals = append(f.meals, *meal)
	return nil
}

func (f *fakeMealStore) Update(_ context.Context, userID uuid.UUID, currentName string, patch model.MealPatch) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	var n int64
	for i := range f.meals {
		m := &f.meals[i]
		if m.UserID != userID || m.Name != currentName {
			continue
		}
		if patch.Name != nil {
			m.Name = *patch.Name
		}
		if patch.Description != nil {
			d := *patch.Description
			m.Description = &d
		}
		if patch.IsOnDiet != nil {
			b := *patch.IsOnDiet
			m.IsOnDiet = &b
		}
		n++
	}
	return n, nil
}

func (f *fakeMealStore) Delete(_ context.Context, userID uuid.UUID, name string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	kept := f.meals[:0]
	var n int64
	for _, m := range f.meals {
		if m.UserID == userID && m.Name == name {
			n++
			continue
		}
		kept = append(kept, m)
	}
	f.meals = kept
	return n, nil
}

func (f *fakeMealStore) List(_ context.Context, userID uuid.UUID, name string) ([]model.Meal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Meal
	for _, m := range f.meals {
		if m.UserID == userID && (name == "" || m.Name == name) {
			out = append(out, m)
		}
	}
	return out, nil
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
