package user

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/alexedwards/argon2id"

	"github.com/ploychompoo03/management-market/internal/store"
)

// Repository persists staff accounts in the local store. On first read it
// seeds a default admin so a fresh install can log in.
type Repository struct {
	S  store.Store
	mu sync.Mutex
}

// Default admin credentials seeded on a fresh install. The first thing an
// operator should do is change them on the users screen.
const (
	SeedAdminUsername = "admin"
	SeedAdminPassword = "12345678"
)

func seedUsers() ([]User, error) {
	hash, err := argon2id.CreateHash(SeedAdminPassword, argon2id.DefaultParams)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}
	return []User{
		{ID: "U001", EmpName: "ผู้ดูแลระบบ", Username: SeedAdminUsername, Role: RoleAdmin, Active: true, PasswordHash: hash},
	}, nil
}

// Load returns all accounts, seeding the default admin when the slot is empty.
func (r *Repository) Load() ([]User, error) {
	var users []User
	ok, err := r.S.Get(store.KeyUsers, &users)
	if err != nil {
		return nil, err
	}
	if !ok {
		users, err = seedUsers()
		if err != nil {
			return nil, err
		}
		if err := r.S.Put(store.KeyUsers, users); err != nil {
			return nil, err
		}
	}
	return users, nil
}

// Save replaces the whole users slot.
func (r *Repository) Save(users []User) error {
	return r.S.Put(store.KeyUsers, users)
}

// Get returns the account with the given id.
func (r *Repository) Get(id string) (User, bool, error) {
	users, err := r.Load()
	if err != nil {
		return User{}, false, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, true, nil
		}
	}
	return User{}, false, nil
}

// FindByUsername returns the account with an exact username match.
func (r *Repository) FindByUsername(username string) (User, bool, error) {
	users, err := r.Load()
	if err != nil {
		return User{}, false, err
	}
	for _, u := range users {
		if u.Username == username {
			return u, true, nil
		}
	}
	return User{}, false, nil
}

// NextID generates the next account id in the U### sequence.
func (r *Repository) NextID() (string, error) {
	users, err := r.Load()
	if err != nil {
		return "", err
	}
	max := 0
	for _, u := range users {
		if n, err := strconv.Atoi(strings.TrimPrefix(u.ID, "U")); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("U%03d", max+1), nil
}

// Insert prepends a new account, matching the users screen which shows the
// newest first.
func (r *Repository) Insert(u User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	users, err := r.Load()
	if err != nil {
		return err
	}
	users = append([]User{u}, users...)
	return r.Save(users)
}

// Replace swaps the stored account with the same id. It reports whether the
// id was found.
func (r *Repository) Replace(u User) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users, err := r.Load()
	if err != nil {
		return false, err
	}
	for i := range users {
		if users[i].ID == u.ID {
			users[i] = u
			return true, r.Save(users)
		}
	}
	return false, nil
}

// Remove deletes the account with the given id. Removing an absent id is not
// an error.
func (r *Repository) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	users, err := r.Load()
	if err != nil {
		return err
	}
	kept := users[:0]
	for _, u := range users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	return r.Save(kept)
}
