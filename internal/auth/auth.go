// Package auth implements the access gate: a phone+password check
// against a small stored user list, with registration locked behind a
// shared master code.
//
// This is advisory gating for a private household tool, not access
// control: passwords are compared as stored and nothing here defends
// against a hostile client. Do not put it in front of anything that
// needs real security.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// DefaultMaxUsers caps the account list; the app is shared by one
// family.
const DefaultMaxUsers = 4

type User struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

var (
	ErrBadCredentials = errors.New("unknown phone or wrong password")
	ErrBadMasterCode  = errors.New("wrong master code")
	ErrUserLimit      = errors.New("user limit reached")
	ErrPhoneTaken     = errors.New("phone already registered")
	ErrEmptyField     = errors.New("phone and password required")
)

// Repository is the user-list persistence the gate needs.
type Repository interface {
	LoadUsers(ctx context.Context) ([]User, error)
	SaveUsers(ctx context.Context, users []User) error
}

// Gate validates logins and registrations against the stored list.
type Gate struct {
	repo       Repository
	masterCode string
	maxUsers   int
}

func NewGate(repo Repository, masterCode string, maxUsers int) *Gate {
	if maxUsers <= 0 {
		maxUsers = DefaultMaxUsers
	}
	return &Gate{repo: repo, masterCode: masterCode, maxUsers: maxUsers}
}

// Login returns the matching user or ErrBadCredentials.
func (g *Gate) Login(ctx context.Context, phone, password string) (User, error) {
	users, err := g.repo.LoadUsers(ctx)
	if err != nil {
		return User{}, fmt.Errorf("load users: %w", err)
	}
	for _, u := range users {
		if u.Phone == phone && u.Password == password {
			return u, nil
		}
	}
	return User{}, ErrBadCredentials
}

// Register adds a user when the master code matches, the cap is not
// reached, and the phone is new.
func (g *Gate) Register(ctx context.Context, phone, password, masterCode string) (User, error) {
	if strings.TrimSpace(phone) == "" || password == "" {
		return User{}, ErrEmptyField
	}
	if masterCode != g.masterCode {
		return User{}, ErrBadMasterCode
	}

	users, err := g.repo.LoadUsers(ctx)
	if err != nil {
		return User{}, fmt.Errorf("load users: %w", err)
	}
	if len(users) >= g.maxUsers {
		return User{}, ErrUserLimit
	}
	for _, u := range users {
		if u.Phone == phone {
			return User{}, ErrPhoneTaken
		}
	}

	user := User{Phone: phone, Password: password}
	users = append(users, user)
	if err := g.repo.SaveUsers(ctx, users); err != nil {
		return User{}, fmt.Errorf("save users: %w", err)
	}
	return user, nil
}
