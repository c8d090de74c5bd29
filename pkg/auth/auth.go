// Package auth authenticates operators against a user table and decides
// what each role may do.
package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidCredentials is returned for an unknown user or wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrPermissionDenied is returned when a role may not perform an action.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidRole is returned for roles outside the known set.
	ErrInvalidRole = errors.New("invalid role")
)

const bcryptCost = 12

// Role is the access level of a user.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleViewer Role = "viewer"
)

// ParseRole parses a role name. "user" is accepted as a viewer.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, nil
	case "viewer", "user":
		return RoleViewer, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
}

// User is an authenticated operator.
type User struct {
	Username string
	Role     Role
}

// CanEdit reports whether the user may change figures, save and export.
func (u User) CanEdit() bool {
	return u.Role == RoleAdmin
}

// RequireEditor returns ErrPermissionDenied unless u may edit.
func RequireEditor(u User) error {
	if !u.CanEdit() {
		return fmt.Errorf("%w: %s is read-only", ErrPermissionDenied, u.Username)
	}
	return nil
}

// Authenticator checks credentials.
type Authenticator interface {
	Authenticate(username, password string) (User, error)
}

// UserRecord is one entry of the user table file.
type UserRecord struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash"`
	Role         string `yaml:"role"`
}

// UserTableConfig is the on-disk format of the user table.
type UserTableConfig struct {
	Users []UserRecord `yaml:"users"`
}

// UserTable authenticates against bcrypt password hashes.
type UserTable struct {
	users map[string]userEntry
}

type userEntry struct {
	hash []byte
	role Role
}

// LoadUserTable reads a user table from a YAML file.
func LoadUserTable(path string) (*UserTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read user table: %w", err)
	}
	return ParseUserTable(data)
}

// ParseUserTable builds a user table from YAML.
func ParseUserTable(data []byte) (*UserTable, error) {
	var config UserTableConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	table := &UserTable{users: make(map[string]userEntry, len(config.Users))}
	for _, rec := range config.Users {
		if rec.Username == "" || rec.PasswordHash == "" {
			return nil, fmt.Errorf("user table entry is missing username or password_hash")
		}
		role, err := ParseRole(rec.Role)
		if err != nil {
			return nil, fmt.Errorf("user %s: %w", rec.Username, err)
		}
		if _, dup := table.users[rec.Username]; dup {
			return nil, fmt.Errorf("duplicate user %s", rec.Username)
		}
		table.users[rec.Username] = userEntry{hash: []byte(rec.PasswordHash), role: role}
	}

	return table, nil
}

// Authenticate implements Authenticator.
func (t *UserTable) Authenticate(username, password string) (User, error) {
	entry, ok := t.users[username]
	if !ok {
		return User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(entry.hash, []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return User{Username: username, Role: entry.role}, nil
}

// Len returns the number of users.
func (t *UserTable) Len() int {
	return len(t.users)
}

// HashPassword hashes a password for the user table.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
