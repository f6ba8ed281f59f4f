package identity

import (
	"regexp"
	"strings"

	"github.com/gatesec/backend/internal/domain/shared"
)

// UserRole represents the role of a user account
type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"    // Full administrative access
	UserRoleSecurity UserRole = "security" // Gate/checkpoint operator
)

// User represents an operator account in the identity context
type User struct {
	shared.BaseEntity
	FullName     string
	Email        string
	PasswordHash string // bcrypt hash, never serialized
	Role         UserRole
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user with the given (already hashed) password
func NewUser(fullName, email, passwordHash string, role UserRole) (*User, error) {
	if err := validateFullName(fullName); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}
	if err := ValidateRole(role); err != nil {
		return nil, err
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		FullName:     fullName,
		Email:        strings.ToLower(email),
		PasswordHash: passwordHash,
		Role:         role,
	}, nil
}

// Rename changes the user's display name
func (u *User) Rename(fullName string) error {
	if err := validateFullName(fullName); err != nil {
		return err
	}
	u.FullName = fullName
	u.Touch()
	return nil
}

// ChangeEmail changes the user's login email
func (u *User) ChangeEmail(email string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	u.Email = strings.ToLower(email)
	u.Touch()
	return nil
}

// ChangeRole changes the user's role
func (u *User) ChangeRole(role UserRole) error {
	if err := ValidateRole(role); err != nil {
		return err
	}
	u.Role = role
	u.Touch()
	return nil
}

// ChangePassword replaces the stored password hash
func (u *User) ChangePassword(passwordHash string) error {
	if passwordHash == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}
	u.PasswordHash = passwordHash
	u.Touch()
	return nil
}

// IsAdmin returns true if the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// IsSecurity returns true if the user has the security role
func (u *User) IsSecurity() bool {
	return u.Role == UserRoleSecurity
}

// ValidateRole checks that the role is one of the known roles
func ValidateRole(role UserRole) error {
	switch role {
	case UserRoleAdmin, UserRoleSecurity:
		return nil
	default:
		return shared.NewDomainError("INVALID_ROLE", "Role must be 'admin' or 'security'")
	}
}

func validateFullName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Full name cannot be empty")
	}
	if len(name) > 255 {
		return shared.NewDomainError("INVALID_NAME", "Full name cannot exceed 255 characters")
	}
	return nil
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 255 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 255 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
