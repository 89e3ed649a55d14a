package domain

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/everestcart/storefront-api/internal/shared/actor"
)

var (
	ErrEmptyName     = errors.New("first name and last name are required")
	ErrEmptyPassword = errors.New("password is required")
	ErrWeakPassword  = errors.New("password must be at least 6 characters")
	ErrInvalidEmail  = errors.New("a valid email is required")
	ErrInvalidMobile = errors.New("mobile number must be 980 followed by 7 digits")
	ErrInvalidRole   = errors.New("role must be client or admin")
)

// Nepali mobile numbers as the storefront accepts them.
var mobilePattern = regexp.MustCompile(`^980[0-9]{7}$`)

// User is a storefront account. PasswordHash is a bcrypt hash; the clear
// text password never leaves SetPassword.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Role         actor.Role
	MobileNumber string
	Address      string
	Province     string
	District     string
	Municipal    string
}

// NewUser builds an account with the required invariants applied. Role
// defaults to client when empty.
func NewUser(firstName, lastName, email, password string, role actor.Role) (*User, error) {
	if role == "" {
		role = actor.RoleClient
	}
	u := &User{Role: role}
	if err := u.SetName(firstName, lastName); err != nil {
		return nil, err
	}
	if err := u.SetEmail(email); err != nil {
		return nil, err
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	if u.Role != actor.RoleClient && u.Role != actor.RoleAdmin {
		return nil, ErrInvalidRole
	}
	return u, nil
}

// SetName trims and requires both name parts.
func (u *User) SetName(firstName, lastName string) error {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return ErrEmptyName
	}
	u.FirstName = firstName
	u.LastName = lastName
	return nil
}

// SetEmail normalizes the email to lower case so lookups are case-insensitive.
func (u *User) SetEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	u.Email = email
	return nil
}

// SetPassword validates strength and stores the bcrypt hash.
func (u *User) SetPassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return ErrEmptyPassword
	}
	if len(password) < 6 {
		return ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword compares the supplied password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	if u.PasswordHash == "" || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// UpdateProfile applies optional delivery details. Empty mobile clears the
// number, anything else must match the accepted pattern.
func (u *User) UpdateProfile(mobileNumber, address, province, district, municipal string) error {
	mobileNumber = strings.TrimSpace(mobileNumber)
	if mobileNumber != "" && !mobilePattern.MatchString(mobileNumber) {
		return ErrInvalidMobile
	}
	u.MobileNumber = mobileNumber
	u.Address = strings.TrimSpace(address)
	u.Province = strings.TrimSpace(province)
	u.District = strings.TrimSpace(district)
	u.Municipal = strings.TrimSpace(municipal)
	return nil
}

// Actor converts the account into the request principal used across
// bounded contexts.
func (u *User) Actor() actor.Actor {
	return actor.Actor{
		UserID:    u.ID,
		Role:      u.Role,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}
