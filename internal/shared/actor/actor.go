// Package actor carries the authenticated identity attached to each request.
package actor

// Role distinguishes buyers from store staff.
type Role string

const (
	// RoleClient is a regular buyer. Clients only see and act on their own orders.
	RoleClient Role = "client"
	// RoleAdmin is store staff. Admins see every order and drive status changes.
	RoleAdmin Role = "admin"
)

// Actor is the authenticated identity resolved by the session verifier.
type Actor struct {
	UserID    int64
	Role      Role
	FirstName string
	LastName  string
	Email     string
}

// IsAdmin reports whether the actor holds the staff role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Owns reports whether the actor is the given user.
func (a Actor) Owns(userID int64) bool {
	return a.UserID == userID
}
