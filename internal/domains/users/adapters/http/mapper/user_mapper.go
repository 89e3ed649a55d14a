package mapper

import (
	userdomain "github.com/everestcart/storefront-api/internal/domains/users/domain"
	userports "github.com/everestcart/storefront-api/internal/domains/users/ports"
)

// RegisterRequest is the sign-up payload.
type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest carries the editable account details.
type UpdateProfileRequest struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	MobileNumber string `json:"mobile_number"`
	Address      string `json:"address"`
	Province     string `json:"province"`
	District     string `json:"district"`
	Municipal    string `json:"municipal"`
}

// User is the transport representation of an account. The password hash
// never crosses the wire.
type User struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	MobileNumber string `json:"mobile_number,omitempty"`
	Address      string `json:"address,omitempty"`
	Province     string `json:"province,omitempty"`
	District     string `json:"district,omitempty"`
	Municipal    string `json:"municipal,omitempty"`
}

// LoginResponse bundles the opened session with its account.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// ToRegisterInput converts a sign-up payload into the application input.
func ToRegisterInput(req RegisterRequest) userports.RegisterInput {
	return userports.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	}
}

// ToProfileUpdate converts a profile payload into the application input.
func ToProfileUpdate(req UpdateProfileRequest) userports.ProfileUpdate {
	return userports.ProfileUpdate{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		MobileNumber: req.MobileNumber,
		Address:      req.Address,
		Province:     req.Province,
		District:     req.District,
		Municipal:    req.Municipal,
	}
}

// FromDomainUser converts a domain account to the transport representation.
func FromDomainUser(user *userdomain.User) User {
	if user == nil {
		return User{}
	}
	return User{
		ID:           user.ID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
		Role:         string(user.Role),
		MobileNumber: user.MobileNumber,
		Address:      user.Address,
		Province:     user.Province,
		District:     user.District,
		Municipal:    user.Municipal,
	}
}
