package auth

type User struct {
	ID           int64  `json:"id"`
	Phone        string `json:"phoneNumber"`
	Name         string `json:"name,omitempty"`
	Email        string `json:"email,omitempty"`
	HasAddresses bool   `json:"hasAddresses,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
}

// VerifyResult mirrors the auth service's verify-OTP response. Success is
// a normal outcome flag: a wrong code is not an error.
type VerifyResult struct {
	Success      bool   `json:"success"`
	Message      string `json:"message,omitempty"`
	User         *User  `json:"user,omitempty"`
	Token        string `json:"token,omitempty"`
	HasAddresses bool   `json:"hasAddresses"`
}
