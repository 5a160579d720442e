package models

// User is a stored account row. PasswordHash never leaves the
// repository layer in an external representation.
type User struct {
	ID           string `json:"id" db:"id"`
	Fullname     string `json:"fullname" db:"fullname"`
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Fullname string `json:"fullname"`
	Username string `json:"username"`
}

// ToResponse strips the credential hash unconditionally.
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:       u.ID,
		Fullname: u.Fullname,
		Username: u.Username,
	}
}

// RegisterRequest keeps username and password dynamically typed so
// shape validation can report a type mismatch on the exact field
// instead of failing the whole decode.
type RegisterRequest struct {
	Fullname string `json:"fullname"`
	Username any    `json:"username"`
	Password any    `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AuthToken string `json:"authToken"`
}
