package user

import "time"

type User struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	FullName  *string   `json:"full_name"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateUserParams struct {
	Email    string
	Password string
	FullName *string
	IsAdmin  bool
}

type RegisterInput struct {
	Email    string
	Password string
	FullName *string
	IsAdmin  bool
}
