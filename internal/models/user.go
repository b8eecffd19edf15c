package models

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Email        string
	FullName     string
	Role         string
}

// NewUser fills in the profile defaults used at registration time. The
// frontend collects only username and password; the remaining columns get
// placeholder values until a profile flow exists.
func NewUser(username, passwordHash string) *User {
	return &User{
		Username:     username,
		PasswordHash: passwordHash,
		Email:        username + "@example.com",
		FullName:     "Anonymous",
		Role:         "user",
	}
}
