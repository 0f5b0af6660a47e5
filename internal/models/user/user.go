package user

type User struct {
	ID    int64  `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`
}

// Account is a user together with the password hash known only to the server.
type Account struct {
	User
	PasswordHash []byte `json:"-" db:"password_hash"`
}
