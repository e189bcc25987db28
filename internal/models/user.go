package models

// User is the persistent identity behind a verification code. A row is
// created the first time a code validates; token is replaced on every
// later validation, so only the latest session stays usable.
type User struct {
	ID    int64   `db:"id" json:"id"`
	Code  string  `db:"code" json:"code"`
	Name  *string `db:"name" json:"name"`
	Email *string `db:"email" json:"email"`
	Grade *string `db:"grade" json:"grade"`
	Token *string `db:"token" json:"token"`
}
