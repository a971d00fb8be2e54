package model

import "time"

// User holds the local user data relevant to the application (outside of firebase auth).
// The firebase account owns credentials; this row only binds a firebase UID to a username.
type User struct {
	Id         int64     `db:"id" json:"id"`
	FirebaseId string    `db:"firebase_id" json:"-"`
	Username   string    `db:"username" json:"username"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

func (u *User) Is(other *User) bool {
	return u != nil && other != nil && u.Id == other.Id
}
