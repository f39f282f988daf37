package user

import (
	"github.com/evergreen-ci/restapp/db"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account record. Password is stored exactly as submitted.
type User struct {
	Id        primitive.ObjectID `bson:"_id" json:"_id"`
	Username  string             `bson:"username" json:"username"`
	FirstName string             `bson:"first_name" json:"first_name"`
	LastName  string             `bson:"last_name" json:"last_name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"password"`

	Extra map[string]any `bson:",inline" json:"-"`
}

// Update names the fields of a user to overwrite; nil fields are left
// untouched.
type Update struct {
	Username  *string
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
	Extra     map[string]any
}

// SearchOptions selects users by case-insensitive substring. Search
// matches any of username, first name, last name or email.
type SearchOptions struct {
	Username string
	Email    string
	Search   string
	Skip     int
	Limit    int
}

// Apply makes the same change to u in memory that UpdateOne makes to the
// stored document.
func (update Update) Apply(u *User) {
	for k, v := range db.CleanInlineFields(update.Extra, Keys()...) {
		if u.Extra == nil {
			u.Extra = map[string]any{}
		}
		u.Extra[k] = v
	}
	if update.Username != nil {
		u.Username = *update.Username
	}
	if update.FirstName != nil {
		u.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		u.LastName = *update.LastName
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.Password != nil {
		u.Password = *update.Password
	}
}
