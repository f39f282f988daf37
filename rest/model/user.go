package model

import (
	"github.com/evergreen-ci/restapp/model/user"
	"github.com/evergreen-ci/utility"
	"github.com/pkg/errors"
)

// APIUser is the JSON representation of a user. The password is
// returned as stored.
type APIUser struct {
	Id        *string        `json:"_id" mapstructure:"_id"`
	Username  *string        `json:"username" mapstructure:"username"`
	FirstName *string        `json:"first_name" mapstructure:"first_name"`
	LastName  *string        `json:"last_name" mapstructure:"last_name"`
	Email     *string        `json:"email" mapstructure:"email"`
	Password  *string        `json:"password" mapstructure:"password"`
	Extra     map[string]any `json:"-" mapstructure:",remain"`
}

func (u *APIUser) Decode(in map[string]any) error {
	return errors.Wrap(decodeDocument(in, u), "decoding user")
}

func (u APIUser) MarshalJSON() ([]byte, error) {
	type apiUser APIUser
	return marshalWithExtra(apiUser(u), u.Extra)
}

// BuildFromService converts from a service level user to an APIUser.
func (u *APIUser) BuildFromService(in user.User) {
	u.Id = utility.ToStringPtr(in.Id.Hex())
	u.Username = utility.ToStringPtr(in.Username)
	u.FirstName = utility.ToStringPtr(in.FirstName)
	u.LastName = utility.ToStringPtr(in.LastName)
	u.Email = utility.ToStringPtr(in.Email)
	u.Password = utility.ToStringPtr(in.Password)
	u.Extra = in.Extra
}

// ToService returns a service layer user without an id.
func (u *APIUser) ToService() user.User {
	return user.User{
		Username:  utility.FromStringPtr(u.Username),
		FirstName: utility.FromStringPtr(u.FirstName),
		LastName:  utility.FromStringPtr(u.LastName),
		Email:     utility.FromStringPtr(u.Email),
		Password:  utility.FromStringPtr(u.Password),
		Extra:     u.Extra,
	}
}

func (u *APIUser) ToUpdate() user.Update {
	return user.Update{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Password:  u.Password,
		Extra:     u.Extra,
	}
}
