package model

import (
	"encoding/json"
	"testing"

	"github.com/evergreen-ci/restapp/model/user"
	"github.com/evergreen-ci/utility"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAPIUser(t *testing.T) {
	apiUser := APIUser{}
	require.NoError(t, apiUser.Decode(map[string]any{
		"username":   "superblogger",
		"first_name": "Super",
		"password":   float64(1234),
		"admin":      true,
	}))

	assert.Equal(t, "1234", utility.FromStringPtr(apiUser.Password))
	assert.Nil(t, apiUser.Email)
	assert.Equal(t, map[string]any{"admin": true}, apiUser.Extra)

	u := apiUser.ToService()
	assert.True(t, u.Id.IsZero())
	assert.Equal(t, "superblogger", u.Username)
	assert.Equal(t, "Super", u.FirstName)
	assert.Equal(t, "", u.Email)

	update := apiUser.ToUpdate()
	assert.Nil(t, update.Email)
	assert.Equal(t, "Super", utility.FromStringPtr(update.FirstName))

	id := primitive.NewObjectID()
	rendered := APIUser{}
	rendered.BuildFromService(user.User{Id: id, Username: "superblogger", Password: "plain", Extra: map[string]any{"admin": true}})

	out, err := json.Marshal(rendered)
	require.NoError(t, err)
	doc := map[string]any{}
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Equal(t, id.Hex(), doc["_id"])
	assert.Equal(t, "plain", doc["password"])
	assert.Equal(t, true, doc["admin"])
}

func TestAPIUserDecodeRejectsObjectForString(t *testing.T) {
	apiUser := APIUser{}
	assert.Error(t, apiUser.Decode(map[string]any{"email": map[string]any{"$ne": ""}}))
}
