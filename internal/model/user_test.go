package model

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndCheckPassword(t *testing.T) {
	u := &User{}
	require.NoError(t, u.SetPassword("secret123"))

	assert.NotEqual(t, "secret123", u.Password)
	assert.True(t, u.CheckPassword("secret123"))
	assert.False(t, u.CheckPassword("wrong"))
}

func TestUserJSONHidesPassword(t *testing.T) {
	u := &User{Email: "a@b.com", Name: "A"}
	require.NoError(t, u.SetPassword("secret123"))

	data, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(data), u.Password)
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole("ADMIN"))
	assert.True(t, ValidRole("MANAGER"))
	assert.True(t, ValidRole("STAFF"))
	assert.False(t, ValidRole("admin"))
	assert.False(t, ValidRole("ROOT"))
	assert.False(t, ValidRole(""))
}

func TestAuditIDNilActor(t *testing.T) {
	var a *ActingUser
	assert.Equal(t, "system", a.AuditID())

	u := &User{Email: "a@b.com", Name: "A"}
	u.ID = uuid.New()
	assert.Equal(t, u.ID.String(), u.Actor().AuditID())
}
