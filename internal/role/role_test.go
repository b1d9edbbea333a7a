package role_test

import (
	"testing"

	"launchbay-gateway/internal/role"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	assert.Equal(t, role.Admin, role.Parse("admin"))
	assert.Equal(t, role.Membership, role.Parse("membership"))
	assert.Equal(t, role.User, role.Parse("user"))

	// unknown input must never grant privilege
	assert.Equal(t, role.User, role.Parse(""))
	assert.Equal(t, role.User, role.Parse("Admin"))
	assert.Equal(t, role.User, role.Parse("true")) // legacy isAdmin payloads
	assert.Equal(t, role.User, role.Parse("moderator"))
}

func TestHelpers(t *testing.T) {
	assert.True(t, role.Admin.IsAdmin())
	assert.False(t, role.Membership.IsAdmin())
	assert.False(t, role.User.IsAdmin())

	assert.True(t, role.Admin.CanModerate())
	assert.True(t, role.Membership.CanModerate())
	assert.False(t, role.User.CanModerate())
}

func TestAtLeast(t *testing.T) {
	assert.True(t, role.Admin.AtLeast(role.User))
	assert.True(t, role.Membership.AtLeast(role.Membership))
	assert.False(t, role.User.AtLeast(role.Membership))
}
