package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janata-app/janata-api/pkg/geo"
)

func TestCenterVerify(t *testing.T) {
	admin := NewUser("admin", "", "", "")
	admin.Role = RoleAdmin
	member := NewUser("bob", "", "", "")

	c := NewCenter("Riverside", geo.Point{Latitude: 1, Longitude: 2})

	require.ErrorIs(t, c.Verify(member), ErrNotAuthorized)
	assert.False(t, c.IsVerified)

	require.NoError(t, c.Verify(admin))
	assert.True(t, c.IsVerified)
}

func TestCenterMemberCount(t *testing.T) {
	c := NewCenter("Riverside", geo.Point{})

	c.RemoveMember()
	assert.Equal(t, 0, c.MemberCount)

	c.AddMember()
	c.AddMember()
	assert.Equal(t, 2, c.MemberCount)

	c.RemoveMember()
	assert.Equal(t, 1, c.MemberCount)
}

func TestCenterJSONRoundTrip(t *testing.T) {
	c := NewCenter("Riverside", geo.Point{Latitude: 12.97, Longitude: 77.59})
	c.CenterID = "c1"
	c.MemberCount = 3
	c.IsVerified = true

	data, err := c.ToJSON()
	require.NoError(t, err)

	got, err := CenterFromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, c.CenterID, got.CenterID)
	assert.Equal(t, c.Name, got.Name)
	assert.Equal(t, c.Location, got.Location)
	assert.Equal(t, c.MemberCount, got.MemberCount)
	assert.True(t, got.IsVerified)
}
