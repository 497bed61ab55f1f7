package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserDefaults(t *testing.T) {
	u := NewUser("alice", "alice@example.com", "hash", "")
	assert.Equal(t, NoCenter, u.CenterAffiliation)
	assert.Equal(t, LevelNormal, u.VerificationLevel)
	assert.Equal(t, RoleMember, u.Role)
	assert.False(t, u.IsVerified)
	assert.True(t, u.IsActive)
	assert.NotNil(t, u.Events)
}

func TestAddPoints(t *testing.T) {
	u := NewUser("alice", "", "", "")

	total, err := u.AddPoints(10)
	require.NoError(t, err)
	assert.Equal(t, 10, total)

	total, err = u.AddPoints(0)
	require.NoError(t, err)
	assert.Equal(t, 10, total)

	_, err = u.AddPoints(-5)
	require.ErrorIs(t, err, ErrNegativePoints)
	assert.Equal(t, 10, u.Points)
}

func TestVerify(t *testing.T) {
	admin := NewUser("admin", "", "", "")
	admin.Role = RoleAdmin

	u := NewUser("alice", "", "", "")

	require.NoError(t, u.Verify(LevelSevak, admin))
	assert.Equal(t, LevelSevak, u.VerificationLevel)
	assert.True(t, u.IsVerified)

	// same level again is allowed
	require.NoError(t, u.Verify(LevelSevak, admin))
}

func TestVerifyRequiresCapability(t *testing.T) {
	member := NewUser("bob", "", "", "")
	u := NewUser("alice", "", "", "")

	require.ErrorIs(t, u.Verify(LevelSevak, member), ErrNotAuthorized)
	require.ErrorIs(t, u.Verify(LevelSevak, nil), ErrNotAuthorized)
	assert.Equal(t, LevelNormal, u.VerificationLevel)
	assert.False(t, u.IsVerified)
}

func TestVerifyRejectsDowngradeAndBogusLevels(t *testing.T) {
	admin := NewUser("admin", "", "", "")
	admin.Role = RoleAdmin

	u := NewUser("alice", "", "", "")
	require.NoError(t, u.Verify(LevelBrahmachari, admin))

	require.ErrorIs(t, u.Verify(LevelSevak, admin), ErrLevelDowngrade)
	require.ErrorIs(t, u.Verify(VerificationLevel(777), admin), ErrInvalidLevel)
	assert.Equal(t, LevelBrahmachari, u.VerificationLevel)
}

func TestUserJSONRoundTrip(t *testing.T) {
	u := NewUser("alice", "alice@example.com", "hash", "center-1")
	u.Points = 42
	u.Events = []string{"e1", "e2"}

	data, err := u.ToJSON()
	require.NoError(t, err)

	got, err := UserFromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, u.Username, got.Username)
	assert.Equal(t, u.Email, got.Email)
	assert.Equal(t, u.PasswordHash, got.PasswordHash)
	assert.Equal(t, u.Points, got.Points)
	assert.Equal(t, u.Events, got.Events)
}

func TestUserFromJSONNormalizes(t *testing.T) {
	got, err := UserFromJSON([]byte(`{"username":"alice"}`))
	require.NoError(t, err)
	assert.Equal(t, NoCenter, got.CenterAffiliation)
	assert.NotNil(t, got.Events)
}

func TestRoleCapabilities(t *testing.T) {
	assert.True(t, RoleAdmin.Has(CapVerifyUsers))
	assert.True(t, RoleAdmin.Has(CapVerifyCenters))
	assert.True(t, RoleAdmin.Has(CapAwardPoints))
	assert.True(t, RoleAdmin.Has(CapDeleteRecords))

	assert.False(t, RoleMember.Has(CapVerifyUsers))
	assert.False(t, RoleMember.Has(CapDeleteRecords))
	assert.False(t, Role("bogus").Has(CapVerifyUsers))
}
