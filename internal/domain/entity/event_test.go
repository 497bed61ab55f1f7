package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janata-app/janata-api/pkg/geo"
)

func testEvent() *Event {
	e := NewEvent("center-1", time.Date(2026, 10, 1, 18, 0, 0, 0, time.UTC),
		geo.Point{Latitude: 12.97, Longitude: 77.59}, "satsang")
	e.ID = "event-1"
	return e
}

func TestComputeTier(t *testing.T) {
	e := testEvent()
	e.Endorsers = []Endorser{{Username: "b1", Points: 10, VerificationLevel: LevelBrahmachari}}
	e.PeopleAttending = 5

	// (10*108 + 5*45) * 2 / 1081008
	assert.InDelta(t, 0.0024144, e.ComputeTier(), 1e-6)
}

func TestComputeTierNoEndorsers(t *testing.T) {
	e := testEvent()
	e.PeopleAttending = 10
	assert.InDelta(t, float64(10*45)/tierDescale, e.ComputeTier(), 1e-12)
}

func TestComputeTierSeniorMultiplierCounts(t *testing.T) {
	e := testEvent()
	e.Endorsers = []Endorser{
		{Username: "s", Points: 1, VerificationLevel: LevelSevak},
		{Username: "b", Points: 1, VerificationLevel: LevelBrahmachari},
		{Username: "sw", Points: 1, VerificationLevel: LevelSwami},
	}
	// base 54+108+1008, two endorsers at brahmachari or above triple it
	want := float64(54+108+1008) * 3 / tierDescale
	assert.InDelta(t, want, e.ComputeTier(), 1e-12)
}

func TestAddEndorserRankGate(t *testing.T) {
	e := testEvent()

	normal := NewUser("novice", "", "", "")
	require.ErrorIs(t, e.AddEndorser(normal), ErrInsufficientRank)
	assert.Empty(t, e.Endorsers)

	sevak := NewUser("sevak", "", "", "")
	sevak.VerificationLevel = LevelSevak
	sevak.Points = 7
	require.NoError(t, e.AddEndorser(sevak))
	require.Len(t, e.Endorsers, 1)
	assert.Equal(t, "sevak", e.Endorsers[0].Username)
	assert.Equal(t, 7, e.Endorsers[0].Points)
	assert.Equal(t, e.ComputeTier(), e.Tier)
}

func TestAddEndorserSnapshotsUser(t *testing.T) {
	e := testEvent()
	u := NewUser("sevak", "", "", "")
	u.VerificationLevel = LevelSevak
	u.Points = 3
	require.NoError(t, e.AddEndorser(u))

	u.Points = 100
	assert.Equal(t, 3, e.Endorsers[0].Points)
}

func TestAddEndorserRepeatAppends(t *testing.T) {
	e := testEvent()
	u := NewUser("swami", "", "", "")
	u.VerificationLevel = LevelSwami
	require.NoError(t, e.AddEndorser(u))
	require.NoError(t, e.AddEndorser(u))
	assert.Len(t, e.Endorsers, 2)
}

func TestRegisterAndUnregister(t *testing.T) {
	e := testEvent()
	u := NewUser("alice", "", "", "")

	require.NoError(t, e.Register(u))
	assert.Equal(t, 1, e.PeopleAttending)
	assert.True(t, u.Attending(e.ID))

	require.ErrorIs(t, e.Register(u), ErrAlreadyAttending)
	assert.Equal(t, 1, e.PeopleAttending)

	require.NoError(t, e.Unregister(u))
	assert.Equal(t, 0, e.PeopleAttending)
	assert.False(t, u.Attending(e.ID))

	require.ErrorIs(t, e.Unregister(u), ErrNotAttending)
	assert.Equal(t, 0, e.PeopleAttending)
}

func TestRegisterRefreshesTier(t *testing.T) {
	e := testEvent()
	u := NewUser("alice", "", "", "")
	require.NoError(t, e.Register(u))
	assert.InDelta(t, float64(45)/tierDescale, e.Tier, 1e-12)
}

func TestEventJSONRoundTrip(t *testing.T) {
	e := testEvent()
	u := NewUser("sevak", "", "", "")
	u.VerificationLevel = LevelSevak
	require.NoError(t, e.AddEndorser(u))
	e.PeopleAttending = 2

	data, err := e.ToJSON()
	require.NoError(t, err)

	got, err := EventFromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.ID)
	assert.Equal(t, e.Center, got.Center)
	assert.True(t, e.Date.Equal(got.Date))
	assert.Equal(t, e.Endorsers, got.Endorsers)
	assert.Equal(t, e.PeopleAttending, got.PeopleAttending)
}

func TestEventFromJSONNormalizesEndorsers(t *testing.T) {
	got, err := EventFromJSON([]byte(`{"id":"e1","center":"c1"}`))
	require.NoError(t, err)
	assert.NotNil(t, got.Endorsers)
	assert.Empty(t, got.Endorsers)
}
