package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janata-app/janata-api/internal/domain/entity"
	"github.com/janata-app/janata-api/internal/domain/repository"
	"github.com/janata-app/janata-api/pkg/geo"
)

func newEventSvc(t *testing.T) (*EventService, *memEventRepo, *memUserRepo, *memCenterRepo) {
	t.Helper()
	events := newMemEventRepo()
	users := newMemUserRepo()
	centers := newMemCenterRepo()
	svc := NewEventService(events, users, centers, nil, nil, nil, "", nil, "")
	return svc, events, users, centers
}

func seedUser(t *testing.T, users *memUserRepo, username string, level entity.VerificationLevel, points int) {
	t.Helper()
	u := entity.NewUser(username, "", "", "")
	u.VerificationLevel = level
	u.Points = points
	require.NoError(t, users.Create(context.Background(), u))
}

func createEvent(t *testing.T, svc *EventService, centerID string) *entity.Event {
	t.Helper()
	e, err := svc.Create(context.Background(), CreateEventInput{
		CenterID:    centerID,
		Date:        time.Date(2026, 10, 1, 18, 0, 0, 0, time.UTC),
		Location:    geo.Point{Latitude: 12.97, Longitude: 77.59},
		Description: "weekly satsang",
	})
	require.NoError(t, err)
	return e
}

func TestEventCreate(t *testing.T) {
	svc, _, _, centers := newEventSvc(t)
	seedCenter(t, centers, "c1")

	e := createEvent(t, svc, "c1")
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "c1", e.Center)

	got, err := svc.Get(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.ID)
}

func TestEventCreateUnknownCenter(t *testing.T) {
	svc, _, _, _ := newEventSvc(t)

	_, err := svc.Create(context.Background(), CreateEventInput{CenterID: "ghost", Date: time.Now()})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEventEndorse(t *testing.T) {
	svc, _, users, centers := newEventSvc(t)
	ctx := context.Background()
	seedCenter(t, centers, "c1")
	seedUser(t, users, "brahm", entity.LevelBrahmachari, 10)
	seedUser(t, users, "novice", entity.LevelNormal, 10)

	e := createEvent(t, svc, "c1")

	_, err := svc.Endorse(ctx, "novice", e.ID)
	assert.ErrorIs(t, err, entity.ErrInsufficientRank)

	got, err := svc.Endorse(ctx, "brahm", e.ID)
	require.NoError(t, err)
	require.Len(t, got.Endorsers, 1)
	assert.Equal(t, "brahm", got.Endorsers[0].Username)
	// (10*108) * 2 / 1081008
	assert.InDelta(t, 0.0019981, got.Tier, 1e-6)

	// persisted with the refreshed tier
	stored, err := svc.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.InDelta(t, got.Tier, stored.Tier, 1e-12)
}

func TestEventAttendAndUnregister(t *testing.T) {
	svc, _, users, centers := newEventSvc(t)
	ctx := context.Background()
	seedCenter(t, centers, "c1")
	seedUser(t, users, "alice", entity.LevelNormal, 0)

	e := createEvent(t, svc, "c1")

	got, err := svc.Attend(ctx, "alice", e.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.PeopleAttending)

	u, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, u.Attending(e.ID))

	_, err = svc.Attend(ctx, "alice", e.ID)
	assert.ErrorIs(t, err, entity.ErrAlreadyAttending)

	got, err = svc.Unregister(ctx, "alice", e.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.PeopleAttending)

	u, err = users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, u.Attending(e.ID))

	_, err = svc.Unregister(ctx, "alice", e.ID)
	assert.ErrorIs(t, err, entity.ErrNotAttending)
}

func TestEventAttendUnknownUser(t *testing.T) {
	svc, _, _, centers := newEventSvc(t)
	seedCenter(t, centers, "c1")
	e := createEvent(t, svc, "c1")

	_, err := svc.Attend(context.Background(), "ghost", e.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestEventListByCenter(t *testing.T) {
	svc, _, _, centers := newEventSvc(t)
	ctx := context.Background()
	seedCenter(t, centers, "c1")
	seedCenter(t, centers, "c2")

	createEvent(t, svc, "c1")
	createEvent(t, svc, "c1")
	createEvent(t, svc, "c2")

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	c1Events, err := svc.List(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, c1Events, 2)
	for _, e := range c1Events {
		assert.Equal(t, "c1", e.Center)
	}
}

func TestEventSetDescription(t *testing.T) {
	svc, _, _, centers := newEventSvc(t)
	ctx := context.Background()
	seedCenter(t, centers, "c1")
	e := createEvent(t, svc, "c1")

	got, err := svc.SetDescription(ctx, e.ID, "updated text")
	require.NoError(t, err)
	assert.Equal(t, "updated text", got.Description)

	stored, err := svc.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "updated text", stored.Description)
}

func TestEventDelete(t *testing.T) {
	svc, _, users, centers := newEventSvc(t)
	ctx := context.Background()
	seedCenter(t, centers, "c1")
	seedAdmin(t, users)
	seedUser(t, users, "bob", entity.LevelNormal, 0)

	e := createEvent(t, svc, "c1")

	require.ErrorIs(t, svc.Delete(ctx, "bob", e.ID), entity.ErrNotAuthorized)
	require.NoError(t, svc.Delete(ctx, "admin", e.ID))

	_, err := svc.Get(ctx, e.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEventSearchWithoutBackend(t *testing.T) {
	svc, _, _, _ := newEventSvc(t)

	hits, err := svc.Search(context.Background(), "satsang", 10)
	require.NoError(t, err)
	assert.NotNil(t, hits)
	assert.Empty(t, hits)
}
