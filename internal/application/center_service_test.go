package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janata-app/janata-api/internal/domain/entity"
	"github.com/janata-app/janata-api/internal/domain/repository"
	"github.com/janata-app/janata-api/pkg/geo"
)

func newCenterSvc(t *testing.T) (*CenterService, *memCenterRepo, *memUserRepo) {
	t.Helper()
	centers := newMemCenterRepo()
	users := newMemUserRepo()
	return NewCenterService(centers, users, nil, nil), centers, users
}

func TestCenterCreateAssignsUniqueID(t *testing.T) {
	svc, centers, _ := newCenterSvc(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, "First", geo.Point{Latitude: 1, Longitude: 1}, false)
	require.NoError(t, err)
	assert.NotEmpty(t, a.CenterID)

	b, err := svc.Create(ctx, "Second", geo.Point{Latitude: 2, Longitude: 2}, true)
	require.NoError(t, err)
	assert.NotEmpty(t, b.CenterID)
	assert.NotEqual(t, a.CenterID, b.CenterID)

	all, err := centers.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCenterNearby(t *testing.T) {
	svc, centers, _ := newCenterSvc(t)
	ctx := context.Background()

	near := entity.NewCenter("Near", geo.Point{Latitude: 12.98, Longitude: 77.60})
	near.CenterID = "near"
	far := entity.NewCenter("Far", geo.Point{Latitude: 28.61, Longitude: 77.21})
	far.CenterID = "far"
	mid := entity.NewCenter("Mid", geo.Point{Latitude: 13.08, Longitude: 80.27})
	mid.CenterID = "mid"
	for _, c := range []*entity.Center{near, far, mid} {
		require.NoError(t, centers.Create(ctx, c))
	}

	got, err := svc.Nearby(ctx, geo.Point{Latitude: 12.9716, Longitude: 77.5946}, 400)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "near", got[0].Center.CenterID)
	assert.Equal(t, "mid", got[1].Center.CenterID)
	assert.Less(t, got[0].DistanceKm, got[1].DistanceKm)
}

func TestCenterNearbyEmpty(t *testing.T) {
	svc, _, _ := newCenterSvc(t)

	got, err := svc.Nearby(context.Background(), geo.Point{}, 10)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCenterUpdate(t *testing.T) {
	svc, _, _ := newCenterSvc(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, "Old Name", geo.Point{Latitude: 1, Longitude: 1}, false)
	require.NoError(t, err)

	loc := geo.Point{Latitude: 9, Longitude: 9}
	got, err := svc.Update(ctx, c.CenterID, UpdateCenterInput{Name: "New Name", Location: &loc})
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)
	assert.Equal(t, loc, got.Location)

	_, err = svc.Update(ctx, "ghost", UpdateCenterInput{Name: "x"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCenterVerifyAndDelete(t *testing.T) {
	svc, _, users := newCenterSvc(t)
	ctx := context.Background()
	seedAdmin(t, users)
	member := entity.NewUser("bob", "", "", "")
	require.NoError(t, users.Create(ctx, member))

	c, err := svc.Create(ctx, "Center", geo.Point{}, false)
	require.NoError(t, err)

	_, err = svc.Verify(ctx, "bob", c.CenterID)
	assert.ErrorIs(t, err, entity.ErrNotAuthorized)

	got, err := svc.Verify(ctx, "admin", c.CenterID)
	require.NoError(t, err)
	assert.True(t, got.IsVerified)

	require.ErrorIs(t, svc.Delete(ctx, "bob", c.CenterID), entity.ErrNotAuthorized)
	require.NoError(t, svc.Delete(ctx, "admin", c.CenterID))

	_, err = svc.Get(ctx, c.CenterID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
