package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/wanderlust/internal/domain"
	"github.com/pkordes/wanderlust/internal/repo"
	"github.com/pkordes/wanderlust/internal/service"
)

func newSession(t *testing.T) (*service.SessionService, *service.TripStore, repo.KV) {
	t.Helper()
	kv := repo.NewMemoryKV()
	trips := newTripStore(t, kv)
	return service.NewSessionService(kv, trips), trips, kv
}

func TestSessionService_Defaults(t *testing.T) {
	s, _, _ := newSession(t)

	sess, err := s.Get(context.Background())

	require.NoError(t, err)
	assert.Empty(t, sess.ActiveTripID)
	assert.Equal(t, domain.TabItinerary, sess.ActiveTab)
	assert.Equal(t, "Day 1", sess.CurrentDay)
	assert.False(t, sess.HasSeenDragHint)
}

func TestSessionService_Activate(t *testing.T) {
	s, _, _ := newSession(t)

	sess, err := s.Activate(context.Background(), domain.SeedTripID)

	require.NoError(t, err)
	assert.Equal(t, domain.SeedTripID, sess.ActiveTripID)
}

func TestSessionService_Activate_Unknown(t *testing.T) {
	s, _, _ := newSession(t)

	_, err := s.Activate(context.Background(), "nope")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionService_DanglingActiveTripIsCleared(t *testing.T) {
	s, trips, kv := newSession(t)
	ctx := context.Background()
	_, err := s.Activate(ctx, domain.SeedTripID)
	require.NoError(t, err)
	require.NoError(t, trips.Delete(ctx, domain.SeedTripID))

	sess, err := s.Get(ctx)

	require.NoError(t, err)
	assert.Empty(t, sess.ActiveTripID)
	_, err = kv.Get(ctx, repo.KeyActiveTripID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionService_InvalidCurrentDayIsRepaired(t *testing.T) {
	s, _, kv := newSession(t)
	ctx := context.Background()
	require.NoError(t, kv.Put(ctx, repo.KeyCurrentDay, []byte("Day 7")))

	sess, err := s.Activate(ctx, domain.SeedTripID)

	require.NoError(t, err)
	assert.Equal(t, "Day 1", sess.CurrentDay)
}

func TestSessionService_SetCurrentDay(t *testing.T) {
	s, _, _ := newSession(t)
	ctx := context.Background()
	_, err := s.Activate(ctx, domain.SeedTripID)
	require.NoError(t, err)

	require.NoError(t, s.SetCurrentDay(ctx, "Day 2"))
	assert.ErrorIs(t, s.SetCurrentDay(ctx, "Day 4"), domain.ErrValidation)
	assert.ErrorIs(t, s.SetCurrentDay(ctx, "tomorrow"), domain.ErrValidation)

	sess, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Day 2", sess.CurrentDay)
}

func TestSessionService_SetTab(t *testing.T) {
	s, _, _ := newSession(t)
	ctx := context.Background()

	require.NoError(t, s.SetTab(ctx, domain.TabTranslate))
	assert.ErrorIs(t, s.SetTab(ctx, "settings"), domain.ErrValidation)

	sess, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.TabTranslate, sess.ActiveTab)
}

func TestSessionService_ConsumeDragHint_Once(t *testing.T) {
	s, _, _ := newSession(t)
	ctx := context.Background()

	first, err := s.ConsumeDragHint(ctx)
	require.NoError(t, err)
	second, err := s.ConsumeDragHint(ctx)
	require.NoError(t, err)

	assert.True(t, first)
	assert.False(t, second)
	sess, err := s.Get(ctx)
	require.NoError(t, err)
	assert.True(t, sess.HasSeenDragHint)
}

func TestSessionService_ClearIfActive(t *testing.T) {
	s, trips, _ := newSession(t)
	ctx := context.Background()
	other, err := trips.Create(ctx, domain.TripTemplate{})
	require.NoError(t, err)
	_, err = s.Activate(ctx, domain.SeedTripID)
	require.NoError(t, err)

	require.NoError(t, s.ClearIfActive(ctx, other.ID))
	sess, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SeedTripID, sess.ActiveTripID)

	require.NoError(t, s.ClearIfActive(ctx, domain.SeedTripID))
	sess, err = s.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, sess.ActiveTripID)
}
