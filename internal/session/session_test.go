package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenhollow/almanac/internal/clock"
	"github.com/greenhollow/almanac/internal/event"
	"github.com/greenhollow/almanac/internal/save"
	"github.com/greenhollow/almanac/internal/session"
	"github.com/greenhollow/almanac/internal/species"
)

// fakeWall is a manually advanced wall clock.
type fakeWall struct {
	now time.Time
}

func (w *fakeWall) Now() time.Time {
	return w.now
}

func (w *fakeWall) advance(d time.Duration) {
	w.now = w.now.Add(d)
}

func newTestSession(t *testing.T, store save.Store) (*session.Session, *fakeWall) {
	t.Helper()
	catalog, err := species.NewCatalog(species.DefaultSpecies())
	require.NoError(t, err)

	cfg := clock.DefaultConfig()
	cfg.RealSecondsPerGameDay = 60 // 24 game minutes per real second

	wall := &fakeWall{now: time.Unix(1_700_000_000, 0)}
	return session.New(cfg, catalog, event.NewMemoryBus(), store, wall), wall
}

func TestSession_UpdateAdvancesClock(t *testing.T) {
	sess, wall := newTestSession(t, save.NewMemoryStore())
	ctx := context.Background()

	sess.Update(ctx) // baseline
	wall.advance(2 * time.Second)
	sess.Update(ctx)

	assert.Equal(t, int64(48), sess.Clock().CurrentTime().TotalMinutes)
}

func TestSession_PauseGatesUpdates(t *testing.T) {
	sess, wall := newTestSession(t, save.NewMemoryStore())
	ctx := context.Background()

	sess.Update(ctx)
	sess.Pause().Pause()

	wall.advance(time.Minute)
	sess.Update(ctx)
	assert.Equal(t, int64(0), sess.Clock().CurrentTime().TotalMinutes)

	// Resume rebaselines, so the paused interval never counts.
	sess.Pause().Resume()
	wall.advance(time.Second)
	sess.Update(ctx)
	assert.Equal(t, int64(24), sess.Clock().CurrentTime().TotalMinutes)
}

func TestSession_ContextualPauseGatesUpdates(t *testing.T) {
	sess, wall := newTestSession(t, save.NewMemoryStore())
	ctx := context.Background()

	sess.Update(ctx)
	sess.Pause().EnterContext("dialogue")

	wall.advance(10 * time.Second)
	sess.Update(ctx)
	assert.Equal(t, int64(0), sess.Clock().CurrentTime().TotalMinutes)

	sess.Pause().ExitContext("dialogue")
	wall.advance(time.Second)
	sess.Update(ctx)
	assert.Equal(t, int64(24), sess.Clock().CurrentTime().TotalMinutes)
}

func TestSession_SleepClearsExplicitPauseAndUpdatesGarden(t *testing.T) {
	sess, _ := newTestSession(t, save.NewMemoryStore())
	ctx := context.Background()

	planted, err := sess.Garden().Spawn(ctx, "turnip", session.DefaultRegion, sess.Clock().CurrentTime())
	require.NoError(t, err)

	sess.Pause().Pause()

	// Sleep to maturity (3 stages, 2 days per stage).
	for day := 0; day < 5; day++ {
		sess.Sleep(ctx)
	}

	assert.False(t, sess.Clock().IsPaused())
	got, ok := sess.Garden().Get(planted.InstanceID)
	require.True(t, ok)
	assert.Equal(t, 2, got.GrowthStage)
}

func TestSession_ActiveRegion(t *testing.T) {
	sess, _ := newTestSession(t, save.NewMemoryStore())

	assert.Equal(t, session.DefaultRegion, sess.ActiveRegion())
	sess.SetActiveRegion("greenhouse")
	assert.Equal(t, "greenhouse", sess.ActiveRegion())
}

func TestSession_UpdateOnlyTouchesActiveRegion(t *testing.T) {
	sess, wall := newTestSession(t, save.NewMemoryStore())
	ctx := context.Background()

	sess.Update(ctx)
	now := sess.Clock().CurrentTime()

	farmPlant, err := sess.Garden().Spawn(ctx, "turnip", "farm", now)
	require.NoError(t, err)
	activePlant, err := sess.Garden().Spawn(ctx, "turnip", session.DefaultRegion, now)
	require.NoError(t, err)

	// Two game days pass (60s per day).
	wall.advance(2 * time.Minute)
	sess.Update(ctx)

	active, ok := sess.Garden().Get(activePlant.InstanceID)
	require.True(t, ok)
	assert.Equal(t, 1, active.GrowthStage)

	farm, ok := sess.Garden().Get(farmPlant.InstanceID)
	require.True(t, ok)
	assert.Equal(t, 0, farm.GrowthStage, "inactive region plants do not update")
}

func TestSession_SaveLoadRoundTrip(t *testing.T) {
	store := save.NewMemoryStore()
	sess, wall := newTestSession(t, store)
	ctx := context.Background()

	sess.Update(ctx)
	wall.advance(30 * time.Second)
	sess.Update(ctx)

	planted, err := sess.Garden().Spawn(ctx, "turnip", session.DefaultRegion, sess.Clock().CurrentTime())
	require.NoError(t, err)

	require.NoError(t, sess.Save(ctx))

	restored, _ := newTestSession(t, store)
	require.NoError(t, restored.Load(ctx))

	assert.Equal(t, sess.Clock().CurrentTime(), restored.Clock().CurrentTime())

	got, ok := restored.Garden().Get(planted.InstanceID)
	require.True(t, ok)
	assert.Equal(t, planted.PlantedAt, got.PlantedAt)
}

func TestSession_ExplicitPausePersistsAcrossSaveLoad(t *testing.T) {
	store := save.NewMemoryStore()
	sess, _ := newTestSession(t, store)
	ctx := context.Background()

	sess.Pause().Pause()
	require.NoError(t, sess.Save(ctx))

	restored, wall := newTestSession(t, store)
	require.NoError(t, restored.Load(ctx))

	assert.True(t, restored.Clock().IsPaused(), "explicit pause survives save/load")
	assert.True(t, restored.Pause().IsExplicitlyPaused())

	// The restored pause lives in the controller, so the normal resume
	// path clears it and time advances again.
	restored.Pause().Resume()
	assert.False(t, restored.Clock().IsPaused())

	restored.Update(ctx)
	wall.advance(time.Second)
	restored.Update(ctx)
	assert.Equal(t, int64(24), restored.Clock().CurrentTime().TotalMinutes)
}

func TestSession_ContextualPauseDoesNotPersist(t *testing.T) {
	store := save.NewMemoryStore()
	sess, _ := newTestSession(t, store)
	ctx := context.Background()

	sess.Pause().EnterContext("menu")
	require.NoError(t, sess.Save(ctx))

	restored, _ := newTestSession(t, store)
	require.NoError(t, restored.Load(ctx))

	assert.False(t, restored.Clock().IsPaused(), "contextual pause is transient")
	assert.Empty(t, restored.Pause().ActiveContexts())
}

func TestSession_LoadFreshStoreIsFreshStart(t *testing.T) {
	sess, _ := newTestSession(t, save.NewMemoryStore())

	require.NoError(t, sess.Load(context.Background()))

	assert.Equal(t, int64(0), sess.Clock().CurrentTime().TotalMinutes)
	assert.Equal(t, 0, sess.Garden().Count())
}

func TestSession_SavePublishesSessionSavedEvent(t *testing.T) {
	catalog, err := species.NewCatalog(species.DefaultSpecies())
	require.NoError(t, err)

	bus := event.NewMemoryBus()
	var saved []event.SessionSavedPayloadV1
	bus.Subscribe(event.SessionSaved, func(ctx context.Context, evt event.Event) error {
		payload, ok := evt.Payload.(event.SessionSavedPayloadV1)
		require.True(t, ok)
		saved = append(saved, payload)
		return nil
	})

	cfg := clock.DefaultConfig()
	sess := session.New(cfg, catalog, bus, save.NewMemoryStore(), &fakeWall{now: time.Unix(1_700_000_000, 0)})

	require.NoError(t, sess.Save(context.Background()))
	require.Len(t, saved, 1)
	assert.Equal(t, 0, saved[0].PlantCount)
}
