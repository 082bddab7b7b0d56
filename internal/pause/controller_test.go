package pause_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/greenhollow/almanac/internal/pause"
)

func TestController_ExplicitPause(t *testing.T) {
	c := pause.NewController()
	assert.False(t, c.IsPaused())

	c.Pause()
	assert.True(t, c.IsPaused())

	c.Resume()
	assert.False(t, c.IsPaused())
}

func TestController_ContextualPause(t *testing.T) {
	c := pause.NewController()

	c.EnterContext("menu")
	assert.True(t, c.IsPaused())

	c.EnterContext("battle")
	assert.ElementsMatch(t, []string{"menu", "battle"}, c.ActiveContexts())

	// One source closing does not resume while another remains
	c.ExitContext("menu")
	assert.True(t, c.IsPaused())

	c.ExitContext("battle")
	assert.False(t, c.IsPaused())
}

func TestController_IsExplicitlyPausedIgnoresContexts(t *testing.T) {
	c := pause.NewController()

	c.EnterContext("menu")
	assert.False(t, c.IsExplicitlyPaused())

	c.Pause()
	assert.True(t, c.IsExplicitlyPaused())

	c.Resume()
	assert.False(t, c.IsExplicitlyPaused())
}

func TestController_ReenteringContextIsIdempotent(t *testing.T) {
	c := pause.NewController()

	c.EnterContext("menu")
	c.EnterContext("menu")
	c.ExitContext("menu")

	assert.False(t, c.IsPaused())
}

func TestController_ExitUnknownContextIsNoOp(t *testing.T) {
	c := pause.NewController()

	c.ExitContext("never-entered")

	assert.False(t, c.IsPaused())
}

func TestController_ExplicitAndContextualCompose(t *testing.T) {
	c := pause.NewController()

	c.Pause()
	c.EnterContext("menu")

	c.Resume()
	assert.True(t, c.IsPaused(), "contextual source should keep the gate closed")

	c.ExitContext("menu")
	assert.False(t, c.IsPaused())
}

func TestController_ResumeHookFiresOnlyOnTransition(t *testing.T) {
	c := pause.NewController()

	fired := 0
	c.OnResume(func() { fired++ })

	// Resume while already unpaused is not a transition
	c.Resume()
	assert.Equal(t, 0, fired)

	c.Pause()
	c.Resume()
	assert.Equal(t, 1, fired)

	// Exiting the last context is a transition; clearing explicit pause
	// while a context is still open is not.
	c.Pause()
	c.EnterContext("menu")
	c.Resume()
	assert.Equal(t, 1, fired)
	c.ExitContext("menu")
	assert.Equal(t, 2, fired)
}
