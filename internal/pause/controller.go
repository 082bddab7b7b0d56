// Package pause composes explicit pause requests with transient contextual
// pause sources (open menus, battles) into the single gate the clock
// consults. Contexts are tracked as a set so overlapping sources don't cause
// a premature resume when one closes while another is still open.
package pause

import "sync"

// ResumeHook is invoked on every transition out of any paused state. The
// clock registers its wall-sample rebaseline here so time spent in a
// contextual pause is excluded from elapsed-time accounting exactly like an
// explicit pause.
type ResumeHook func()

// Controller tracks explicit and contextual pause state.
type Controller struct {
	mu       sync.Mutex
	explicit bool
	contexts map[string]struct{}
	onResume []ResumeHook
}

// NewController creates a controller with no active pause sources.
func NewController() *Controller {
	return &Controller{
		contexts: make(map[string]struct{}),
	}
}

// OnResume registers a hook invoked whenever the controller transitions from
// paused to unpaused. Hooks run in registration order.
func (c *Controller) OnResume(hook ResumeHook) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onResume = append(c.onResume, hook)
}

// IsPaused reports whether any pause source is active.
func (c *Controller) IsPaused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pausedLocked()
}

// Pause sets the explicit pause flag.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.explicit = true
}

// Resume clears the explicit pause flag. Contextual sources remain in effect.
func (c *Controller) Resume() {
	c.transition(func() { c.explicit = false })
}

// IsExplicitlyPaused reports whether the explicit flag is set, ignoring
// contextual sources. This is the only part of the pause state that belongs
// in a save slot; contexts are transient by definition.
func (c *Controller) IsExplicitlyPaused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.explicit
}

// EnterContext activates a named contextual pause source, e.g. "menu" or
// "battle". Entering an already-active context is a no-op.
func (c *Controller) EnterContext(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.contexts[name] = struct{}{}
}

// ExitContext deactivates a contextual pause source. Exiting a context that
// was never entered is a no-op.
func (c *Controller) ExitContext(name string) {
	c.transition(func() { delete(c.contexts, name) })
}

// ActiveContexts returns the names of currently active contextual sources.
func (c *Controller) ActiveContexts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.contexts))
	for name := range c.contexts {
		names = append(names, name)
	}
	return names
}

// transition applies a state change and fires resume hooks if it unpaused
// the controller. Hooks run outside the lock.
func (c *Controller) transition(apply func()) {
	c.mu.Lock()
	wasPaused := c.pausedLocked()
	apply()
	resumed := wasPaused && !c.pausedLocked()
	hooks := c.onResume
	c.mu.Unlock()

	if !resumed {
		return
	}
	for _, hook := range hooks {
		hook()
	}
}

func (c *Controller) pausedLocked() bool {
	return c.explicit || len(c.contexts) > 0
}
