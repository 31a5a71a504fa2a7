// Package registry maps game IDs to factories. Game packages register
// themselves from init, so the platform and the CLI can list and create
// games by name without importing them directly.
package registry

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/pickfire/bugs/internal/core"
)

// Game is what the terminal platform drives. Implementations hold pure
// simulation state: the platform owns input, timing and the terminal.
type Game interface {
	// ID is the stable name used by the CLI and the score store.
	ID() string
	Title() string

	// Reset starts a fresh session sized and seeded by cfg. It is called
	// before the first Step and again on every restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst.
	Render(dst *core.Screen)

	State() core.GameState
}

// Paced is implemented by games that simulate at their own fixed rate
// rather than once per render frame.
type Paced interface {
	TickRate() int
	MaxStepsPerFrame() int
}

// Resizer is implemented by games that can follow a terminal resize
// without a restart.
type Resizer interface {
	Resize(w, h int)
}

// Describer is implemented by games with a one-line summary for menus.
type Describer interface {
	Description() string
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID          string
	Title       string
	Description string // empty unless the game is a Describer
}

// Factory returns a new, not yet reset, game.
type Factory func() Game

type entry struct {
	info GameInfo
	new  Factory
}

var (
	mu      sync.RWMutex
	entries = map[string]entry{}
)

// Register adds a factory under id. It panics if id is taken, since two
// games claiming one name is a build mistake.
func Register(id string, f Factory) {
	// One throwaway instance supplies the metadata.
	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if d, ok := g.(Describer); ok {
		info.Description = d.Description()
	}

	mu.Lock()
	defer mu.Unlock()
	if _, taken := entries[id]; taken {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{info: info, new: f}
}

// List returns every registered game ordered by ID.
func List() []GameInfo {
	mu.RLock()
	infos := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		infos = append(infos, e.info)
	}
	mu.RUnlock()

	slices.SortFunc(infos, func(a, b GameInfo) int { return cmp.Compare(a.ID, b.ID) })
	return infos
}

// Create returns a new instance of the game registered as id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.new(), nil
}

func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := entries[id]
	return ok
}
