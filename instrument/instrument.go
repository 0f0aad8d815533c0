// Package instrument assembles the optical chain: a registry of named
// components whose surface descriptors are handed, in order, to the
// raytracing engine.
package instrument

import (
	"errors"
	"fmt"
	"sync"

	"github.com/solarlab/rowland-optics/core"
	"github.com/solarlab/rowland-optics/model"
)

var (
	ErrComponentExists = errors.New("component already exists")
	ErrBadComponent    = errors.New("invalid component")
)

// Instrument is an ordered, thread-safe registry of optical components.
// Order is insertion order, which is the order light encounters the
// surfaces.
type Instrument struct {
	mu         sync.RWMutex
	order      []string
	components map[string]core.Component
}

// New creates an empty instrument.
func New() *Instrument {
	return &Instrument{
		components: make(map[string]core.Component),
	}
}

// Add registers a component under an ID. It returns an error if the ID
// is empty, the component is nil, or the ID already exists.
func (ins *Instrument) Add(id string, c core.Component) error {
	if id == "" || c == nil {
		return fmt.Errorf("%w: empty ID or nil component", ErrBadComponent)
	}

	ins.mu.Lock()
	defer ins.mu.Unlock()

	if _, exists := ins.components[id]; exists {
		return fmt.Errorf("%w: %q", ErrComponentExists, id)
	}
	ins.components[id] = c
	ins.order = append(ins.order, id)
	return nil
}

// Component returns the component with the given ID, or nil if not
// found.
func (ins *Instrument) Component(id string) core.Component {
	ins.mu.RLock()
	defer ins.mu.RUnlock()
	return ins.components[id]
}

// IDs returns the component IDs in insertion order.
func (ins *Instrument) IDs() []string {
	ins.mu.RLock()
	defer ins.mu.RUnlock()

	out := make([]string, len(ins.order))
	copy(out, ins.order)
	return out
}

// Len returns the number of registered components.
func (ins *Instrument) Len() int {
	ins.mu.RLock()
	defer ins.mu.RUnlock()
	return len(ins.order)
}

// Surfaces derives the surface descriptor list in insertion order.
// Surfaces are recomputed from current component state on every call.
func (ins *Instrument) Surfaces() []model.Surface {
	ins.mu.RLock()
	defer ins.mu.RUnlock()

	out := make([]model.Surface, 0, len(ins.order))
	for _, id := range ins.order {
		out = append(out, ins.components[id].Surface())
	}
	return out
}
