package canvas

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/vk/hvacgrid/internal/component"
	"github.com/vk/hvacgrid/internal/ctxlog"
	"github.com/vk/hvacgrid/internal/editor"
	"github.com/vk/hvacgrid/internal/registry"
)

const (
	// ItemWidth and ItemHeight are the size of a placed item in scene units.
	ItemWidth  = 100
	ItemHeight = 50

	ZoomStep = 1.15
	MinZoom  = 0.1
	MaxZoom  = 10.0
)

// ErrNoSuchItem is returned for an item id that is not on the canvas.
var ErrNoSuchItem = errors.New("no such item")

// Point is a position in scene coordinates.
type Point struct {
	X, Y float64
}

// Item is a component placed on the canvas. Pos is the top-left corner.
type Item struct {
	ID        string
	Component component.Component
	Pos       Point
}

// Contains reports whether p lies inside the item's rectangle.
func (it Item) Contains(p Point) bool {
	return p.X >= it.Pos.X && p.X < it.Pos.X+ItemWidth &&
		p.Y >= it.Pos.Y && p.Y < it.Pos.Y+ItemHeight
}

// Canvas holds placed items in placement order.
type Canvas struct {
	mu      sync.RWMutex
	factory *component.Factory
	reg     *registry.Registry
	items   map[string]*Item
	order   []string
	zoom    float64
}

// New creates an empty canvas at zoom 1.
func New(factory *component.Factory, reg *registry.Registry) *Canvas {
	return &Canvas{
		factory: factory,
		reg:     reg,
		items:   make(map[string]*Item),
		zoom:    1,
	}
}

// Drop creates a component of typeName with a generated name, such as
// "envelope_1", and places it at pos.
func (c *Canvas) Drop(ctx context.Context, typeName string, pos Point) (Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	name := c.nextName(typeName)
	comp, err := c.factory.New(typeName, name)
	if err != nil {
		return Item{}, fmt.Errorf("drop %q: %w", typeName, err)
	}
	return c.placeLocked(ctx, comp, pos)
}

// Place adds an existing component at pos. Two items may not hold
// components with the same "Type.name" reference.
func (c *Canvas) Place(ctx context.Context, comp component.Component, pos Point) (Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.findLocked(component.Ref(comp)); ok {
		return Item{}, fmt.Errorf("component %s is already on the canvas", component.Ref(comp))
	}
	return c.placeLocked(ctx, comp, pos)
}

func (c *Canvas) placeLocked(ctx context.Context, comp component.Component, pos Point) (Item, error) {
	it := &Item{ID: uuid.New().String(), Component: comp, Pos: pos}
	c.items[it.ID] = it
	c.order = append(c.order, it.ID)
	ctxlog.FromContext(ctx).Debug("Item placed on canvas.", "item", it.ID, "component", component.Ref(comp), "x", pos.X, "y", pos.Y)
	return *it, nil
}

// nextName returns the first "<type>_<n>" name not used by a placed item.
func (c *Canvas) nextName(typeName string) string {
	prefix := strings.ToLower(typeName)
	for n := 1; ; n++ {
		name := fmt.Sprintf("%s_%d", prefix, n)
		if _, taken := c.findLocked(typeName + "." + name); !taken {
			return name
		}
	}
}

// Move sets the position of an item.
func (c *Canvas) Move(id string, pos Point) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	it, ok := c.items[id]
	if !ok {
		return fmt.Errorf("move %s: %w", id, ErrNoSuchItem)
	}
	it.Pos = pos
	return nil
}

// Item returns the item with the given id.
func (c *Canvas) Item(id string) (Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, ok := c.items[id]
	if !ok {
		return Item{}, false
	}
	return *it, true
}

// Items returns all items in placement order.
func (c *Canvas) Items() []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Item, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.items[id])
	}
	return out
}

// Find returns the item holding the component with the given reference.
func (c *Canvas) Find(ref string) (Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.findLocked(ref)
}

func (c *Canvas) findLocked(ref string) (Item, bool) {
	for _, id := range c.order {
		if it := c.items[id]; component.Ref(it.Component) == ref {
			return *it, true
		}
	}
	return Item{}, false
}

// ItemAt returns the topmost item containing p. Later placements are on top.
func (c *Canvas) ItemAt(p Point) (Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for i := len(c.order) - 1; i >= 0; i-- {
		if it := c.items[c.order[i]]; it.Contains(p) {
			return *it, true
		}
	}
	return Item{}, false
}

// EditProperties opens a property edit session for the item's component.
func (c *Canvas) EditProperties(ctx context.Context, id string) (*editor.Session, error) {
	it, ok := c.Item(id)
	if !ok {
		return nil, fmt.Errorf("edit properties of %s: %w", id, ErrNoSuchItem)
	}
	return editor.Open(ctx, c.reg, it.Component)
}
