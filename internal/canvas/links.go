package canvas

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/hvacgrid/internal/component"
	"github.com/vk/hvacgrid/internal/ctxlog"
	"github.com/vk/hvacgrid/internal/topology"
)

// Link is an implicit edge from the item that provides a value to the item
// that consumes it through a named input slot.
type Link struct {
	From string // provider item id
	To   string // consumer item id
	Slot string
}

// Links derives the edges from every placed component's named inputs, in
// placement order and then slot declaration order. References that do not
// resolve to a placed component of the slot's type are reported together;
// the links that did resolve are still returned.
func (c *Canvas) Links(ctx context.Context) ([]Link, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	logger := ctxlog.FromContext(ctx)
	var links []Link
	var errs []error

	for _, id := range c.order {
		consumer := c.items[id].Component
		inputs := consumer.Inputs()
		for _, slot := range consumer.InputSlots() {
			ref, ok := inputs[slot.Name]
			if !ok {
				continue
			}
			provider, found := c.findLocked(ref)
			if !found {
				errs = append(errs, fmt.Errorf("%s input %q refers to %s, which is not on the canvas", component.Ref(consumer), slot.Name, ref))
				continue
			}
			if got := provider.Component.TypeName(); got != slot.Type {
				errs = append(errs, fmt.Errorf("%s input %q expects a %s, got %s", component.Ref(consumer), slot.Name, slot.Type, ref))
				continue
			}
			logger.Debug("Linking implicit input.", "from", ref, "to", component.Ref(consumer), "slot", slot.Name)
			links = append(links, Link{From: provider.ID, To: id, Slot: slot.Name})
		}
	}
	return links, errors.Join(errs...)
}

// Topology builds the link graph of the canvas. Every placed item is a node,
// keyed by item id. The graph is always returned; unresolved references are
// reported as by Links while the resolved links are still added.
func (c *Canvas) Topology(ctx context.Context) (*topology.Graph, error) {
	links, linkErr := c.Links(ctx)

	g := topology.New()
	for _, it := range c.Items() {
		g.AddNode(it.ID)
	}
	errs := []error{linkErr}
	for _, l := range links {
		if err := g.AddEdge(l.From, l.To); err != nil {
			errs = append(errs, err)
		}
	}
	return g, errors.Join(errs...)
}

// Downstream returns the items that consume, directly or through other
// items, a value provided by the item with the given id. Broken links are
// ignored.
func (c *Canvas) Downstream(ctx context.Context, id string) ([]Item, error) {
	if _, ok := c.Item(id); !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchItem, id)
	}
	g, _ := c.Topology(ctx)
	ids, err := g.Downstream(id)
	if err != nil {
		return nil, err
	}

	out := make([]Item, 0, len(ids))
	for _, did := range ids {
		if it, ok := c.Item(did); ok {
			out = append(out, it)
		}
	}
	return out, nil
}
