// Package catalog holds the fixed, ordered fleet of models the router chooses from.
//
// Order is priority order (fastest first in the common case), not tier order; tier
// filtering is a separate view that keeps relative order. Each descriptor is bound to
// its backend adapter once, when the catalog is built.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"modelrouter/internal/backend"
	"modelrouter/pkg/types"
)

var (
	ErrEmpty       = errors.New("catalog has no models")
	ErrDuplicateID = errors.New("duplicate model id")
)

// Catalog is immutable after New and safe for concurrent reads.
type Catalog struct {
	models   []types.ModelDescriptor
	adapters []backend.Adapter
	index    map[string]int
}

// New validates descs and binds every descriptor to the adapter for its backend.
func New(descs []types.ModelDescriptor, adapters backend.Set) (*Catalog, error) {
	if len(descs) == 0 {
		return nil, ErrEmpty
	}
	c := &Catalog{
		models:   make([]types.ModelDescriptor, len(descs)),
		adapters: make([]backend.Adapter, len(descs)),
		index:    make(map[string]int, len(descs)),
	}
	for i, d := range descs {
		if strings.TrimSpace(d.ID) == "" {
			return nil, fmt.Errorf("model #%d: empty id", i)
		}
		if _, dup := c.index[d.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, d.ID)
		}
		if !d.Tier.Valid() {
			return nil, fmt.Errorf("model %s: invalid tier %d", d.ID, int(d.Tier))
		}
		a, err := adapters.Get(d.Backend)
		if err != nil {
			return nil, fmt.Errorf("model %s: %w", d.ID, err)
		}
		if d.DisplayName == "" {
			d.DisplayName = d.ID
		}
		if d.ParamSize == "" {
			d.ParamSize = types.Unknown
		}
		if d.Quantization == "" {
			d.Quantization = types.Unknown
		}
		c.models[i] = d
		c.adapters[i] = a
		c.index[d.ID] = i
	}
	return c, nil
}

// All returns a copy of the fleet in priority order.
func (c *Catalog) All() []types.ModelDescriptor {
	out := make([]types.ModelDescriptor, len(c.models))
	copy(out, c.models)
	return out
}

func (c *Catalog) Len() int { return len(c.models) }

// ByID looks up a descriptor.
func (c *Catalog) ByID(id string) (types.ModelDescriptor, bool) {
	i, ok := c.index[id]
	if !ok {
		return types.ModelDescriptor{}, false
	}
	return c.models[i], true
}

// ByTier returns the descriptors of one tier in catalog order.
func (c *Catalog) ByTier(t types.Tier) []types.ModelDescriptor {
	return c.ByTiers(t)
}

// ByTiers returns the descriptors whose tier is any of tiers, in catalog order.
func (c *Catalog) ByTiers(tiers ...types.Tier) []types.ModelDescriptor {
	var out []types.ModelDescriptor
	for _, m := range c.models {
		for _, t := range tiers {
			if m.Tier == t {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

// Adapter returns the adapter bound to model id.
func (c *Catalog) Adapter(id string) (backend.Adapter, bool) {
	i, ok := c.index[id]
	if !ok {
		return nil, false
	}
	return c.adapters[i], true
}
