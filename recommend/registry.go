package recommend

import (
	"fmt"

	"github.com/mager/cochlea/catalog"
	"github.com/mager/cochlea/features"
)

// Registry holds one Engine per configured mode.
type Registry struct {
	engines map[string]*Engine
	modes   []string
	def     string
}

// NewRegistry builds an Engine for every config. The first config is the
// default mode unless SetDefault picks another.
func NewRegistry(cat *catalog.Catalog, cfgs []features.Config, opts Settings) (*Registry, error) {
	if len(cfgs) == 0 {
		return nil, fmt.Errorf("recommend: no modes configured")
	}
	r := &Registry{engines: make(map[string]*Engine, len(cfgs))}
	for _, cfg := range cfgs {
		if _, dup := r.engines[cfg.Name]; dup {
			return nil, fmt.Errorf("recommend: mode %q configured twice", cfg.Name)
		}
		e, err := NewEngine(cat, cfg, opts)
		if err != nil {
			return nil, err
		}
		r.engines[cfg.Name] = e
		r.modes = append(r.modes, cfg.Name)
	}
	r.def = r.modes[0]
	return r, nil
}

func (r *Registry) SetDefault(mode string) error {
	if _, ok := r.engines[mode]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	r.def = mode
	return nil
}

// Engine returns the engine for mode; "" selects the default.
func (r *Registry) Engine(mode string) (*Engine, error) {
	if mode == "" {
		mode = r.def
	}
	e, ok := r.engines[mode]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	return e, nil
}

func (r *Registry) Default() *Engine {
	return r.engines[r.def]
}

// Modes lists mode names in configuration order.
func (r *Registry) Modes() []string {
	return append([]string(nil), r.modes...)
}
