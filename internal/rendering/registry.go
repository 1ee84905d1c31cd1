package rendering

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jonathan/resume-builder/internal/types"
	"golang.org/x/sync/errgroup"
)

// Registry maps template ids to validated style descriptors.
// It is immutable after construction and safe for concurrent use.
type Registry struct {
	styles map[string]Style
	ids    []string
}

// NewRegistry validates every descriptor and builds a registry.
// Any invalid or duplicate descriptor fails the whole registry.
func NewRegistry(styles []Style) (*Registry, error) {
	if len(styles) == 0 {
		return nil, &StyleError{Message: "registry has no templates"}
	}
	r := &Registry{styles: make(map[string]Style, len(styles))}
	for _, s := range styles {
		if err := s.validate(); err != nil {
			return nil, err
		}
		if _, dup := r.styles[s.ID]; dup {
			return nil, &StyleError{ID: s.ID, Message: "duplicate template id"}
		}
		r.styles[s.ID] = s.clone()
		r.ids = append(r.ids, s.ID)
	}
	sort.Strings(r.ids)
	return r, nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// DefaultRegistry returns the registry of built-in templates.
// It panics if the built-in table is invalid.
func DefaultRegistry() *Registry {
	defaultOnce.Do(func() {
		r, err := NewRegistry(builtinStyles())
		if err != nil {
			panic(fmt.Sprintf("built-in template table: %v", err))
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// IDs returns the template ids in sorted order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.ids...)
}

// Styles returns every descriptor in id order.
func (r *Registry) Styles() []Style {
	out := make([]Style, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.styles[id].clone())
	}
	return out
}

// Get returns the descriptor for id.
func (r *Registry) Get(id string) (Style, error) {
	s, ok := r.styles[id]
	if !ok {
		return Style{}, &TemplateNotFoundError{ID: id}
	}
	return s.clone(), nil
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.styles[id]
	return ok
}

// Verify renders sample against every template and target and returns the first
// failure. Used at startup and by the templates command.
func (r *Registry) Verify(ctx context.Context, sample types.RenderReadyResume) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, id := range r.ids {
		for _, target := range Targets() {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				if _, err := r.Render(id, sample, target); err != nil {
					return fmt.Errorf("template %s (%s): %w", id, target, err)
				}
				return nil
			})
		}
	}
	return g.Wait()
}

func (s Style) clone() Style {
	out := s
	out.Sections = append([]Section(nil), s.Sections...)
	if s.Sidebar != nil {
		out.Sidebar = append([]Section(nil), s.Sidebar...)
	}
	return out
}
