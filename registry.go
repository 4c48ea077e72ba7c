package assist

import tea "github.com/charmbracelet/bubbletea"

// Registry holds the instances a host has created.
//
// Instances are only appended unless the host removes them explicitly; an
// instance's lifetime is normally the host's lifetime.
type Registry struct {
	factory   EditorFactory
	instances []*Instance
}

// NewRegistry returns a registry creating editors with factory, which must
// not be nil.
func NewRegistry(factory EditorFactory) *Registry {
	return &Registry{factory: factory}
}

func (r *Registry) Len() int { return len(r.instances) }

// Instances returns the registered instances in creation order.
func (r *Registry) Instances() []*Instance {
	return append([]*Instance(nil), r.instances...)
}

// Lookup returns the most recently created instance bound to target.
func (r *Registry) Lookup(target string) (*Instance, bool) {
	for i := len(r.instances) - 1; i >= 0; i-- {
		if inst := r.instances[i]; inst.target == target {
			return inst, true
		}
	}
	return nil, false
}

// Remove closes and drops every instance bound to target. It reports whether
// anything was removed.
func (r *Registry) Remove(target string) bool {
	kept := r.instances[:0]
	removed := false
	for _, inst := range r.instances {
		if inst.target == target {
			inst.Close()
			removed = true
			continue
		}
		kept = append(kept, inst)
	}
	clear(r.instances[len(kept):])
	r.instances = kept
	return removed
}

// Update routes instance-bound messages, such as the deferred notice check,
// to their owner. Other messages are ignored.
func (r *Registry) Update(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for _, inst := range r.instances {
		if cmd := inst.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (r *Registry) add(inst *Instance) {
	r.instances = append(r.instances, inst)
}
