package keybindings

import "github.com/ovity/goline/internal/keys"

// Profile is a named set of Action -> physical-keystroke bindings. An
// action absent from Bindings keeps its canonical chord.
type Profile struct {
	Name        string
	Description string
	Bindings    map[Action]keys.Event
}

// DefaultProfile returns the profile matching the editor's built-in
// emacs-style chords verbatim (no overrides).
func DefaultProfile() *Profile {
	return &Profile{
		Name:        "default",
		Description: "Default keybindings (emacs-style, matches the built-in dispatch table)",
		Bindings:    map[Action]keys.Event{},
	}
}

// Resolver rewrites an incoming physical keystroke back to the canonical
// chord the editor's dispatch loop expects, per the active Profile.
type Resolver struct {
	profile   *Profile
	physToAct map[keys.Event]Action
}

// NewResolver builds a Resolver from p. A nil p resolves to DefaultProfile.
func NewResolver(p *Profile) *Resolver {
	if p == nil {
		p = DefaultProfile()
	}
	r := &Resolver{profile: p, physToAct: make(map[keys.Event]Action, len(p.Bindings))}
	for action, phys := range p.Bindings {
		if canon, ok := canonical[action]; ok && phys != canon {
			r.physToAct[phys] = action
		}
	}
	return r
}

// Profile returns the active profile.
func (r *Resolver) Profile() *Profile { return r.profile }

// Resolve rewrites ev to the canonical chord for its bound action, or
// returns ev unchanged if it isn't overridden by the active profile.
func (r *Resolver) Resolve(ev keys.Event) keys.Event {
	action, ok := r.physToAct[ev]
	if !ok {
		return ev
	}
	canon, ok := canonical[action]
	if !ok {
		return ev
	}
	return canon
}

// Bind overrides action's physical keystroke to ev in place.
func (r *Resolver) Bind(action Action, ev keys.Event) {
	if r.profile.Bindings == nil {
		r.profile.Bindings = map[Action]keys.Event{}
	}
	if old, ok := r.profile.Bindings[action]; ok && r.physToAct[old] == action {
		delete(r.physToAct, old)
	}
	r.profile.Bindings[action] = ev
	if canon, ok := canonical[action]; ok && ev != canon {
		r.physToAct[ev] = action
	}
}

// KeyFor returns the physical keystroke currently bound to action (its
// override if set, otherwise its canonical chord).
func (r *Resolver) KeyFor(action Action) (keys.Event, bool) {
	if ev, ok := r.profile.Bindings[action]; ok {
		return ev, true
	}
	return Canonical(action)
}
