// Package palette holds the mutable state the optimiser searches over:
// semantic background slots, the flat foreground sequence, and the reference
// colours both are anchored to.
package palette

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jmylchreest/huetune/internal/colour"
	"github.com/jmylchreest/huetune/internal/cost"
)

// Role names a semantic background slot.
type Role string

const (
	// RoleMain is the page background.
	RoleMain Role = "main"
	// RoleRangeSelection is a mouse selection inside text.
	RoleRangeSelection Role = "range_selection"
	// RoleLineSelection is a selection made from the line-number gutter.
	RoleLineSelection    Role = "line_selection"
	RoleGitAdded         Role = "git_added"
	RoleGitLineSelection Role = "git_line_selection"
	RoleGitDeleted       Role = "git_deleted"
)

// Roles returns every role in canonical order.
func Roles() []Role {
	return []Role{
		RoleMain,
		RoleRangeSelection,
		RoleLineSelection,
		RoleGitAdded,
		RoleGitLineSelection,
		RoleGitDeleted,
	}
}

// ParseRole validates a role name.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !slices.Contains(Roles(), r) {
		return "", fmt.Errorf("unknown background role: %s", s)
	}
	return r, nil
}

// Errors returned by New.
var (
	ErrTooFewForegrounds = errors.New("at least two foreground colours are required")
	ErrNoActive          = errors.New("no active background roles")
)

// Backgrounds is the semantic view of a theme's background colours. Active
// roles are scored; modifiable roles are searched over and must be active.
type Backgrounds struct {
	Slots      map[Role]colour.Color
	Active     []Role
	Modifiable []Role
}

// Get returns the colour in a slot.
func (b Backgrounds) Get(r Role) colour.Color {
	return b.Slots[r]
}

// Validate checks that every referenced role has a slot and that modifiable
// roles are a subset of the active ones.
func (b Backgrounds) Validate() error {
	if len(b.Active) == 0 {
		return ErrNoActive
	}
	for r := range b.Slots {
		if _, err := ParseRole(string(r)); err != nil {
			return err
		}
	}
	for _, r := range b.Active {
		if _, ok := b.Slots[r]; !ok {
			return fmt.Errorf("active role %s has no colour", r)
		}
	}
	if dup := firstDuplicate(b.Active); dup != "" {
		return fmt.Errorf("active role %s listed twice", dup)
	}
	if dup := firstDuplicate(b.Modifiable); dup != "" {
		return fmt.Errorf("modifiable role %s listed twice", dup)
	}
	for _, r := range b.Modifiable {
		if !slices.Contains(b.Active, r) {
			return fmt.Errorf("modifiable role %s is not active", r)
		}
	}
	return nil
}

// Clone returns a deep copy.
func (b Backgrounds) Clone() Backgrounds {
	slots := make(map[Role]colour.Color, len(b.Slots))
	for r, c := range b.Slots {
		slots[r] = c
	}
	return Backgrounds{
		Slots:      slots,
		Active:     slices.Clone(b.Active),
		Modifiable: slices.Clone(b.Modifiable),
	}
}

// ActiveColors returns the active slot colours in Active order.
func (b Backgrounds) ActiveColors() []colour.Color {
	return b.appendActive(nil)
}

func (b Backgrounds) appendActive(dst []colour.Color) []colour.Color {
	for _, r := range b.Active {
		dst = append(dst, b.Slots[r])
	}
	return dst
}

func firstDuplicate(roles []Role) Role {
	seen := make(map[Role]bool, len(roles))
	for _, r := range roles {
		if seen[r] {
			return r
		}
		seen[r] = true
	}
	return ""
}

// Palette is the optimisation subject. Modifiable backgrounds are held twice:
// in the flat array addressed by ColorAt and in the semantic slots the cost
// model reads. SyncBackground must follow every flat-array write before the
// palette is scored again.
type Palette struct {
	bgs  Backgrounds
	flat []colour.Color
	fgs  []colour.Color

	targetBgs []colour.Color
	targetFgs []colour.Color

	weights cost.Weights

	active []colour.Color
	slots  []colour.Color
}

// New builds a palette whose foregrounds start at the given targets and whose
// modifiable backgrounds are anchored to their own starting colours. The
// weights are validated and initialised.
func New(bgs Backgrounds, targetForegrounds []colour.Color, w cost.Weights) (*Palette, error) {
	if len(targetForegrounds) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewForegrounds, len(targetForegrounds))
	}
	if err := bgs.Validate(); err != nil {
		return nil, fmt.Errorf("invalid backgrounds: %w", err)
	}
	if err := w.Initialize(); err != nil {
		return nil, err
	}

	p := &Palette{
		bgs:       bgs.Clone(),
		fgs:       slices.Clone(targetForegrounds),
		targetFgs: slices.Clone(targetForegrounds),
		weights:   w,
	}
	for _, r := range p.bgs.Modifiable {
		p.flat = append(p.flat, p.bgs.Slots[r])
	}
	p.targetBgs = slices.Clone(p.flat)
	return p, nil
}

// SlotCount is the size of the index space ColorAt addresses: foregrounds
// followed by modifiable backgrounds.
func (p *Palette) SlotCount() int {
	return len(p.fgs) + len(p.flat)
}

// ColorAt returns a pointer to slot i. Writes to a background slot are not
// visible to the semantic view until SyncBackground(i).
func (p *Palette) ColorAt(i int) *colour.Color {
	if i < len(p.fgs) {
		return &p.fgs[i]
	}
	return &p.flat[i-len(p.fgs)]
}

// SyncBackground copies flat background slot i into its semantic slot. It is a
// no-op for foreground indices.
func (p *Palette) SyncBackground(i int) {
	if i < len(p.fgs) {
		return
	}
	j := i - len(p.fgs)
	p.bgs.Slots[p.bgs.Modifiable[j]] = p.flat[j]
}

// Weights returns the initialised weights.
func (p *Palette) Weights() cost.Weights {
	return p.weights
}

// Backgrounds returns the active backgrounds from the semantic slots. The slice
// is reused by the next call.
func (p *Palette) Backgrounds() []colour.Color {
	p.active = p.bgs.appendActive(p.active[:0])
	return p.active
}

// SlotBackgrounds returns every filled semantic slot in canonical role order,
// including inactive ones. The slice is reused by the next call.
func (p *Palette) SlotBackgrounds() []colour.Color {
	p.slots = p.slots[:0]
	for _, r := range Roles() {
		if c, ok := p.bgs.Slots[r]; ok {
			p.slots = append(p.slots, c)
		}
	}
	return p.slots
}

// Foregrounds returns the live foreground slice.
func (p *Palette) Foregrounds() []colour.Color {
	return p.fgs
}

// ModifiableBackgrounds returns the live flat background array.
func (p *Palette) ModifiableBackgrounds() []colour.Color {
	return p.flat
}

// TargetBackgrounds returns the background reference colours.
func (p *Palette) TargetBackgrounds() []colour.Color {
	return p.targetBgs
}

// TargetForegrounds returns the foreground reference colours.
func (p *Palette) TargetForegrounds() []colour.Color {
	return p.targetFgs
}

// Snapshot returns an immutable copy of the palette's current colours.
func (p *Palette) Snapshot() Snapshot {
	s := Snapshot{
		Active:      slices.Clone(p.bgs.Active),
		Modifiable:  slices.Clone(p.bgs.Modifiable),
		Foregrounds: slices.Clone(p.fgs),
	}
	for _, r := range Roles() {
		if c, ok := p.bgs.Slots[r]; ok {
			s.Backgrounds = append(s.Backgrounds, Slot{Role: r, Color: c})
		}
	}
	return s
}

var _ cost.Subject = (*Palette)(nil)
