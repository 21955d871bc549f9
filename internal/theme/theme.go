// Package theme loads the built-in theme tables: background colours by role
// for each light/dark variant, and the brand colour groups foregrounds are
// drawn from. The tables are embedded and parsed once.
package theme

import (
	"bytes"
	_ "embed"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/huetune/internal/colour"
	"github.com/jmylchreest/huetune/internal/palette"
)

//go:embed themes.toml
var builtin []byte

// DefaultName is the theme used when none is configured.
const DefaultName = "sourcegraph"

// Mode selects a theme variant.
type Mode string

const (
	// Light is dark text on light backgrounds.
	Light Mode = "light"
	// Dark is light text on dark backgrounds.
	Dark Mode = "dark"
)

// Modes returns both modes.
func Modes() []Mode {
	return []Mode{Light, Dark}
}

// ParseMode converts a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case Light, Dark:
		return m, nil
	default:
		return "", fmt.Errorf("invalid mode: %s (valid: light, dark)", s)
	}
}

// Variant is one mode of a theme as written in the table.
type Variant struct {
	Brand       []string          `toml:"brand"`
	Active      []string          `toml:"active"`
	Modifiable  []string          `toml:"modifiable"`
	Backgrounds map[string]string `toml:"backgrounds"`
}

// Theme is a named pair of variants.
type Theme struct {
	Name        string  `toml:"-"`
	Description string  `toml:"description"`
	Light       Variant `toml:"light"`
	Dark        Variant `toml:"dark"`
}

// Variant returns the variant for mode m.
func (t Theme) Variant(m Mode) Variant {
	if m == Dark {
		return t.Dark
	}
	return t.Light
}

// Catalog is the parsed theme table.
type Catalog struct {
	Brand  map[string][]string `toml:"brand"`
	Themes map[string]Theme    `toml:"themes"`
}

// Input is a resolved theme variant ready to build a palette from.
type Input struct {
	Theme       string
	Mode        Mode
	Backgrounds palette.Backgrounds
	Foregrounds []colour.Color
}

var (
	builtinOnce    sync.Once
	builtinCatalog *Catalog
	builtinErr     error
)

// Builtin returns the embedded catalog. It is parsed on first use and shared;
// callers must not modify it.
func Builtin() (*Catalog, error) {
	builtinOnce.Do(func() {
		builtinCatalog, builtinErr = Parse(builtin)
	})
	return builtinCatalog, builtinErr
}

// Parse decodes and validates a theme table.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to parse theme table: %w", err)
	}
	for name, t := range c.Themes {
		t.Name = name
		c.Themes[name] = t
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Themes) == 0 {
		return fmt.Errorf("theme table defines no themes")
	}
	for group, hexes := range c.Brand {
		for _, h := range hexes {
			if _, err := colour.ParseHex(h); err != nil {
				return fmt.Errorf("brand group %s: %w", group, err)
			}
		}
	}
	for _, name := range c.Names() {
		for _, m := range Modes() {
			if _, err := c.Resolve(name, m); err != nil {
				return err
			}
		}
	}
	return nil
}

// Names returns the theme names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BrandGroups returns the brand group names, sorted.
func (c *Catalog) BrandGroups() []string {
	groups := make([]string, 0, len(c.Brand))
	for g := range c.Brand {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}

// BrandColors returns the colours of one brand group.
func (c *Catalog) BrandColors(group string) ([]colour.Color, error) {
	hexes, ok := c.Brand[group]
	if !ok {
		return nil, fmt.Errorf("unknown brand group: %s", group)
	}
	out := make([]colour.Color, 0, len(hexes))
	for _, h := range hexes {
		col, err := colour.ParseHex(h)
		if err != nil {
			return nil, fmt.Errorf("brand group %s: %w", group, err)
		}
		out = append(out, col)
	}
	return out, nil
}

// Resolve turns a theme variant into palette input: backgrounds keyed by role
// and the concatenated brand groups as foregrounds.
func (c *Catalog) Resolve(name string, m Mode) (Input, error) {
	t, ok := c.Themes[name]
	if !ok {
		return Input{}, fmt.Errorf("unknown theme: %s (available: %s)", name, strings.Join(c.Names(), ", "))
	}
	v := t.Variant(m)
	in := Input{
		Theme: name,
		Mode:  m,
		Backgrounds: palette.Backgrounds{
			Slots: make(map[palette.Role]colour.Color, len(v.Backgrounds)),
		},
	}

	for role, hex := range v.Backgrounds {
		r, err := palette.ParseRole(role)
		if err != nil {
			return Input{}, fmt.Errorf("theme %s/%s: %w", name, m, err)
		}
		col, err := colour.ParseHex(hex)
		if err != nil {
			return Input{}, fmt.Errorf("theme %s/%s background %s: %w", name, m, role, err)
		}
		in.Backgrounds.Slots[r] = col
	}
	var err error
	if in.Backgrounds.Active, err = parseRoles(v.Active); err != nil {
		return Input{}, fmt.Errorf("theme %s/%s: %w", name, m, err)
	}
	if in.Backgrounds.Modifiable, err = parseRoles(v.Modifiable); err != nil {
		return Input{}, fmt.Errorf("theme %s/%s: %w", name, m, err)
	}
	if err := in.Backgrounds.Validate(); err != nil {
		return Input{}, fmt.Errorf("theme %s/%s: %w", name, m, err)
	}

	if len(v.Brand) == 0 {
		return Input{}, fmt.Errorf("theme %s/%s: no brand groups", name, m)
	}
	for _, group := range v.Brand {
		cols, err := c.BrandColors(group)
		if err != nil {
			return Input{}, fmt.Errorf("theme %s/%s: %w", name, m, err)
		}
		in.Foregrounds = append(in.Foregrounds, cols...)
	}
	return in, nil
}

// Colors returns every background slot in canonical role order followed by
// the foregrounds.
func (in Input) Colors() []colour.Color {
	var out []colour.Color
	for _, r := range palette.Roles() {
		if c, ok := in.Backgrounds.Slots[r]; ok {
			out = append(out, c)
		}
	}
	return append(out, in.Foregrounds...)
}

func parseRoles(names []string) ([]palette.Role, error) {
	roles := make([]palette.Role, 0, len(names))
	for _, n := range names {
		r, err := palette.ParseRole(n)
		if err != nil {
			return nil, err
		}
		roles = append(roles, r)
	}
	return slices.Clip(roles), nil
}
