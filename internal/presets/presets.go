package presets

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"fair_rps/internal/game"

	"gopkg.in/yaml.v3"
)

var ErrUnknownPreset = errors.New("unknown preset")

// File is the on-disk schema:
//
//	presets:
//	  rpsls: [rock, paper, scissors, lizard, spock]
type File struct {
	Presets map[string][]string `yaml:"presets"`
}

// Builtin presets used when no file is present. Files may override them.
var Builtin = map[string][]string{
	"classic": {"rock", "paper", "scissors"},
	"rpsls":   {"rock", "paper", "scissors", "lizard", "spock"},
	"rps7":    {"rock", "fire", "scissors", "sponge", "paper", "air", "water"},
}

// Catalog is a read-mostly set of named move sets.
type Catalog struct {
	mu      sync.RWMutex
	presets map[string][]string
}

func NewCatalog() *Catalog {
	c := &Catalog{presets: make(map[string][]string, len(Builtin))}
	for k, v := range Builtin {
		c.presets[k] = append([]string(nil), v...)
	}
	return c
}

// Load returns the builtin catalog merged with path. A missing file is not an
// error. Every preset in the file must be a valid move set.
func Load(path string) (*Catalog, error) {
	c := NewCatalog()
	if path == "" {
		return c, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return nil, fmt.Errorf("read presets: %w", err)
	}
	if err := c.merge(b); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func (c *Catalog) merge(b []byte) error {
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for name, labels := range f.Presets {
		if _, err := game.NewMoveSet(labels); err != nil {
			return fmt.Errorf("preset %q: %w", name, err)
		}
		c.presets[name] = append([]string(nil), labels...)
	}
	return nil
}

// Lookup returns the named preset as a validated move set.
func (c *Catalog) Lookup(name string) (game.MoveSet, error) {
	c.mu.RLock()
	labels, ok := c.presets[name]
	c.mu.RUnlock()
	if !ok {
		return game.MoveSet{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return game.NewMoveSet(labels)
}

// Names returns preset names sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.presets))
	for k := range c.presets {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// All returns a copy of every preset.
func (c *Catalog) All() map[string][]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string][]string, len(c.presets))
	for k, v := range c.presets {
		out[k] = append([]string(nil), v...)
	}
	return out
}
