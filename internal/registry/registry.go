// Package registry is the process-wide index of authored levels. The
// catalog registers the campaign in init(), and callers look levels up by
// id without depending on where they were loaded from.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/snowgroomer/internal/level"
)

// Info is the listing entry of a registered level.
type Info struct {
	ID         int
	Name       string
	Difficulty level.Difficulty
}

var (
	levels = make(map[int]level.Descriptor)
	mu     sync.RWMutex
)

// Register adds an authored level.
// Panics if the id is already registered or falls in the generated range.
func Register(d level.Descriptor) {
	mu.Lock()
	defer mu.Unlock()

	if d.IsGenerated() {
		panic(fmt.Sprintf("registry: level id %d is reserved for generated levels", d.ID))
	}
	if _, exists := levels[d.ID]; exists {
		panic(fmt.Sprintf("registry: level %d already registered", d.ID))
	}
	levels[d.ID] = d.Clone()
}

// List returns information about all registered levels, sorted by id.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(levels))
	for id, d := range levels {
		result = append(result, Info{ID: id, Name: d.Name, Difficulty: d.Difficulty})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// All returns copies of every registered level, sorted by id.
func All() []level.Descriptor {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]level.Descriptor, 0, len(levels))
	for _, d := range levels {
		result = append(result, d.Clone())
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Get returns a copy of the level with the given id.
// Returns an error if the id is not registered.
func Get(id int) (level.Descriptor, error) {
	mu.RLock()
	defer mu.RUnlock()

	d, ok := levels[id]
	if !ok {
		return level.Descriptor{}, fmt.Errorf("registry: unknown level %d", id)
	}
	return d.Clone(), nil
}

// Exists checks if a level with the given id is registered.
func Exists(id int) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := levels[id]
	return ok
}
