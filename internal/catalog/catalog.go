// Package catalog holds the authored campaign and loads custom level packs
// from disk. The campaign is embedded and registered at init.
package catalog

import (
	_ "embed"
	"fmt"

	"github.com/vovakirdan/snowgroomer/internal/level"
	"github.com/vovakirdan/snowgroomer/internal/registry"
)

//go:embed campaign/campaign.yaml
var campaignYAML []byte

func init() {
	levels, err := ParseYAML(campaignYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded campaign: %v", err))
	}
	for _, d := range levels {
		registry.Register(d)
	}
}

// Campaign returns the authored levels in order.
func Campaign() []level.Descriptor {
	return registry.All()
}

// Get returns the authored level with the given id.
func Get(id int) (level.Descriptor, error) {
	return registry.Get(id)
}
