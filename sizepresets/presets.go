// Package sizepresets gives mkfs a small table of named disk sizes,
// the same "named geometry, looked up by slug" shape the teacher uses
// for its own predefined disk geometries.
package sizepresets

import (
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
)

// Preset is one named disk-size entry.
type Preset struct {
	Slug        string `csv:"slug"`
	Name        string `csv:"name"`
	TotalBlocks uint32 `csv:"total_blocks"`
	Description string `csv:"description"`
}

//go:embed presets.csv
var rawCSV string

var presets map[string]Preset

func init() {
	presets = make(map[string]Preset)
	reader := strings.NewReader(rawCSV)
	err := gocsv.UnmarshalToCallback(reader, func(row Preset) error {
		if _, exists := presets[row.Slug]; exists {
			return fmt.Errorf("duplicate size preset slug %q", row.Slug)
		}
		presets[row.Slug] = row
		return nil
	})
	if err != nil && err != io.EOF {
		panic(err)
	}
}

// Get looks up a preset by slug.
func Get(slug string) (Preset, error) {
	p, ok := presets[slug]
	if !ok {
		return Preset{}, fmt.Errorf("no size preset named %q", slug)
	}
	return p, nil
}

// Slugs returns every known preset slug, for help text.
func Slugs() []string {
	out := make([]string, 0, len(presets))
	for s := range presets {
		out = append(out, s)
	}
	return out
}
