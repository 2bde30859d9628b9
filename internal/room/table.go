package room

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// StartPattern names the template placed at the origin before generation.
const StartPattern = "starting_room"

// Pattern maps a file-name fragment to the attributes of the rooms it names.
type Pattern struct {
	Match  string
	Doors  Door
	Weight int
}

// Table is an ordered list of patterns; the first fragment contained in a
// file name wins.
type Table []Pattern

// DefaultTable is the built-in classification of the stock room models.
var DefaultTable = Table{
	{Match: "cross_room_0", Doors: North | South | East | West, Weight: 5},
	{Match: "deadend_0", Doors: South, Weight: 2},
	{Match: "deadend_90", Doors: East, Weight: 2},
	{Match: "deadend_180", Doors: North, Weight: 2},
	{Match: "deadend_270", Doors: West, Weight: 2},
	{Match: "hallway_0", Doors: North | South, Weight: 10},
	{Match: "hallway_90", Doors: East | West, Weight: 10},
	{Match: "L_room_0", Doors: South | East, Weight: 8},
	{Match: "L_room_90", Doors: East | North, Weight: 8},
	{Match: "L_room_180", Doors: West | North, Weight: 8},
	{Match: "L_room_270", Doors: West | South, Weight: 8},
	{Match: StartPattern, Doors: South, Weight: 0},
}

// Classify returns the first pattern whose fragment appears in name.
func (t Table) Classify(name string) (Pattern, bool) {
	for _, p := range t {
		if strings.Contains(name, p.Match) {
			return p, true
		}
	}
	return Pattern{}, false
}

// Classify looks name up in the default table.
func Classify(name string) (Pattern, bool) {
	return DefaultTable.Classify(name)
}

type tableFile struct {
	Rooms []struct {
		Pattern string `yaml:"pattern"`
		Doors   string `yaml:"doors"`
		Weight  int    `yaml:"weight"`
	} `yaml:"rooms"`
}

// LoadTable reads a pattern table from YAML:
//
//	rooms:
//	  - pattern: hallway_0
//	    doors: NS
//	    weight: 10
func LoadTable(path string) (Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read room table %s: %w", path, err)
	}
	var file tableFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse room table %s: %w", path, err)
	}

	table := make(Table, 0, len(file.Rooms))
	for i, r := range file.Rooms {
		if r.Pattern == "" {
			return nil, fmt.Errorf("room table %s: entry %d has no pattern", path, i)
		}
		doors, ok := ParseDoors(r.Doors)
		if !ok || doors == NoDoors {
			return nil, fmt.Errorf("room table %s: pattern %q has invalid doors %q", path, r.Pattern, r.Doors)
		}
		if r.Weight < 0 {
			return nil, fmt.Errorf("room table %s: pattern %q has negative weight", path, r.Pattern)
		}
		table = append(table, Pattern{Match: r.Pattern, Doors: doors, Weight: r.Weight})
	}
	return table, nil
}
