package core

import "strconv"

// Stat is a single labelled value shown on the HUD or printed by tools.
type Stat struct {
	Key   string
	Label string
	Value string
}

// StatGroup clusters related stats for presentation purposes.
type StatGroup struct {
	Name  string
	Stats []Stat
}

// StatsSnapshot captures the current state of a world for presentation.
type StatsSnapshot struct {
	Groups []StatGroup
}

// Lookup returns the value recorded under key.
func (s StatsSnapshot) Lookup(key string) (string, bool) {
	for _, g := range s.Groups {
		for _, st := range g.Stats {
			if st.Key == key {
				return st.Value, true
			}
		}
	}
	return "", false
}

// IntStat formats an integer stat.
func IntStat(key, label string, value int) Stat {
	return Stat{Key: key, Label: label, Value: strconv.Itoa(value)}
}

// Uint64Stat formats an unsigned stat.
func Uint64Stat(key, label string, value uint64) Stat {
	return Stat{Key: key, Label: label, Value: strconv.FormatUint(value, 10)}
}

// FloatStat formats a floating point stat.
func FloatStat(key, label string, value float64) Stat {
	return Stat{Key: key, Label: label, Value: strconv.FormatFloat(value, 'f', 2, 64)}
}

// StringStat records a preformatted stat.
func StringStat(key, label, value string) Stat {
	return Stat{Key: key, Label: label, Value: value}
}
