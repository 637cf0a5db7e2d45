// Package catalog holds the activity seed data the registry is built from.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Activity is one extracurricular offering as seeded. Participant state
// lives in the store, not here.
type Activity struct {
	Name        string
	Description string
	Schedule    string
}

// Builtin returns the default activity catalog. Order is the seed order.
func Builtin() []Activity {
	return []Activity{
		{Name: "Basketball", Description: "Learn basketball skills and join our competitive team", Schedule: "Monday & Wednesday, 3:30 PM"},
		{Name: "Soccer", Description: "Play soccer and develop teamwork skills", Schedule: "Tuesday & Thursday, 3:30 PM"},
		{Name: "Tennis", Description: "Master tennis techniques and compete in tournaments", Schedule: "Monday & Friday, 4:00 PM"},
		{Name: "Volleyball", Description: "Join our volleyball team and improve your athletic abilities", Schedule: "Wednesday & Saturday, 3:00 PM"},
		{Name: "Painting", Description: "Explore painting techniques and create beautiful artworks", Schedule: "Tuesday & Thursday, 4:00 PM"},
		{Name: "Theater", Description: "Perform in school plays and develop acting skills", Schedule: "Monday, Wednesday & Friday, 4:30 PM"},
		{Name: "Photography", Description: "Learn photography and capture the world through your lens", Schedule: "Saturday, 2:00 PM"},
		{Name: "Debate Club", Description: "Develop public speaking and argumentation skills", Schedule: "Tuesday & Thursday, 3:45 PM"},
		{Name: "Science Club", Description: "Conduct experiments and explore scientific concepts", Schedule: "Wednesday, 4:00 PM"},
		{Name: "Chess Club", Description: "Master chess strategy and compete with other players", Schedule: "Saturday, 1:00 PM"},
	}
}

type catalogFile struct {
	Activities map[string]struct {
		Description string `toml:"description"`
		Schedule    string `toml:"schedule"`
	} `toml:"activities"`
}

// LoadFile reads a TOML catalog that replaces the builtin seed:
//
//	[activities."Chess Club"]
//	description = "Master chess strategy"
//	schedule = "Saturday, 1:00 PM"
//
// Entries are returned sorted by name so seeding is deterministic.
func LoadFile(path string) ([]Activity, error) {
	var file catalogFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", path, err)
	}
	if len(file.Activities) == 0 {
		return nil, fmt.Errorf("catalog %s: no activities defined", path)
	}

	out := make([]Activity, 0, len(file.Activities))
	for name, entry := range file.Activities {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("catalog %s: activity with empty name", path)
		}
		out = append(out, Activity{
			Name:        name,
			Description: strings.TrimSpace(entry.Description),
			Schedule:    strings.TrimSpace(entry.Schedule),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
