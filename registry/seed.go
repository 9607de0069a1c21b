package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SeedActivity is one activity in the startup seed. The name lives here
// rather than on Activity because the HTTP listing keys activities by name.
type SeedActivity struct {
	Name     string `yaml:"name"`
	Activity `yaml:",inline"`
}

// DefaultSeed returns the built-in activity roster used when no seed file
// is configured.
func DefaultSeed() []SeedActivity {
	return []SeedActivity{
		{
			Name: "Chess Club",
			Activity: Activity{
				Description:     "Learn strategies and compete in chess tournaments",
				Schedule:        "Fridays, 3:30 PM - 5:00 PM",
				MaxParticipants: 12,
				Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
			},
		},
		{
			Name: "Programming Class",
			Activity: Activity{
				Description:     "Learn programming fundamentals and build software projects",
				Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
				MaxParticipants: 20,
				Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
			},
		},
		{
			Name: "Gym Class",
			Activity: Activity{
				Description:     "Physical education and sports activities",
				Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
				MaxParticipants: 30,
				Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
			},
		},
		{
			Name: "Soccer Team",
			Activity: Activity{
				Description:     "Join the school soccer team and compete in matches",
				Schedule:        "Tuesdays and Thursdays, 4:00 PM - 5:30 PM",
				MaxParticipants: 22,
				Participants:    []string{"liam@mergington.edu", "noah@mergington.edu"},
			},
		},
		{
			Name: "Basketball Team",
			Activity: Activity{
				Description:     "Practice and play basketball with the school team",
				Schedule:        "Wednesdays and Fridays, 3:30 PM - 5:00 PM",
				MaxParticipants: 15,
				Participants:    []string{"ava@mergington.edu", "mia@mergington.edu"},
			},
		},
		{
			Name: "Tennis Team",
			Activity: Activity{
				Description:     "Train and compete in tennis matches",
				Schedule:        "Mondays and Wednesdays, 3:30 PM - 5:00 PM",
				MaxParticipants: 10,
				Participants:    []string{"lucas@mergington.edu", "ethan@mergington.edu"},
			},
		},
		{
			Name: "Art Club",
			Activity: Activity{
				Description:     "Explore your creativity through painting and drawing",
				Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
				MaxParticipants: 15,
				Participants:    []string{"amelia@mergington.edu", "harper@mergington.edu"},
			},
		},
		{
			Name: "Drama Club",
			Activity: Activity{
				Description:     "Act, direct, and produce plays and performances",
				Schedule:        "Mondays and Wednesdays, 4:00 PM - 5:30 PM",
				MaxParticipants: 20,
				Participants:    []string{"ella@mergington.edu", "scarlett@mergington.edu"},
			},
		},
		{
			Name: "Math Club",
			Activity: Activity{
				Description:     "Solve challenging problems and participate in math competitions",
				Schedule:        "Tuesdays, 3:30 PM - 4:30 PM",
				MaxParticipants: 10,
				Participants:    []string{"james@mergington.edu", "benjamin@mergington.edu"},
			},
		},
		{
			Name: "Debate Team",
			Activity: Activity{
				Description:     "Develop public speaking and argumentation skills",
				Schedule:        "Fridays, 4:00 PM - 5:30 PM",
				MaxParticipants: 12,
				Participants:    []string{"charlotte@mergington.edu", "henry@mergington.edu"},
			},
		},
		{
			// One free slot, so the capacity path is reachable from the
			// default seed.
			Name: "Photography Club",
			Activity: Activity{
				Description:     "Capture and edit photos of school events",
				Schedule:        "Wednesdays, 3:30 PM - 4:30 PM",
				MaxParticipants: 3,
				Participants:    []string{"isabella@mergington.edu", "jack@mergington.edu"},
			},
		},
	}
}

// LoadSeedFile reads a YAML seed file containing a list of activities.
func LoadSeedFile(path string) ([]SeedActivity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file %s: %w", path, err)
	}
	defer f.Close()

	var seed []SeedActivity
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&seed); err != nil {
		return nil, fmt.Errorf("failed to decode YAML seed file %s: %w", path, err)
	}
	return seed, nil
}

// ValidateSeed checks seed data before the registry is built: unique
// non-empty names, positive capacities, rosters within capacity, and no
// duplicate emails within one activity.
func ValidateSeed(seed []SeedActivity) error {
	names := make(map[string]bool, len(seed))
	for _, s := range seed {
		if s.Name == "" {
			return fmt.Errorf("seed activity with empty name")
		}
		if names[s.Name] {
			return fmt.Errorf("duplicate activity %q in seed", s.Name)
		}
		names[s.Name] = true

		if s.MaxParticipants <= 0 {
			return fmt.Errorf("activity %q: max_participants must be positive, got %d", s.Name, s.MaxParticipants)
		}
		if len(s.Participants) > s.MaxParticipants {
			return fmt.Errorf("activity %q: %d participants exceeds capacity %d", s.Name, len(s.Participants), s.MaxParticipants)
		}

		emails := make(map[string]bool, len(s.Participants))
		for _, email := range s.Participants {
			if email == "" {
				return fmt.Errorf("activity %q: empty participant email", s.Name)
			}
			if emails[email] {
				return fmt.Errorf("activity %q: duplicate participant %q", s.Name, email)
			}
			emails[email] = true
		}
	}
	return nil
}
