// Package factories generates valid, randomized entity graphs for
// development and testing.
package factories

import (
	"sync/atomic"
	"time"

	"github.com/jaswdr/faker/v2"
)

var fake = faker.New()

// seq feeds the uniqueness suffix of generated usernames and emails.
// Uniqueness is structural, not retry-based.
var seq atomic.Uint64

// Sex selects which name generator a user factory uses.
type Sex string

const (
	SexUnspecified Sex = ""
	SexMale        Sex = "male"
	SexFemale      Sex = "female"
)

// randomPastTime picks a moment within roughly the last decade,
// normalized to UTC.
func randomPastTime() time.Time {
	now := time.Now()
	return fake.Time().TimeBetween(now.AddDate(-10, 0, 0), now).UTC()
}
