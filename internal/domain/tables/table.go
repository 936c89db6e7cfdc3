package tables

import (
	"sort"

	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/shared"
)

// SaveDescriptor is a forced save attached to a table entry
type SaveDescriptor struct {
	Kind     shared.SaveKind `yaml:"kind" json:"kind"`
	DC       string          `yaml:"dc" json:"dc"` // Formula; "level" is the attacker's level
	OnFail   string          `yaml:"on_fail" json:"on_fail"`
	FailTags []string        `yaml:"fail_tags,omitempty" json:"fail_tags,omitempty"`
}

// Entry is one row of a crit or fumble table
type Entry struct {
	Range  Range           `yaml:"range" json:"range"`
	Text   string          `yaml:"text" json:"text"`
	Damage string          `yaml:"damage,omitempty" json:"damage,omitempty"` // Bonus damage formula
	Tags   []string        `yaml:"tags,omitempty" json:"tags,omitempty"`     // Condition keys
	Save   *SaveDescriptor `yaml:"save,omitempty" json:"save,omitempty"`
}

// Table is a named crit or fumble table
type Table struct {
	Name    string  `yaml:"name" json:"name"`
	Entries []Entry `yaml:"entries" json:"entries"`
}

// sortEntries orders entries by lower bound so Lookup scans ascending
func (t *Table) sortEntries() {
	sort.SliceStable(t.Entries, func(i, j int) bool {
		return t.Entries[i].Range.Low < t.Entries[j].Range.Low
	})
}

// Lookup returns the first entry whose range contains value
func (t *Table) Lookup(value int) (*Entry, bool) {
	if t == nil {
		return nil, false
	}
	for i := range t.Entries {
		if t.Entries[i].Range.Contains(value) {
			return &t.Entries[i], true
		}
	}
	return nil, false
}
