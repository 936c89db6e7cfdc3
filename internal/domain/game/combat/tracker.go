package combat

import (
	"fmt"
	"iter"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/character"
	"github.com/KirkDiggler/dcc-bot-discord/internal/domain/conditions"
	dnderr "github.com/KirkDiggler/dcc-bot-discord/internal/errors"
)

const maxLogEntries = 20

// CombatantType represents the type of combatant
type CombatantType string

const (
	CombatantTypePlayer  CombatantType = "player"
	CombatantTypeMonster CombatantType = "monster"
)

// Snapshot holds hp and AC for combatants that have no durable record
type Snapshot struct {
	HP         int            `json:"hp"`
	MaxHP      int            `json:"max_hp"`
	AC         int            `json:"ac"`
	Conditions conditions.Set `json:"conditions,omitempty"`
}

// Entry is one combatant in the initiative order
type Entry struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Abbrev     string        `json:"abbrev"`
	Type       CombatantType `json:"type"`
	Initiative int           `json:"initiative"`
	Record     string        `json:"record,omitempty"` // Record key; empty for snapshot combatants
	Owner      string        `json:"owner,omitempty"`  // Discord user ID
	Snapshot   *Snapshot     `json:"snapshot,omitempty"`
	Life       LifeState     `json:"life"`
}

// HasRecord reports whether the entry is backed by a durable record
func (e *Entry) HasRecord() bool {
	return e.Record != ""
}

// Tracker is the initiative order of one session
type Tracker struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	ChannelID string    `json:"channel_id,omitempty"`
	Entries   []*Entry  `json:"entries"`
	Current   int       `json:"current"` // -1 until the first Advance
	Round     int       `json:"round"`
	CreatedAt time.Time `json:"created_at"`
	CombatLog []string  `json:"combat_log"`
}

// TurnResult is what Advance reports
type TurnResult struct {
	SessionID string          `json:"session_id"`
	Index     int             `json:"index"`
	Round     int             `json:"round"`
	NewRound  bool            `json:"new_round"`
	Entry     *Entry          `json:"entry"`
	Life      *LifeTransition `json:"life,omitempty"`
}

// Row is one line of the initiative display
type Row struct {
	Index      int
	IsCurrent  bool
	Name       string
	Abbrev     string
	Type       CombatantType
	Initiative int
	HP         int
	MaxHP      int
	HasHP      bool // false for record entries until the caller fills HP in
	Life       LifeState
	Conditions []string
}

func (r Row) String() string {
	var b strings.Builder
	if r.IsCurrent {
		b.WriteString("▶ ")
	} else {
		b.WriteString("  ")
	}
	fmt.Fprintf(&b, "%2d  %s (%s)", r.Initiative, r.Name, r.Abbrev)
	if r.HasHP {
		fmt.Fprintf(&b, "  %d/%d hp", r.HP, r.MaxHP)
	}
	if !r.Life.IsAlive() {
		fmt.Fprintf(&b, "  [%s]", r.Life)
	}
	if len(r.Conditions) > 0 {
		fmt.Fprintf(&b, "  {%s}", strings.Join(r.Conditions, ", "))
	}
	return b.String()
}

// NewTracker creates an empty tracker at round 1 with no current turn
func NewTracker(id, sessionID, channelID string) *Tracker {
	return &Tracker{
		ID:        id,
		SessionID: sessionID,
		ChannelID: channelID,
		Entries:   []*Entry{},
		Current:   -1,
		Round:     1,
		CreatedAt: time.Now(),
		CombatLog: []string{},
	}
}

// Add inserts entry and re-sorts by initiative, highest first. Ties keep
// insertion order and the current turn stays on the same combatant.
func (t *Tracker) Add(entry *Entry) error {
	if entry == nil || strings.TrimSpace(entry.Name) == "" {
		return dnderr.InvalidArgument("combatant name is required")
	}
	if _, _, ok := t.Find(entry.Name); ok {
		return dnderr.InvalidArgumentf("%s is already in the initiative order", entry.Name)
	}
	if entry.Abbrev == "" {
		entry.Abbrev = Abbreviate(entry.Name)
	}
	if entry.Snapshot != nil && entry.Snapshot.Conditions == nil {
		entry.Snapshot.Conditions = conditions.Set{}
	}

	current := t.CurrentEntry()
	t.Entries = append(t.Entries, entry)
	sort.SliceStable(t.Entries, func(i, j int) bool {
		return t.Entries[i].Initiative > t.Entries[j].Initiative
	})

	if current != nil {
		t.Current = t.indexOf(current)
	}
	return nil
}

// Advance moves to the next combatant, wrapping to the top of the order with
// a new round, then ticks the life state of whoever is now up.
func (t *Tracker) Advance() (*TurnResult, error) {
	if len(t.Entries) == 0 {
		return nil, dnderr.InvalidArgument("no combatants in the initiative order")
	}

	result := &TurnResult{SessionID: t.SessionID}
	switch {
	case t.Current < 0:
		t.Current = 0
	case t.Current+1 >= len(t.Entries):
		t.Current = 0
		t.Round++
		result.NewRound = true
	default:
		t.Current++
	}

	entry := t.Entries[t.Current]
	result.Index = t.Current
	result.Round = t.Round
	result.Entry = entry
	result.Life = entry.Life.Tick(entry.Name)

	if result.Life != nil {
		t.AddLogEntry(result.Life.Text)
	}
	return result, nil
}

// Remove deletes the named combatant. The turn pointer moves back when the
// removed entry sat at or before it; an empty order has no turn.
func (t *Tracker) Remove(name string) (*Entry, error) {
	entry, idx, ok := t.Find(name)
	if !ok {
		return nil, dnderr.NotFoundf("%s is not in the initiative order", name)
	}

	t.Entries = append(t.Entries[:idx], t.Entries[idx+1:]...)

	// Removing the current entry at index 0 unsets the pointer, so the next
	// advance lands on the new first entry in the same round.
	switch {
	case len(t.Entries) == 0:
		t.Current = -1
	case t.Current >= 0 && idx <= t.Current:
		t.Current--
	}
	return entry, nil
}

// Find looks an entry up by name or abbreviation, case-insensitively
func (t *Tracker) Find(name string) (*Entry, int, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, e := range t.Entries {
		if strings.ToLower(e.Name) == key || strings.ToLower(e.Abbrev) == key {
			return e, i, true
		}
	}
	return nil, -1, false
}

// FindRecord returns the entry backed by the record key, if any
func (t *Tracker) FindRecord(key string) (*Entry, bool) {
	for _, e := range t.Entries {
		if e.Record != "" && e.Record == character.Key(key) {
			return e, true
		}
	}
	return nil, false
}

// CurrentEntry returns the combatant whose turn it is, nil before the first Advance
func (t *Tracker) CurrentEntry() *Entry {
	if t.Current < 0 || t.Current >= len(t.Entries) {
		return nil
	}
	return t.Entries[t.Current]
}

// List yields one display row per entry in initiative order. The sequence can
// be ranged over any number of times.
func (t *Tracker) List() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for i, e := range t.Entries {
			row := Row{
				Index:      i,
				IsCurrent:  i == t.Current,
				Name:       e.Name,
				Abbrev:     e.Abbrev,
				Type:       e.Type,
				Initiative: e.Initiative,
				Life:       e.Life,
			}
			if e.Snapshot != nil {
				row.HP = e.Snapshot.HP
				row.MaxHP = e.Snapshot.MaxHP
				row.HasHP = true
				row.Conditions = e.Snapshot.Conditions.Keys()
			}
			if !yield(row) {
				return
			}
		}
	}
}

// AddLogEntry adds an entry to the combat log, keeping the last 20
func (t *Tracker) AddLogEntry(entry string) {
	if t.CombatLog == nil {
		t.CombatLog = []string{}
	}
	t.CombatLog = append(t.CombatLog, fmt.Sprintf("Round %d: %s", t.Round, entry))
	if len(t.CombatLog) > maxLogEntries {
		t.CombatLog = t.CombatLog[len(t.CombatLog)-maxLogEntries:]
	}
}

func (t *Tracker) indexOf(entry *Entry) int {
	for i, e := range t.Entries {
		if e == entry {
			return i
		}
	}
	return -1
}

// Abbreviate builds a short tag from a name: initials for multi-word names,
// otherwise the first three letters
func Abbreviate(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return ""
	}
	if len(words) == 1 {
		runes := []rune(words[0])
		if len(runes) > 3 {
			runes = runes[:3]
		}
		return strings.ToUpper(string(runes))
	}

	var b strings.Builder
	for _, w := range words {
		r := []rune(w)
		b.WriteRune(unicode.ToUpper(r[0]))
	}
	return b.String()
}
