package conditions

import "time"

// Definition describes a condition key as loaded from the conditions registry
type Definition struct {
	Key           string `yaml:"key" json:"key"`
	Label         string `yaml:"label" json:"label"`
	AttackPenalty int    `yaml:"attack_penalty,omitempty" json:"attack_penalty,omitempty"` // Subtracted from every attack roll while active
}

// Condition represents an active condition on a combatant
type Condition struct {
	ID            string    `json:"id"`
	Key           string    `json:"key"`
	Label         string    `json:"label"`
	Source        string    `json:"source"`    // What caused it (crit table III, fumble, ...)
	SourceID      string    `json:"source_id"` // Name of the attacker
	AttackPenalty int       `json:"attack_penalty,omitempty"`
	AppliedAt     time.Time `json:"applied_at"`
	Refreshes     int       `json:"refreshes"` // Times it was re-applied while active
}

// Applied records one condition landing on a named target during an attack
type Applied struct {
	Target    string `json:"target"`
	Key       string `json:"key"`
	Label     string `json:"label"`
	Refreshed bool   `json:"refreshed"`
}
