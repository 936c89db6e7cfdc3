package shared

// Class is a character class tag
type Class string

const (
	ClassZero     Class = "zero" // 0-level funnel character
	ClassWarrior  Class = "warrior"
	ClassThief    Class = "thief"
	ClassCleric   Class = "cleric"
	ClassWizard   Class = "wizard"
	ClassElf      Class = "elf"
	ClassDwarf    Class = "dwarf"
	ClassHalfling Class = "halfling"
)

// Classes lists every known class
var Classes = []Class{ClassZero, ClassWarrior, ClassThief, ClassCleric, ClassWizard, ClassElf, ClassDwarf, ClassHalfling}

// IsValid reports whether c is a known class
func (c Class) IsValid() bool {
	for _, known := range Classes {
		if c == known {
			return true
		}
	}
	return false
}

// Alignment is the character's cosmic allegiance
type Alignment string

const (
	AlignmentLawful  Alignment = "lawful"
	AlignmentNeutral Alignment = "neutral"
	AlignmentChaotic Alignment = "chaotic"
)

// SaveKind names one of the three saving throws
type SaveKind string

const (
	SaveFortitude SaveKind = "fort"
	SaveReflex    SaveKind = "ref"
	SaveWillpower SaveKind = "will"
)
