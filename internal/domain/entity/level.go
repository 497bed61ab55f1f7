package entity

// VerificationLevel is an integer rank indicating a member's standing within
// the organization. The numeric values are load-bearing: the tier formula
// multiplies endorser points by their level.
type VerificationLevel int

const (
	LevelNormal      VerificationLevel = 45
	LevelSevak       VerificationLevel = 54
	LevelSeniorSevak VerificationLevel = 63
	LevelBrahmachari VerificationLevel = 108
	LevelSwami       VerificationLevel = 1008
	LevelGlobalHead  VerificationLevel = 1000008
)

// MinEndorserLevel is the minimum rank required to endorse an event.
const MinEndorserLevel = LevelSevak

// Valid reports whether l is one of the defined ranks.
func (l VerificationLevel) Valid() bool {
	switch l {
	case LevelNormal, LevelSevak, LevelSeniorSevak, LevelBrahmachari, LevelSwami, LevelGlobalHead:
		return true
	}
	return false
}

func (l VerificationLevel) String() string {
	switch l {
	case LevelNormal:
		return "normal"
	case LevelSevak:
		return "sevak"
	case LevelSeniorSevak:
		return "senior_sevak"
	case LevelBrahmachari:
		return "brahmachari"
	case LevelSwami:
		return "swami"
	case LevelGlobalHead:
		return "global_head"
	}
	return "unknown"
}
