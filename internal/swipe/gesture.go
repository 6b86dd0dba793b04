package swipe

import "math"

// Action is the committed interpretation of one user input.
type Action int

const (
	// ActionNone means the drag stayed below the commit threshold; the
	// card snaps back and nothing changes.
	ActionNone Action = iota
	ActionLike
	ActionDislike
	ActionAllFormats
	ActionSkip
)

func (a Action) String() string {
	switch a {
	case ActionLike:
		return "like"
	case ActionDislike:
		return "dislike"
	case ActionAllFormats:
		return "all_formats"
	case ActionSkip:
		return "skip"
	default:
		return "none"
	}
}

// MarshalJSON renders the action as its string name.
func (a Action) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// commitThreshold is the displacement a drag must exceed on its dominant
// axis to commit.
const commitThreshold = 100.0

// InterpretDrag maps a drag displacement to an action. A drag commits
// when it exceeds the threshold along one axis and that axis dominates
// the other. Right is like, left is dislike, down is like-all-formats.
// Upward drags never commit.
func InterpretDrag(dx, dy float64) Action {
	absX := math.Abs(dx)
	absY := math.Abs(dy)

	switch {
	case absX > commitThreshold && absX > absY:
		if dx > 0 {
			return ActionLike
		}
		return ActionDislike
	case dy > commitThreshold && absY > absX:
		return ActionAllFormats
	default:
		return ActionNone
	}
}
