// Package sound plays short audio cues for round outcomes.
package sound

// Cue names a sound; it matches the file's base name in the sound directory.
type Cue string

const (
	CueWin     Cue = "win"
	CueLose    Cue = "lose"
	CueDenied  Cue = "denied"
	CueSession Cue = "session"
)

// ForOutcome picks the cue for a finished round.
func ForOutcome(isWin bool) Cue {
	if isWin {
		return CueWin
	}
	return CueLose
}
