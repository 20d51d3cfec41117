// Package pitch maps musical notes to their frequencies.
package pitch

import "math"

// Letter is a note letter within an octave.
type Letter int

// Note letters, sh suffix stands for sharp.
const (
	C Letter = iota
	Csh
	D
	Dsh
	E
	F
	Fsh
	G
	Gsh
	A
	Ash
	B
)

var letterNames = [...]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

func (l Letter) String() string {
	if l < C || l > B {
		return "?"
	}
	return letterNames[l]
}

// concert pitch: A of the 4th octave
const (
	referenceHz     = 440.0
	referenceOctave = 4
)

// Pitch is a note letter in a concrete octave.
type Pitch struct {
	Letter Letter
	Octave int
}

// Hz returns the frequency of the pitch in equal temperament, tuned to
// A4 = 440 Hz.
func (p Pitch) Hz() float64 {
	semitones := (p.Octave-referenceOctave)*12 + int(p.Letter) - int(A)
	return referenceHz * math.Pow(2, float64(semitones)/12)
}
