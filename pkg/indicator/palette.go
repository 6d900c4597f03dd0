package indicator

import (
	"errors"
	"fmt"

	"github.com/ogulcanaydogan/tomatina/pkg/model"
)

// ErrIncompletePalette is returned when a palette lacks a color for a phase.
var ErrIncompletePalette = errors.New("palette does not cover every phase")

// Palette maps each phase to the color the indicator shows for it.
type Palette map[model.Phase]Color

// DefaultPalette shows red while waiting for a press, green while working,
// blue on short breaks and purple on long breaks.
func DefaultPalette() Palette {
	return Palette{
		model.PendingWork:       Red,
		model.Working:           Green,
		model.PendingShortBreak: Red,
		model.ShortBreak:        Blue,
		model.PendingLongBreak:  Red,
		model.LongBreak:         Purple,
	}
}

// WithOverrides returns a copy of p with colors replaced from a map of phase
// name to "#rrggbb". Empty values are skipped.
func (p Palette) WithOverrides(overrides map[string]string) (Palette, error) {
	out := make(Palette, len(p))
	for phase, c := range p {
		out[phase] = c
	}
	for name, hex := range overrides {
		if hex == "" {
			continue
		}
		phase, err := model.ParsePhase(name)
		if err != nil {
			return nil, fmt.Errorf("palette override: %w", err)
		}
		c, err := ParseHex(hex)
		if err != nil {
			return nil, fmt.Errorf("palette override %s: %w", name, err)
		}
		out[phase] = c
	}
	return out, nil
}

// Validate checks that every phase has a color.
func (p Palette) Validate() error {
	for _, phase := range model.Phases() {
		if _, ok := p[phase]; !ok {
			return fmt.Errorf("%w: missing %s", ErrIncompletePalette, phase)
		}
	}
	return nil
}

// ColorFor returns the color for phase. Callers validate the palette first.
func (p Palette) ColorFor(phase model.Phase) Color {
	return p[phase]
}
