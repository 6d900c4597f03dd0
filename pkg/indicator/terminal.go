package indicator

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Terminal shows the color as a swatch line on a terminal.
type Terminal struct {
	mu  sync.Mutex
	out io.Writer
}

// NewTerminal creates a terminal indicator writing to out.
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out}
}

func (t *Terminal) Name() string { return "terminal" }

func (t *Terminal) Configure(ctx context.Context, initial Color) error {
	return t.SetColor(ctx, initial)
}

func (t *Terminal) SetColor(_ context.Context, c Color) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := fmt.Fprintln(t.out, Swatch(c)+" "+c.Hex()); err != nil {
		return fmt.Errorf("write swatch: %w", err)
	}
	return nil
}

func (t *Terminal) Close() error { return nil }

// Swatch renders a small block in color c.
func Swatch(c Color) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Render("      ")
}
