// Package console connects the combat resolver to a terminal.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"dungeoncrawl/internal/combat"
	"dungeoncrawl/internal/effects"
	"dungeoncrawl/internal/names"
)

const prompt = "> "

// Display writes narration and status blocks as plain text
type Display struct {
	w io.Writer
}

func NewDisplay(w io.Writer) *Display {
	return &Display{w: w}
}

func (d *Display) Narrate(msg string) {
	fmt.Fprintln(d.w, msg)
}

func (d *Display) ShowStatus(s combat.Snapshot) {
	fmt.Fprintf(d.w, "\n=== Turn %d ===\n", s.Turn)

	player := fmt.Sprintf("%-12s HP %-9s MP %s", s.PlayerName, s.PlayerHP, s.PlayerMana)
	if s.PlayerShield > 0 {
		player += fmt.Sprintf("  Shield %d", s.PlayerShield)
	}
	fmt.Fprintln(d.w, player+formatEffects(s.PlayerEffects))

	enemy := fmt.Sprintf("%-12s HP %s", s.EnemyName, s.EnemyHP)
	if s.Minions > 0 {
		enemy += fmt.Sprintf("  Minions %d", s.Minions)
	}
	fmt.Fprintln(d.w, enemy+formatEffects(s.EnemyEffects))

	for _, rec := range s.Recent {
		fmt.Fprintln(d.w, "  "+rec.String())
	}
}

func (d *Display) ShowMenu(title string, options []string) {
	fmt.Fprintf(d.w, "%s:\n", title)
	for _, opt := range options {
		fmt.Fprintln(d.w, "  "+opt)
	}
}

func (d *Display) ShowError(msg string) {
	fmt.Fprintln(d.w, "! "+msg)
}

func formatEffects(list []effects.Active) string {
	if len(list) == 0 {
		return ""
	}
	parts := make([]string, len(list))
	for i, a := range list {
		parts[i] = fmt.Sprintf("%s %d", names.Title(string(a.Kind)), a.Remaining)
	}
	return "  [" + strings.Join(parts, ", ") + "]"
}

// Input reads one command per line. Once the reader is exhausted every call
// returns combat.DefaultInput.
type Input struct {
	scanner *bufio.Scanner
	echo    io.Writer
}

// NewInput reads from r and writes a prompt to echo before each read. A nil
// echo disables the prompt.
func NewInput(r io.Reader, echo io.Writer) *Input {
	return &Input{scanner: bufio.NewScanner(r), echo: echo}
}

func (in *Input) NextLine() string {
	if in.echo != nil {
		fmt.Fprint(in.echo, prompt)
	}
	if !in.scanner.Scan() {
		return combat.DefaultInput
	}
	return in.scanner.Text()
}
