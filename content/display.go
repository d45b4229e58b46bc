// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package content

import (
	"strconv"
	"strings"
)

// Display holds what a client needs to draw the quiz besides the questions:
// the title screen, the progress bar and the button texts.
type Display struct {
	Introduction string
	// TitleImage is an image descriptor; hosts resolve it like every other.
	TitleImage      string
	ShowProgressBar bool
	Appearance      string

	// CurrentOfTotal is the progress text, with @current and @total
	// placeholders.
	CurrentOfTotal string

	Start       string
	Skip        string
	Reset       string
	ProgressBar string
	Standby     string
}

// DefaultDisplay is the display of a definition that sets nothing.
func DefaultDisplay() Display {
	var p Params
	p.applyDefaults()
	return p.Display()
}

// Display collects the presentation settings. Call it on parsed
// parameters so defaults are filled in.
func (p Params) Display() Display {
	d := Display{
		ShowProgressBar: p.Visual.ShowProgressBar == nil || *p.Visual.ShowProgressBar,
		Appearance:      p.Visual.Appearance,
		CurrentOfTotal:  p.L10n.CurrentOfTotal,
		Start:           p.L10n.Start,
		Skip:            p.L10n.Skip,
		Reset:           p.L10n.Reset,
		ProgressBar:     p.A11y.ProgressBar,
		Standby:         p.A11y.Standby,
	}
	if p.ShowTitleScreen {
		d.Introduction = strings.TrimSpace(p.TitleScreen.Introduction)
		d.TitleImage = p.TitleScreen.Medium
	}
	return d
}

// Progress renders CurrentOfTotal for the 1-based question current.
func (d Display) Progress(current, total int) string {
	return strings.NewReplacer(
		"@current", strconv.Itoa(current),
		"@total", strconv.Itoa(total),
	).Replace(d.CurrentOfTotal)
}
