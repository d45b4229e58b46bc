// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package quiz

// Hooks are the host capabilities the machine calls out to. Every field is
// optional; nil hooks are skipped. Hooks run on the machine's goroutine and
// must not call back into the machine synchronously.
type Hooks struct {
	// NotifyProgress fires once per question advance with the new position.
	NotifyProgress func(position int)

	// NotifyCompletion fires once per completed run, never on restore.
	NotifyCompletion func(personality string)

	// RequestResize fires after any visible change of screen.
	RequestResize func()

	// Announce delivers text to assistive technology.
	Announce func(text string)

	// ResolveAssetURL maps an image descriptor to a displayable URL.
	ResolveAssetURL func(descriptor string) string

	// WheelTurned fires with the wheel's angle after every animation step.
	WheelTurned func(angle float64)

	// ScreenChanged fires whenever the visible screen changes.
	ScreenChanged func(screen Screen)
}

func (h Hooks) progress(position int) {
	if h.NotifyProgress != nil {
		h.NotifyProgress(position)
	}
}

func (h Hooks) completion(personality string) {
	if h.NotifyCompletion != nil {
		h.NotifyCompletion(personality)
	}
}

func (h Hooks) resize() {
	if h.RequestResize != nil {
		h.RequestResize()
	}
}

func (h Hooks) announce(text string) {
	if h.Announce != nil && text != "" {
		h.Announce(text)
	}
}

func (h Hooks) assetURL(descriptor string) string {
	if descriptor == "" {
		return ""
	}
	if h.ResolveAssetURL != nil {
		return h.ResolveAssetURL(descriptor)
	}
	return descriptor
}

func (h Hooks) screen(s Screen) {
	if h.ScreenChanged != nil {
		h.ScreenChanged(s)
	}
}
