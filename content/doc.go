// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package content loads authored quiz definitions and sanitises them before
they reach the quiz engine.

Definitions are YAML (JSON works too, as a subset):

	showTitleScreen: true
	personalities:
	  - name: Wizard
	    description: Curious and bookish.
	questions:
	  - text: Pick a weapon
	    answers:
	      - text: Staff
	        personality: wizard=2
	      - text: Sword
	        personality: knight
	resultScreen:
	  animation: wheel

# Sanitisation

Sanitize applies the authoring rules:

  - personality names are trimmed; empty and duplicate names are dropped
  - effect tokens are normalised to "name=score" and tokens naming an
    unknown personality are dropped
  - answers left without effects are dropped, and so are questions left
    without answers

The Report lists what was dropped so hosts can log it. Config turns the
sanitised parameters into a quiz.Config.

# Display

Display collects the settings the engine does not use but a client
needs: the title screen introduction and image, whether to show the
progress bar, the appearance, and the button and screen reader texts.
Progress fills the "@current of @total" template.
*/
package content
