// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package analytics

import "time"

// Verb is the short id of an xAPI verb.
type Verb string

const (
	VerbProgressed Verb = "progressed"
	VerbCompleted  Verb = "completed"
	VerbAnswered   Verb = "answered"
)

// IRI returns the ADL verb IRI for v.
func (v Verb) IRI() string {
	return "http://adlnet.gov/expapi/verbs/" + string(v)
}

const (
	// ExtensionEndingPoint records how far a learner got.
	ExtensionEndingPoint = "http://id.tincanapi.com/extension/ending-point"

	activityType    = "http://adlnet.gov/expapi/activities/cmi.interaction"
	interactionType = "long-fill-in"

	// DefaultTitle names the activity when the host has no title.
	DefaultTitle = "Personality Quiz"
)

type Statement struct {
	Verb      VerbRef   `json:"verb"`
	Object    Object    `json:"object"`
	Result    *Result   `json:"result,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type VerbRef struct {
	ID      string            `json:"id"`
	Display map[string]string `json:"display"`
}

type Object struct {
	ID         string     `json:"id,omitempty"`
	Definition Definition `json:"definition"`
}

type Definition struct {
	Name            map[string]string `json:"name"`
	Description     map[string]string `json:"description"`
	Type            string            `json:"type"`
	InteractionType string            `json:"interactionType"`
	Extensions      map[string]any    `json:"extensions,omitempty"`
}

type Result struct {
	Score      Score  `json:"score"`
	Success    bool   `json:"success"`
	Completion bool   `json:"completion"`
	Response   string `json:"response,omitempty"`
}

type Score struct {
	Min    int     `json:"min"`
	Max    int     `json:"max"`
	Raw    int     `json:"raw"`
	Scaled float64 `json:"scaled"`
}

// Builder creates statements for one activity.
type Builder struct {
	ActivityID string
	Title      string
	Language   string

	// Now defaults to time.Now.
	Now func() time.Time
}

// Progressed reports that the learner moved on. position is the 0-based
// index of the question now on screen; the statement carries position+1.
func (b Builder) Progressed(position int) Statement {
	s := b.template(VerbProgressed)
	s.Object.Definition.Extensions = map[string]any{
		ExtensionEndingPoint: position + 1,
	}
	return s
}

// Completed reports a finished run revealing personality.
func (b Builder) Completed(personality string, score, maxScore int) Statement {
	return b.scored(VerbCompleted, personality, score, maxScore)
}

// Answered is the statement a host collects on demand for reporting.
func (b Builder) Answered(personality string, score, maxScore int) Statement {
	return b.scored(VerbAnswered, personality, score, maxScore)
}

func (b Builder) scored(v Verb, personality string, score, maxScore int) Statement {
	s := b.template(v)
	scaled := 0.0
	if maxScore > 0 {
		scaled = float64(score) / float64(maxScore)
	}
	s.Result = &Result{
		Score:      Score{Min: 0, Max: maxScore, Raw: score, Scaled: scaled},
		Success:    score > 0,
		Completion: score == maxScore,
		Response:   personality,
	}
	return s
}

func (b Builder) template(v Verb) Statement {
	lang := b.Language
	if lang == "" {
		lang = "en-US"
	}
	title := b.Title
	if title == "" {
		title = DefaultTitle
	}
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}

	// Reporting tools expect en-US to be present.
	name := map[string]string{lang: title, "en-US": title}
	desc := map[string]string{lang: DefaultTitle, "en-US": DefaultTitle}

	return Statement{
		Verb: VerbRef{ID: v.IRI(), Display: map[string]string{"en-US": string(v)}},
		Object: Object{
			ID: b.ActivityID,
			Definition: Definition{
				Name:            name,
				Description:     desc,
				Type:            activityType,
				InteractionType: interactionType,
			},
		},
		Timestamp: now().UTC(),
	}
}
