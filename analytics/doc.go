// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package analytics turns quiz progress into reportable events.
//
// Two consumers are supported:
//
//   - Learning record stores receive xAPI-shaped Statements. A "progressed"
//     statement carries the 1-based ending point of the learner; a
//     "completed" or "answered" statement carries a scored result whose
//     score is the number of questions answered, whose maximum is the
//     question count and whose response is the personality revealed.
//
//   - Operators scrape Prometheus counters through PrometheusRecorder.
//
// Nothing in this package knows about the quiz engine itself. Hosts build
// statements from the machine's hooks and hand them to a Recorder.
package analytics
