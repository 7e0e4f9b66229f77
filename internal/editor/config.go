// Package editor implements the editor state machine (C8, spec.md §4.8)
// and owns the read-line call: it wires the string buffer, attribute
// buffer, undo stack, history view, completion store and renderer
// together and drives the per-key dispatch loop. Ported from
// jorbakk/repline's editline.c edit_line and its edit_* operations.
package editor

import "github.com/ovity/goline/internal/attrbuf"

// Config holds the externally-set behavior knobs the core consumes
// (spec.md §6 "Configuration consumed by the core").
type Config struct {
	PromptText         string
	PromptMarker       string
	ContinuationMarker string
	TwoLinePrompt       bool

	SinglelineOnly     bool
	MultilineEOL       byte // default '\\'

	HintDelayMs  int
	HintEnable   bool
	HintAttr     attrbuf.Attr

	HighlightEnable bool

	BraceMatchEnable     bool
	BraceInsertionEnable bool
	MatchBraces          string // pairs, e.g. "()[]{}"
	AutoBraces           string // pairs eligible for auto-close
	BraceMatchAttr       attrbuf.Attr
	BraceErrorAttr       attrbuf.Attr

	CompletionPreview  bool // if true, preview the first candidate while browsing the menu
	NoMultilineIndent  bool

	MaxCompletionsToTry int // default 200-ish "budget" passed to the generator
	MaxCompletionsShown int // default 1000, for PageDown "expand"
}

// DefaultConfig returns the repline-equivalent defaults.
func DefaultConfig() Config {
	return Config{
		PromptMarker:        "> ",
		ContinuationMarker:  "> ",
		MultilineEOL:        '\\',
		HintEnable:          true,
		HighlightEnable:     true,
		BraceMatchEnable:    true,
		MatchBraces:         "()[]{}",
		AutoBraces:          "()[]{}",
		MaxCompletionsToTry: 200,
		MaxCompletionsShown: 1000,
	}
}
