// SPDX-License-Identifier: MPL-2.0

package lesson

import (
	"strings"
	"time"
)

const (
	// DefaultSecondsPerWord is used when a legacy file has no pacing value.
	DefaultSecondsPerWord = 0.5
	// MinDisplay is the shortest time an item's text stays on screen.
	MinDisplay = 2 * time.Second
	// MaxDisplay is the longest time an item's text stays on screen.
	MaxDisplay = 10 * time.Second
)

// SplitWords splits text on whitespace, dropping empty fields.
func SplitWords(text string) []string {
	return strings.Fields(text)
}

// CountWords returns the number of whitespace-separated words in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// DisplayDuration returns how long text should be shown at the given pace,
// clamped to [minDur, maxDur]. A non-positive pace uses DefaultSecondsPerWord.
func DisplayDuration(text string, secondsPerWord float64, minDur, maxDur time.Duration) time.Duration {
	if secondsPerWord <= 0 {
		secondsPerWord = DefaultSecondsPerWord
	}
	// clamp before converting; float to int64 overflow is implementation-defined
	nanos := float64(CountWords(text)) * secondsPerWord * float64(time.Second)
	if nanos >= float64(maxDur) {
		return max(minDur, maxDur)
	}
	return max(minDur, time.Duration(nanos))
}

// WordHighlightDuration splits total evenly across words. Returns 0 when there
// are no words.
func WordHighlightDuration(total time.Duration, words int) time.Duration {
	if words <= 0 {
		return 0
	}
	return total / time.Duration(words)
}

// DisplayDuration returns the item's display time with the default bounds.
func (it Item) DisplayDuration(secondsPerWord float64) time.Duration {
	return DisplayDuration(it.Text, secondsPerWord, MinDisplay, MaxDisplay)
}

// Pacing is the per-item timing used by the player.
type Pacing struct {
	ItemID    string        `json:"item_id" yaml:"item_id"`
	Words     int           `json:"words" yaml:"words"`
	Display   time.Duration `json:"display" yaml:"display"`
	Highlight time.Duration `json:"highlight" yaml:"highlight"`
}

// Pacing computes timings for every item using the lesson's pace.
func (r *Record) Pacing() []Pacing {
	out := make([]Pacing, 0, len(r.Items))
	for _, it := range r.Items {
		words := CountWords(it.Text)
		display := it.DisplayDuration(r.Meta.SecondsPerWord)
		out = append(out, Pacing{
			ItemID:    it.ItemID,
			Words:     words,
			Display:   display,
			Highlight: WordHighlightDuration(display, words),
		})
	}
	return out
}
