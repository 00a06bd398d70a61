// SPDX-License-Identifier: MPL-2.0

package lesson

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCountWords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"one", 1},
		{"  Men exist   for\tthe sake\nof one another. ", 8},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CountWords(tt.text), "CountWords(%q)", tt.text)
	}
	assert.Equal(t, []string{"Teach", "them"}, SplitWords(" Teach  them "))
	assert.Empty(t, SplitWords(""))
}

func TestDisplayDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		spw  float64
		want time.Duration
	}{
		{"clamped to minimum", "two words", 0.5, MinDisplay},
		{"within bounds", "one two three four five six seven eight", 0.5, 4 * time.Second},
		{"clamped to maximum", "a b c d e f g h i j k l m n o p q r s t u v", 1, MaxDisplay},
		{"fractional pace", "a b c d e f g h i j", 0.25, 2500 * time.Millisecond},
		{"non-positive pace uses default", "a b c d e f g h i j", 0, 5 * time.Second},
		{"huge pace clamps to maximum", "a b c d e f g h i j", 1e12, MaxDisplay},
		{"infinite pace clamps to maximum", "a b", math.Inf(1), MaxDisplay},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, DisplayDuration(tt.text, tt.spw, MinDisplay, MaxDisplay))
		})
	}
}

func TestWordHighlightDuration(t *testing.T) {
	t.Parallel()

	assert.Equal(t, time.Duration(0), WordHighlightDuration(4*time.Second, 0))
	assert.Equal(t, 500*time.Millisecond, WordHighlightDuration(4*time.Second, 8))
}

func TestRecordPacing(t *testing.T) {
	t.Parallel()

	rec := &Record{
		Meta: Meta{SecondsPerWord: 0.5},
		Items: []Item{
			{ItemID: "1", Text: "one two three four five six seven eight"},
			{ItemID: "2", Text: ""},
		},
	}
	p := rec.Pacing()
	assert.Equal(t, []Pacing{
		{ItemID: "1", Words: 8, Display: 4 * time.Second, Highlight: 500 * time.Millisecond},
		{ItemID: "2", Words: 0, Display: MinDisplay, Highlight: 0},
	}, p)
}
