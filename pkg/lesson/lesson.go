// SPDX-License-Identifier: MPL-2.0

package lesson

// ActionFlash is the only action type the player acts on. Other types are
// preserved as-is.
const ActionFlash = "flash"

type (
	// Record is the canonical, layout-independent representation of a lesson.
	Record struct {
		Meta  Meta   `json:"meta" yaml:"meta"`
		Items []Item `json:"items" yaml:"items"`
	}

	// Meta describes the lesson as a whole.
	Meta struct {
		// ID is the lesson identifier. Discovery overwrites it with the
		// directory name, which is authoritative.
		ID          string `json:"lesson_id,omitempty" yaml:"lesson_id,omitempty"`
		Title       string `json:"title" yaml:"title"`
		// Date is an opaque display string; it is never parsed.
		Date        string `json:"date" yaml:"date"`
		Description string `json:"description" yaml:"description"`
		// SecondsPerWord paces text display. Fractional values are allowed.
		SecondsPerWord float64 `json:"seconds_per_word" yaml:"seconds_per_word"`
		SchemaVersion  string  `json:"schema_version,omitempty" yaml:"schema_version,omitempty"`
	}

	// Item is a single card of a lesson.
	Item struct {
		Title   string `json:"title" yaml:"title"`
		Acronym string `json:"acronym" yaml:"acronym"`
		ItemID  string `json:"item_id" yaml:"item_id"`
		Text    string `json:"text" yaml:"text"`
		// Image is a path reference; its existence is not checked.
		Image   string   `json:"image" yaml:"image"`
		Actions []Action `json:"actions" yaml:"actions"`
	}

	// Action is a step performed while an item is shown.
	Action struct {
		Type    string  `json:"type" yaml:"type"`
		Payload Payload `json:"payload" yaml:"payload"`
	}

	// Payload carries the action parameters.
	Payload struct {
		Speed int `json:"speed" yaml:"speed"`
		// Duration is only set for records converted from the legacy layout.
		Duration int `json:"duration,omitempty" yaml:"duration,omitempty"`
	}

	// Summary is the listing projection of a Record.
	Summary struct {
		ID          string `json:"id" yaml:"id"`
		Title       string `json:"title" yaml:"title"`
		Date        string `json:"date" yaml:"date"`
		Description string `json:"description" yaml:"description"`
	}
)

// Summary projects the record's metadata for listing.
func (r *Record) Summary() Summary {
	return Summary{
		ID:          r.Meta.ID,
		Title:       r.Meta.Title,
		Date:        r.Meta.Date,
		Description: r.Meta.Description,
	}
}

// IsFlash reports whether the action is a flash action.
func (a Action) IsFlash() bool {
	return a.Type == ActionFlash
}

// FlashCount returns the number of flash actions in the lesson.
func (r *Record) FlashCount() int {
	n := 0
	for _, it := range r.Items {
		for _, a := range it.Actions {
			if a.IsFlash() {
				n++
			}
		}
	}
	return n
}
