// SPDX-License-Identifier: MPL-2.0

package lesson

import (
	"errors"
	"fmt"
)

const (
	// KindNone means no data file was found.
	KindNone Kind = iota
	// KindLesson is the current lesson.json layout.
	KindLesson
	// KindTraining is the legacy training.json layout.
	KindTraining
)

const (
	// LessonFileName is the file name of the current layout.
	LessonFileName = "lesson.json"
	// TrainingFileName is the file name of the legacy layout.
	TrainingFileName = "training.json"
)

// ErrInvalidKind is returned when a Kind value is not one of the defined kinds.
var ErrInvalidKind = errors.New("invalid data file kind")

type (
	// Kind identifies which on-disk layout a data file uses.
	Kind int

	// DataFile is a decoded data file in one of the two layouts.
	// The concrete type is either *TrainingFile or *LessonFile.
	DataFile interface {
		Kind() Kind
		// Normalize maps the layout into the canonical Record.
		Normalize() *Record
	}

	// TrainingFile is the legacy training.json layout.
	TrainingFile struct {
		Meta  TrainingMeta   `json:"meta"`
		Items []TrainingItem `json:"items"`
	}

	// TrainingMeta is the legacy metadata block.
	TrainingMeta struct {
		ClassID        string   `json:"class_id"`
		Title          string   `json:"title"`
		Date           string   `json:"date"`
		Description    string   `json:"description"`
		SecondsPerWord *float64 `json:"seconds_per_word"`
	}

	// TrainingItem is a legacy item; it has no title or acronym.
	TrainingItem struct {
		ItemID  string           `json:"item_id"`
		Text    string           `json:"text"`
		Image   string           `json:"image"`
		Actions []TrainingAction `json:"actions"`
	}

	// TrainingAction is a legacy action whose payload carries a duration.
	TrainingAction struct {
		Type    string `json:"type"`
		Payload struct {
			Duration int `json:"duration"`
			Speed    int `json:"speed"`
		} `json:"payload"`
	}

	// LessonFile is the current lesson.json layout. It shares the canonical
	// field set.
	LessonFile Record
)

// All returns the kinds that name a real file, in default precedence order.
func All() []Kind {
	return []Kind{KindLesson, KindTraining}
}

// FileName returns the on-disk file name for the kind.
func (k Kind) FileName() string {
	switch k {
	case KindLesson:
		return LessonFileName
	case KindTraining:
		return TrainingFileName
	default:
		return ""
	}
}

// String returns a short lowercase name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindLesson:
		return "lesson"
	case KindTraining:
		return "training"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalText renders the kind by name so JSON and YAML output stay readable.
func (k Kind) MarshalText() ([]byte, error) {
	if err := k.Validate(); err != nil {
		return nil, err
	}
	return []byte(k.String()), nil
}

// Validate returns an error if the kind is not a known value.
func (k Kind) Validate() error {
	switch k {
	case KindNone, KindLesson, KindTraining:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrInvalidKind, int(k))
	}
}

// ParseKind converts "lesson" or "training" into a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "lesson":
		return KindLesson, nil
	case "training":
		return KindTraining, nil
	default:
		return KindNone, fmt.Errorf("%w: %q (expected \"lesson\" or \"training\")", ErrInvalidKind, s)
	}
}

// Kind implements DataFile.
func (*TrainingFile) Kind() Kind { return KindTraining }

// Normalize implements DataFile. Items get empty titles and acronyms and keep
// their legacy durations. A missing pacing value falls back to
// DefaultSecondsPerWord.
func (f *TrainingFile) Normalize() *Record {
	spw := DefaultSecondsPerWord
	if f.Meta.SecondsPerWord != nil {
		spw = *f.Meta.SecondsPerWord
	}

	rec := &Record{
		Meta: Meta{
			ID:             f.Meta.ClassID,
			Title:          f.Meta.Title,
			Date:           f.Meta.Date,
			Description:    f.Meta.Description,
			SecondsPerWord: spw,
		},
		Items: make([]Item, 0, len(f.Items)),
	}
	for _, it := range f.Items {
		actions := make([]Action, 0, len(it.Actions))
		for _, a := range it.Actions {
			actions = append(actions, Action{
				Type:    a.Type,
				Payload: Payload{Speed: a.Payload.Speed, Duration: a.Payload.Duration},
			})
		}
		rec.Items = append(rec.Items, Item{
			ItemID:  it.ItemID,
			Text:    it.Text,
			Image:   it.Image,
			Actions: actions,
		})
	}
	return rec
}

// Kind implements DataFile.
func (*LessonFile) Kind() Kind { return KindLesson }

// Normalize implements DataFile. Nil slices are replaced by empty ones so the
// record marshals identically whether or not a list was empty.
func (f *LessonFile) Normalize() *Record {
	rec := Record{Meta: f.Meta, Items: make([]Item, len(f.Items))}
	copy(rec.Items, f.Items)
	for i := range rec.Items {
		if rec.Items[i].Actions == nil {
			rec.Items[i].Actions = []Action{}
		}
	}
	return &rec
}
