// SPDX-License-Identifier: MPL-2.0

package lesson

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatewaynode/flashbrain/pkg/cueutil"
)

const validLesson = `{
  "meta": {
    "lesson_id": "stoics",
    "title": "Alpha",
    "date": "2025-06-29",
    "description": "Stoic quotes",
    "seconds_per_word": 0.35,
    "schema_version": "1.2.0",
    "author": "ignored"
  },
  "items": [
    {
      "title": "Duty",
      "acronym": "MEF",
      "item_id": "001",
      "text": "Men exist for the sake of one another.",
      "image": "/static/classes/stoics/001.png",
      "actions": [
        {"type": "flash", "payload": {"speed": 11}},
        {"type": "pause", "payload": {"speed": 0, "extra": true}}
      ]
    }
  ]
}`

const validTraining = `{
  "meta": {
    "class_id": "beta",
    "title": "Beta",
    "date": "2024-01-01",
    "description": "Legacy layout"
  },
  "items": [
    {
      "item_id": "1",
      "text": "Teach them then or bear with them.",
      "image": "img.png",
      "actions": [{"type": "flash", "payload": {"duration": 85, "speed": 11}}]
    }
  ]
}`

func TestParseLesson(t *testing.T) {
	t.Parallel()

	rec, err := Parse([]byte(validLesson), KindLesson, "stoics/lesson.json")
	require.NoError(t, err)

	assert.Equal(t, "stoics", rec.Meta.ID)
	assert.Equal(t, "Alpha", rec.Meta.Title)
	assert.InDelta(t, 0.35, rec.Meta.SecondsPerWord, 1e-9)
	assert.Equal(t, "1.2.0", rec.Meta.SchemaVersion)
	require.Len(t, rec.Items, 1)
	assert.Equal(t, "MEF", rec.Items[0].Acronym)
	require.Len(t, rec.Items[0].Actions, 2)
	assert.True(t, rec.Items[0].Actions[0].IsFlash())
	assert.Equal(t, "pause", rec.Items[0].Actions[1].Type, "unknown action types are preserved")
	assert.Equal(t, 1, rec.FlashCount())
}

func TestParseTraining(t *testing.T) {
	t.Parallel()

	rec, err := Parse([]byte(validTraining), KindTraining, "beta/training.json")
	require.NoError(t, err)

	assert.Equal(t, "beta", rec.Meta.ID)
	assert.Equal(t, "Beta", rec.Meta.Title)
	assert.InDelta(t, DefaultSecondsPerWord, rec.Meta.SecondsPerWord, 1e-9)
	require.Len(t, rec.Items, 1)
	assert.Empty(t, rec.Items[0].Title)
	assert.Empty(t, rec.Items[0].Acronym)
	assert.Equal(t, Payload{Speed: 11, Duration: 85}, rec.Items[0].Actions[0].Payload)
}

func TestParseSchemaErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		kind     Kind
		data     string
		wantPath string
	}{
		{
			name:     "seconds_per_word as string",
			kind:     KindLesson,
			data:     strings.Replace(validLesson, `"seconds_per_word": 0.35`, `"seconds_per_word": "fast"`, 1),
			wantPath: "meta.seconds_per_word",
		},
		{
			name:     "missing title",
			kind:     KindLesson,
			data:     strings.Replace(validLesson, `"title": "Alpha",`, "", 1),
			wantPath: "meta.title",
		},
		{
			name:     "lesson item without acronym",
			kind:     KindLesson,
			data:     strings.Replace(validLesson, `"acronym": "MEF",`, "", 1),
			wantPath: "items[0].acronym",
		},
		{
			name:     "missing seconds_per_word in lesson layout",
			kind:     KindLesson,
			data:     strings.Replace(validLesson, `"seconds_per_word": 0.35,`, "", 1),
			wantPath: "meta.seconds_per_word",
		},
		{
			name:     "training payload without duration",
			kind:     KindTraining,
			data:     strings.Replace(validTraining, `"duration": 85, `, "", 1),
			wantPath: "items[0].actions[0].payload.duration",
		},
		{
			name:     "items not a list",
			kind:     KindTraining,
			data:     `{"meta":{"title":"t","date":"d","description":"x"},"items":{}}`,
			wantPath: "items",
		},
		{
			name: "malformed JSON",
			kind: KindLesson,
			data: `{"meta": {`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec, err := Parse([]byte(tt.data), tt.kind, "x/"+tt.kind.FileName())
			require.Error(t, err)
			assert.Nil(t, rec, "no partial records")
			assert.ErrorIs(t, err, ErrSchema)

			var se *SchemaError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, "x/"+tt.kind.FileName(), se.Path)
			assert.Equal(t, tt.kind, se.Kind)

			if tt.wantPath != "" {
				var ve *cueutil.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Contains(t, ve.Paths(), tt.wantPath)
			}
		})
	}
}

func TestParseSchemaVersion(t *testing.T) {
	t.Parallel()

	data := strings.Replace(validLesson, `"schema_version": "1.2.0"`, `"schema_version": "2.0.0"`, 1)
	_, err := Parse([]byte(data), KindLesson, "lesson.json")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchema)
	assert.ErrorIs(t, err, ErrIncompatibleSchemaVersion)
}

func TestParseOversize(t *testing.T) {
	t.Parallel()

	data := make([]byte, cueutil.DefaultMaxFileSize+1)
	_, err := Parse(data, KindLesson, "lesson.json")
	assert.ErrorIs(t, err, ErrSchema)
	assert.ErrorIs(t, err, cueutil.ErrFileTooLarge)
}

func TestParseInvalidKind(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(validLesson), KindNone, "lesson.json")
	assert.ErrorIs(t, err, ErrInvalidKind)
	assert.True(t, errors.Is(err, ErrSchema))
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	inputs := map[string]string{
		"full":        validLesson,
		"empty items": `{"meta":{"title":"t","date":"d","description":"x","seconds_per_word":1},"items":[]}`,
		"no actions": `{"meta":{"title":"t","date":"d","description":"x","seconds_per_word":2.5},
			"items":[{"title":"a","acronym":"b","item_id":"c","text":"","image":"","actions":[]}]}`,
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			first, err := Parse([]byte(input), KindLesson, "lesson.json")
			require.NoError(t, err)

			out, err := Marshal(first)
			require.NoError(t, err)

			second, err := Parse(out, KindLesson, "lesson.json")
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}

	t.Run("legacy record re-read as lesson layout", func(t *testing.T) {
		t.Parallel()

		first, err := Parse([]byte(validTraining), KindTraining, "training.json")
		require.NoError(t, err)

		out, err := Marshal(first)
		require.NoError(t, err)

		second, err := Parse(out, KindLesson, "lesson.json")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestKind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, LessonFileName, KindLesson.FileName())
	assert.Equal(t, TrainingFileName, KindTraining.FileName())
	assert.Empty(t, KindNone.FileName())
	assert.Equal(t, "training", KindTraining.String())
	require.NoError(t, KindNone.Validate())
	require.ErrorIs(t, Kind(7).Validate(), ErrInvalidKind)

	k, err := ParseKind("training")
	require.NoError(t, err)
	assert.Equal(t, KindTraining, k)

	_, err = ParseKind("Lesson")
	assert.ErrorIs(t, err, ErrInvalidKind)
}

func TestSummary(t *testing.T) {
	t.Parallel()

	rec := &Record{Meta: Meta{ID: "a", Title: "Alpha", Date: "d", Description: "x", SecondsPerWord: 1}}
	assert.Equal(t, Summary{ID: "a", Title: "Alpha", Date: "d", Description: "x"}, rec.Summary())
}
