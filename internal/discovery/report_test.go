// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportFormat(t *testing.T) {
	t.Parallel()

	d, _ := newMemDiscovery(t, map[string]string{
		"a/lesson.json": lessonJSON("Alpha"),
		"d/lesson.json": badSecondsPerWord,
	}, []string{"c"})

	r, err := d.Diagnose(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Format(&buf))
	out := buf.String()

	for _, want := range []string{
		"Content root:",
		"/content",
		"lesson.json first",
		"Failed:",
		"Discrepancy:",
		"Failures:",
		"d (lesson.json):",
		"meta.seconds_per_word",
	} {
		assert.Contains(t, out, want)
	}

	lines := strings.Split(out, "\n")
	assert.Contains(t, lines, "Directories:          3")
}

func TestReportFormat_NoFailures(t *testing.T) {
	t.Parallel()

	r, err := abcFixture(t).Diagnose(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Format(&buf))
	assert.NotContains(t, buf.String(), "Failures:")
}

func TestReportJSON(t *testing.T) {
	t.Parallel()

	r, err := abcFixture(t).Diagnose(context.Background())
	require.NoError(t, err)

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "lesson", decoded["precedence"])
	assert.InDelta(t, 3, decoded["total_dirs"], 0)

	outcomes, ok := decoded["outcomes"].([]any)
	require.True(t, ok)
	assert.Len(t, outcomes, 3)
}
