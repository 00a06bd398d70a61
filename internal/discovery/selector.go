// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"slices"

	"github.com/go-git/go-billy/v5"

	"github.com/gatewaynode/flashbrain/pkg/lesson"
)

type (
	// Selector decides which data file a lesson directory uses. One Selector
	// serves listing, loading and diagnostics so they always agree.
	Selector struct {
		order [2]lesson.Kind
	}

	// Selection is the outcome of Select.
	Selection struct {
		// Kind is the chosen layout, or lesson.KindNone.
		Kind lesson.Kind
		// Path is the chosen file relative to the content root. Empty when
		// Kind is lesson.KindNone.
		Path string
		// Present lists every layout found, in precedence order.
		Present []lesson.Kind
	}
)

// NewSelector returns a Selector preferring the given kind. Anything other than
// lesson.KindTraining prefers lesson.json.
func NewSelector(preferred lesson.Kind) Selector {
	if preferred == lesson.KindTraining {
		return Selector{order: [2]lesson.Kind{lesson.KindTraining, lesson.KindLesson}}
	}
	return Selector{order: [2]lesson.Kind{lesson.KindLesson, lesson.KindTraining}}
}

// Preferred returns the kind that wins when both files exist.
func (s Selector) Preferred() lesson.Kind {
	return s.order[0]
}

// Select checks dir (relative to the root of fsys) for both data files.
// Only regular files count.
func (s Selector) Select(fsys billy.Basic, dir string) Selection {
	sel := Selection{Kind: lesson.KindNone}
	for _, k := range s.order {
		p := fsys.Join(dir, k.FileName())
		info, err := fsys.Stat(p)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		sel.Present = append(sel.Present, k)
		if sel.Kind == lesson.KindNone {
			sel.Kind = k
			sel.Path = p
		}
	}
	return sel
}

// Has reports whether a file of the given kind was present.
func (s Selection) Has(k lesson.Kind) bool {
	return slices.Contains(s.Present, k)
}

// Found reports whether any data file was selected.
func (s Selection) Found() bool {
	return s.Kind != lesson.KindNone
}
