// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	RootNotFoundId Id = iota + 1
	DirectoryReadFailedId
	LessonNotFoundId
	DataFileNotFoundId
	LessonSchemaErrorId
	LessonReadFailedId
	ConfigLoadFailedId
	DiscrepancyFoundId
)

type (
	Id int

	MarkdownMsg string

	HttpLink string

	Issue struct {
		id       Id          // ID used to lookup the issue
		mdMsg    MarkdownMsg // Markdown text that will be rendered
		docLinks []HttpLink
		extLinks []HttpLink // external links that might be useful for the user
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue markdown with the named glamour style
// ("dark", "light", "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also:\n")
		for _, link := range i.docLinks {
			md.WriteString("- [" + string(link) + "](" + string(link) + ")\n")
		}
		for _, link := range i.extLinks {
			md.WriteString("- [" + string(link) + "](" + string(link) + ")\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	rootNotFoundIssue = &Issue{
		id: RootNotFoundId,
		mdMsg: `
# No lessons available

The lesson content directory could not be found.

## Locations we try (in order):
1. The ` + "`--root`" + ` flag
2. The ` + "`FLASHBRAIN_CONTENT_ROOT`" + ` environment variable
3. ` + "`content_root`" + ` in your config file
4. ` + "`static/classes`" + `, ` + "`../static/classes`" + `, ` + "`../../static/classes`" + ` relative to the working directory

## Things you can try:
- Point flashbrain at your content explicitly:
~~~
$ flashbrain --root /path/to/static/classes lessons
~~~

- Or set it once in your config file:
~~~cue
content_root: "/path/to/static/classes"
~~~`,
	}

	directoryReadFailedIssue = &Issue{
		id: DirectoryReadFailedId,
		mdMsg: `
# Could not read the content directory

The content root exists but its entries could not be listed.

## Common causes:
- Missing read or execute permission on the directory
- The directory was removed while flashbrain was scanning it

## Things you can try:
- Check the directory permissions
- Run ` + "`flashbrain config show`" + ` to see which root is in use`,
	}

	lessonNotFoundIssue = &Issue{
		id: LessonNotFoundId,
		mdMsg: `
# Lesson not found

There is no lesson directory with that name under the content root.
Lesson ids are directory names and are case-sensitive.

## Things you can try:
- List the available lessons:
~~~
$ flashbrain lessons
~~~`,
	}

	dataFileNotFoundIssue = &Issue{
		id: DataFileNotFoundId,
		mdMsg: `
# Lesson has no data file

The lesson directory exists but contains neither ` + "`lesson.json`" + ` nor ` + "`training.json`" + `.

## Things you can try:
- Add a ` + "`lesson.json`" + ` file:
~~~json
{
  "meta": {
    "title": "Marcus Aurelius Quotes",
    "date": "2025-06-29",
    "description": "Stoic sayings",
    "seconds_per_word": 0.5
  },
  "items": [
    {
      "title": "Duty",
      "acronym": "MEF",
      "item_id": "001",
      "text": "Men exist for the sake of one another.",
      "image": "/static/classes/stoics/001.png",
      "actions": [{"type": "flash", "payload": {"speed": 11}}]
    }
  ]
}
~~~`,
	}

	lessonSchemaErrorIssue = &Issue{
		id: LessonSchemaErrorId,
		mdMsg: `
# Lesson file is invalid

The lesson data file is not valid JSON or does not match the lesson schema.
The message above names the field that failed.

## Common mistakes:
- ` + "`seconds_per_word`" + ` written as a string (` + "`\"0.5\"`" + ` instead of ` + "`0.5`" + `)
- A missing ` + "`meta.title`" + `, ` + "`meta.date`" + ` or ` + "`meta.description`" + `
- ` + "`lesson.json`" + ` items without ` + "`title`" + ` or ` + "`acronym`" + `
- ` + "`training.json`" + ` payloads without ` + "`duration`" + `

## Things you can try:
- See every problem at once:
~~~
$ flashbrain diagnose
~~~`,
		extLinks: []HttpLink{"https://www.json.org/json-en.html"},
	}

	lessonReadFailedIssue = &Issue{
		id: LessonReadFailedId,
		mdMsg: `
# Lesson file could not be read

The data file exists but reading it failed.

## Things you can try:
- Check the file permissions
- Make sure the file is not being replaced while flashbrain reads it`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration

The configuration file could not be read or does not match the schema.

## Things you can try:
- Show where flashbrain looks for its config:
~~~
$ flashbrain config path
~~~

- Start from the defaults:
~~~
$ flashbrain config dump > "$(flashbrain config path)"
~~~

## Example config.cue:
~~~cue
content_root: "/srv/flashbrain/static/classes"
precedence:   "lesson"
log_level:    "info"
ui: {
	color_scheme: "auto"
}
~~~`,
		extLinks: []HttpLink{"https://cuelang.org/docs/tour/"},
	}

	discrepancyFoundIssue = &Issue{
		id: DiscrepancyFoundId,
		mdMsg: `
# Some lessons did not load

At least one lesson directory has a data file that failed to parse, so it
is missing from the lesson list.

## Things you can try:
- Fix the files listed under "Failures" and run ` + "`flashbrain diagnose`" + ` again
- Use ` + "`flashbrain load <id>`" + ` to see the full error for one lesson`,
	}

	issues = map[Id]*Issue{
		rootNotFoundIssue.Id():        rootNotFoundIssue,
		directoryReadFailedIssue.Id(): directoryReadFailedIssue,
		lessonNotFoundIssue.Id():      lessonNotFoundIssue,
		dataFileNotFoundIssue.Id():    dataFileNotFoundIssue,
		lessonSchemaErrorIssue.Id():   lessonSchemaErrorIssue,
		lessonReadFailedIssue.Id():    lessonReadFailedIssue,
		configLoadFailedIssue.Id():    configLoadFailedIssue,
		discrepancyFoundIssue.Id():    discrepancyFoundIssue,
	}
)

// Values returns every catalog entry in id order.
func Values() []*Issue {
	values := maps.Values(issues)
	slices.SortFunc(values, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}
