// notes.go codec between the ordered note-entry list and the flattened notes
// string used at the display and remote free-text boundaries.
package inspection

import (
	"regexp"
	"strings"
)

// noteSeparator joins fragments in the flattened notes string. Free text
// containing the separator itself breaks the round trip; the format is a
// display convention, not a robust encoding.
const noteSeparator = "; "

// codePattern matches observation display codes, e.g. "Q1" or "Q31_Naturalness".
var codePattern = regexp.MustCompile(`^Q\d+\S*$`)

// ParseNotes splits a flattened notes string into ordered note entries.
// Fragments formatted as "<code>: <text>" with a valid code produce a tagged
// entry; anything else is kept with an empty Code so display order survives,
// but such entries cannot be routed back to a remote row.
func ParseNotes(notes string) []NoteEntry {
	if notes == "" {
		return nil
	}

	fragments := strings.Split(notes, noteSeparator)
	entries := make([]NoteEntry, 0, len(fragments))
	for _, fragment := range fragments {
		code, text, ok := strings.Cut(fragment, ": ")
		if ok && codePattern.MatchString(code) {
			entries = append(entries, NoteEntry{Code: code, Text: text})
		} else {
			entries = append(entries, NoteEntry{Text: fragment})
		}
	}
	return entries
}

// JoinNotes flattens note entries into the display string form.
func JoinNotes(entries []NoteEntry) string {
	if len(entries) == 0 {
		return ""
	}

	fragments := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Code != "" {
			fragments = append(fragments, entry.Code+": "+entry.Text)
		} else {
			fragments = append(fragments, entry.Text)
		}
	}
	return strings.Join(fragments, noteSeparator)
}
