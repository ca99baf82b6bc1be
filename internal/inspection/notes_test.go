package inspection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNotes(t *testing.T) {
	tests := []struct {
		name  string
		notes string
		want  []NoteEntry
	}{
		{
			name:  "empty string",
			notes: "",
			want:  nil,
		},
		{
			name:  "single tagged fragment",
			notes: "Q1: trail clear",
			want:  []NoteEntry{{Code: "Q1", Text: "trail clear"}},
		},
		{
			name:  "multiple tagged fragments",
			notes: "Q1: trail clear; Q7_Access: gate locked",
			want: []NoteEntry{
				{Code: "Q1", Text: "trail clear"},
				{Code: "Q7_Access", Text: "gate locked"},
			},
		},
		{
			name:  "fragment without code keeps text and order",
			notes: "Q1: trail clear; loose remark",
			want: []NoteEntry{
				{Code: "Q1", Text: "trail clear"},
				{Text: "loose remark"},
			},
		},
		{
			name:  "non-Q prefix is not a code",
			notes: "X1: not an observation",
			want:  []NoteEntry{{Text: "X1: not an observation"}},
		},
		{
			name:  "repeated code yields separate entries",
			notes: "Q2: first; Q2: second",
			want: []NoteEntry{
				{Code: "Q2", Text: "first"},
				{Code: "Q2", Text: "second"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseNotes(tt.notes))
		})
	}
}

func TestJoinNotes(t *testing.T) {
	entries := []NoteEntry{
		{Code: "Q1", Text: "trail clear"},
		{Text: "loose remark"},
		{Code: "Q2", Text: "gate locked"},
	}
	assert.Equal(t, "Q1: trail clear; loose remark; Q2: gate locked", JoinNotes(entries))
	assert.Equal(t, "", JoinNotes(nil))
}

func TestNotesRoundTrip(t *testing.T) {
	notes := "Q1: trail clear; Q2: gate locked; Q2: fence damaged"
	assert.Equal(t, notes, JoinNotes(ParseNotes(notes)))
}
