package rawg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"plain text", "Just a plain description.", false},
		{"empty", "", false},
		{"paragraph tag", "<p>Hello</p>", true},
		{"bold tag", "Some <b>bold</b> text", true},
		{"line break", "line one<br/>line two", true},
		{"uppercase tag", "<P>Hello</P>", true},
		{"angle brackets without tag", "1 < 2 and 3 > 2", false},
		{"anchor", `<a href="https://example.com">link</a>`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, containsHTML(tt.input))
		})
	}
}

func TestHTMLToText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text unchanged",
			input: "No markup here.",
			want:  "No markup here.",
		},
		{
			name:  "empty unchanged",
			input: "",
			want:  "",
		},
		{
			name:  "paragraph to text",
			input: "<p>First paragraph.</p>",
			want:  "First paragraph.",
		},
		{
			name:  "bold to markdown",
			input: "<p>Some <b>bold</b> text.</p>",
			want:  "Some **bold** text.",
		},
		{
			name:  "emphasis to markdown",
			input: "<p>An <em>emphasized</em> word.</p>",
			want:  "An *emphasized* word.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, htmlToText(tt.input))
		})
	}
}

func TestStripTags(t *testing.T) {
	got := stripTags("<div><p>Hello <b>world</b>.</p><p>Second.</p></div>")
	assert.Contains(t, got, "Hello world.")
	assert.Contains(t, got, "Second.")
	assert.NotContains(t, got, "<")
}
