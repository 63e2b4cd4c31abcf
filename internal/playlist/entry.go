package playlist

import (
	"bytes"
	"strings"
	"unicode"

	"filerename/internal/naming"
)

// Entry is one line of a playlist without its line terminator.
type Entry struct {
	Text      string
	Directive bool
}

// Reference reports whether the entry names a media file.
func (e Entry) Reference() bool {
	return !e.Directive && strings.TrimSpace(e.Text) != ""
}

// Document is a parsed playlist that can be written back byte-for-byte when
// no entry changes.
type Document struct {
	Entries []Entry
	// Newline is "\r\n" when the first terminated line used CRLF, else "\n".
	Newline string
	// TrailingNewline records whether the final line was terminated.
	TrailingNewline bool
}

// Parse splits playlist content into entries. Lines starting with "#" are
// directives or comments.
func Parse(data []byte) Document {
	doc := Document{Newline: "\n"}
	if len(data) == 0 {
		return doc
	}
	if idx := bytes.IndexByte(data, '\n'); idx > 0 && data[idx-1] == '\r' {
		doc.Newline = "\r\n"
	}
	text := string(data)
	if strings.HasSuffix(text, "\n") {
		doc.TrailingNewline = true
		text = strings.TrimSuffix(text, "\n")
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		doc.Entries = append(doc.Entries, Entry{
			Text:      line,
			Directive: strings.HasPrefix(line, "#"),
		})
	}
	return doc
}

// Bytes renders the document with its recorded line terminator.
func (d Document) Bytes() []byte {
	var buf bytes.Buffer
	for i, entry := range d.Entries {
		buf.WriteString(entry.Text)
		if i < len(d.Entries)-1 || d.TrailingNewline {
			buf.WriteString(d.Newline)
		}
	}
	return buf.Bytes()
}

// LineChange describes one rewritten entry.
type LineChange struct {
	Line int
	From string
	To   string
}

// Rewrite returns a copy of the document with every reference transformed by
// rules, plus the list of entries that changed. Whitespace around a reference
// is kept.
func (d Document) Rewrite(rules naming.RuleSet) (Document, []LineChange) {
	out := Document{
		Newline:         d.Newline,
		TrailingNewline: d.TrailingNewline,
		Entries:         make([]Entry, len(d.Entries)),
	}
	var changes []LineChange
	for i, entry := range d.Entries {
		out.Entries[i] = entry
		if !entry.Reference() {
			continue
		}
		original := strings.TrimSpace(entry.Text)
		rewritten := RewriteReference(rules, original)
		if rewritten == original {
			continue
		}
		lead := len(entry.Text) - len(strings.TrimLeftFunc(entry.Text, unicode.IsSpace))
		trail := len(strings.TrimRightFunc(entry.Text, unicode.IsSpace))
		out.Entries[i].Text = entry.Text[:lead] + rewritten + entry.Text[trail:]
		changes = append(changes, LineChange{Line: i + 1, From: original, To: rewritten})
	}
	return out, changes
}

// RewriteReference transforms the basename stem of a playlist reference. The
// directory part, separated by "/" or "\", is kept verbatim.
func RewriteReference(rules naming.RuleSet, ref string) string {
	cut := strings.LastIndexAny(ref, `/\`)
	dir, base := ref[:cut+1], ref[cut+1:]
	if base == "" {
		return ref
	}
	return dir + rules.TransformStem(base)
}
