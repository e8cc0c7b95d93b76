package po

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func mustParse(t *testing.T, input string) *Catalog {
	t.Helper()
	c, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error: %s", err)
	}
	return c
}

func TestParseEntriesAndHeader(t *testing.T) {
	input := `# Translation of TL;DR Pro
msgid ""
msgstr ""
"Project-Id-Version: TL;DR Pro 1.2\n"
"Content-Type: text/plain; charset=UTF-8\n"
"Plural-Forms: nplurals=2; plural=(n != 1);\n"

#: admin/class-admin.php:42
msgid "Hello"
msgstr "Bonjour"

msgid "Bye"
msgstr "Au revoir"
`
	c := mustParse(t, input)

	want := map[string]string{"Hello": "Bonjour", "Bye": "Au revoir"}
	if !reflect.DeepEqual(c.Entries, want) {
		t.Errorf("Entries = %v, want %v", c.Entries, want)
	}
	if c.PluralForms != "nplurals=2; plural=(n != 1);" {
		t.Errorf("PluralForms = %q", c.PluralForms)
	}
	if got := c.Headers["Project-Id-Version"]; got != "TL;DR Pro 1.2" {
		t.Errorf("Headers[Project-Id-Version] = %q", got)
	}
	if got := c.HeaderField("content-type"); got != "text/plain; charset=UTF-8" {
		t.Errorf("HeaderField(content-type) = %q", got)
	}
	if _, ok := c.Entries[""]; ok {
		t.Error("header must not be a translatable entry")
	}
}

func TestParseLastEntryWithoutTrailingNewline(t *testing.T) {
	c := mustParse(t, "msgid \"First\"\nmsgstr \"Erste\"\n\nmsgid \"Last\"\nmsgstr \"Letzte\"")
	if got := c.Entries["Last"]; got != "Letzte" {
		t.Errorf("Entries[Last] = %q, want %q", got, "Letzte")
	}
	if len(c.Entries) != 2 {
		t.Errorf("got %d entries, want 2", len(c.Entries))
	}
}

func TestParseContinuationLines(t *testing.T) {
	input := `msgid ""
"Generate a "
"summary"
msgstr ""
"Erzeuge eine "
"Zusammenfassung"
msgid "Next"
msgstr "Weiter"
`
	c := mustParse(t, input)
	if got := c.Entries["Generate a summary"]; got != "Erzeuge eine Zusammenfassung" {
		t.Errorf("Entries[Generate a summary] = %q", got)
	}
	if got := c.Entries["Next"]; got != "Weiter" {
		t.Errorf("Entries[Next] = %q", got)
	}
}

func TestParseEscapes(t *testing.T) {
	input := `msgid "Line\nbreak"
msgstr "Zeile\nUmbruch \"zitiert\" \\ tab\there\r"
`
	c := mustParse(t, input)
	want := "Zeile\nUmbruch \"zitiert\" \\ tab\there\r"
	if got := c.Entries["Line\nbreak"]; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseEscapesPerFragment(t *testing.T) {
	// A trailing backslash of one fragment must not escape the next one.
	c := mustParse(t, "msgid \"a\"\nmsgstr \"\"\n\"x\\\\\"\n\"n\"\n")
	if got := c.Entries["a"]; got != `x\n` {
		t.Errorf("got %q, want %q", got, `x\n`)
	}
}

func TestParseDuplicateOverwrites(t *testing.T) {
	input := `msgid "Save"
msgstr "Speichern"

msgid "Save"
msgstr "Sichern"
`
	c := mustParse(t, input)
	if got := c.Entries["Save"]; got != "Sichern" {
		t.Errorf("Entries[Save] = %q, want %q", got, "Sichern")
	}
}

func TestParseSkipsUnsupportedKeywords(t *testing.T) {
	input := `msgid "One file"
msgid_plural "%d files"
msgstr[0] "Eine Datei"
"continued"
msgstr[1] "%d Dateien"

msgctxt "button"
msgid "Open"
msgstr "Öffnen"

garbage line
msgid "Close"
msgstr "Schließen"
`
	c := mustParse(t, input)
	want := map[string]string{"Open": "Öffnen", "Close": "Schließen"}
	if !reflect.DeepEqual(c.Entries, want) {
		t.Errorf("Entries = %v, want %v", c.Entries, want)
	}
	if c.Skipped != 6 {
		t.Errorf("Skipped = %d, want 6", c.Skipped)
	}
}

func TestParseEmptyAndBroken(t *testing.T) {
	for _, input := range []string{"", "\n\n", "# only a comment\n#, fuzzy\n"} {
		c, err := Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("Parse(%q) error: %s", input, err)
		}
		if len(c.Entries) != 0 {
			t.Errorf("Parse(%q) returned entries %v", input, c.Entries)
		}
	}

	_, err := Parse(strings.NewReader("this is\nnot a PO file\n"))
	if !errors.Is(err, ErrParse) {
		t.Errorf("Parse() error = %v, want ErrParse", err)
	}
}

func TestParseMsgstrWithoutMsgid(t *testing.T) {
	c := mustParse(t, "msgstr \"orphan\"\n\nmsgid \"a\"\nmsgstr \"b\"\n")
	want := map[string]string{"a": "b"}
	if !reflect.DeepEqual(c.Entries, want) {
		t.Errorf("Entries = %v, want %v", c.Entries, want)
	}
}

func TestParseCRLF(t *testing.T) {
	c := mustParse(t, "msgid \"Yes\"\r\nmsgstr \"Oui\"\r\n\r\nmsgid \"No\"\r\nmsgstr \"Non\"\r\n")
	want := map[string]string{"Yes": "Oui", "No": "Non"}
	if !reflect.DeepEqual(c.Entries, want) {
		t.Errorf("Entries = %v, want %v", c.Entries, want)
	}
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`plain`, "plain"},
		{`a\nb`, "a\nb"},
		{`\"q\"`, `"q"`},
		{`back\\slash`, `back\slash`},
		{`\t\r`, "\t\r"},
		{`unknown \x`, `unknown \x`},
		{`trailing \`, `trailing \`},
	}
	for _, tt := range tests {
		if got := Unescape(tt.in); got != tt.want {
			t.Errorf("Unescape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseFileNotFound(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.po"), "")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ParseFile() error = %v, want os.ErrNotExist", err)
	}
}
