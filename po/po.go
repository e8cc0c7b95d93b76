// Package po parses gettext PO files into flat msgid/msgstr catalogs.
package po

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

var (
	// ErrParse is reported when a file has content but no msgid/msgstr record.
	ErrParse = errors.New("no msgid/msgstr records found")
	// ErrEncoding is reported when the content cannot be turned into UTF-8.
	ErrEncoding = errors.New("bad character encoding")
)

// ParseError describes a PO file which cannot be compiled.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Err)
	}
	return e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// Catalog holds the translations and header fields of one PO file.
type Catalog struct {
	// Entries maps msgid to msgstr, the header entry excluded.
	Entries map[string]string
	// Headers holds the "Key: Value" fields of the header entry.
	Headers map[string]string
	// PluralForms is the value of the Plural-Forms header.
	PluralForms string
	// Skipped counts lines which matched no known pattern.
	Skipped int
}

// HeaderField returns a header field value by name, ignoring case.
func (c *Catalog) HeaderField(name string) string {
	if v, ok := c.Headers[name]; ok {
		return v
	}
	for k, v := range c.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

type parseState int

const (
	stateIdle parseState = iota
	stateMsgid
	stateMsgstr
	// stateSkip follows a keyword we do not compile, e.g. msgctxt or msgstr[0].
	stateSkip
)

type parser struct {
	catalog *Catalog
	state   parseState
	msgid   strings.Builder
	msgstr  strings.Builder
	records int
	content int
}

// commit stores the pending pair if it reached the msgstr state.
func (p *parser) commit() {
	if p.state == stateMsgstr {
		p.catalog.add(p.msgid.String(), p.msgstr.String())
	}
	p.msgid.Reset()
	p.msgstr.Reset()
	p.state = stateIdle
}

func (p *parser) line(line string) {
	line = strings.TrimRight(line, " \t\r")
	if line == "" || strings.HasPrefix(line, "#") {
		p.commit()
		return
	}

	p.content++
	if text, ok := keyword(line, "msgid"); ok {
		p.commit()
		p.records++
		p.state = stateMsgid
		p.msgid.WriteString(text)
		return
	}
	if text, ok := keyword(line, "msgstr"); ok {
		if p.state != stateMsgid {
			p.catalog.Skipped++
			if p.state == stateMsgstr {
				p.commit()
			}
			p.state = stateSkip
			return
		}
		p.records++
		p.state = stateMsgstr
		p.msgstr.WriteString(text)
		return
	}
	if strings.HasPrefix(line, `"`) {
		text, ok := quoted(line)
		switch {
		case !ok:
			p.catalog.Skipped++
		case p.state == stateMsgid:
			p.msgid.WriteString(text)
		case p.state == stateMsgstr:
			p.msgstr.WriteString(text)
		default:
			p.catalog.Skipped++
		}
		return
	}

	// Plural forms, message contexts and anything unknown.
	p.catalog.Skipped++
	if p.state == stateMsgstr {
		p.commit()
	}
	p.state = stateSkip
}

func (c *Catalog) add(msgid, msgstr string) {
	if msgid != "" {
		c.Entries[msgid] = msgstr
		return
	}
	for _, line := range strings.Split(msgstr, "\n") {
		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		if key == "" {
			continue
		}
		value := strings.TrimSpace(line[idx+1:])
		c.Headers[key] = value
		if strings.EqualFold(key, "Plural-Forms") {
			c.PluralForms = value
		}
	}
}

// keyword matches lines of the exact form `<name> "<text>"` and returns the
// unescaped text.
func keyword(line, name string) (string, bool) {
	if !strings.HasPrefix(line, name) {
		return "", false
	}
	rest := line[len(name):]
	if rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
		return "", false
	}
	return quoted(strings.TrimLeft(rest, " \t"))
}

func quoted(s string) (string, bool) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", false
	}
	return Unescape(s[1 : len(s)-1]), true
}

// Unescape translates the PO escape sequences \n, \r, \t, \" and \\.
// Unknown sequences are kept as they are.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		switch s[i+1] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i+1])
		}
		i++
	}
	return b.String()
}

// Parse reads UTF-8 PO content from r.
func Parse(r io.Reader) (*Catalog, error) {
	p := parser{
		catalog: &Catalog{
			Entries: make(map[string]string),
			Headers: make(map[string]string),
		},
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if !utf8.ValidString(line) {
			return nil, &ParseError{Line: lineNum, Err: ErrEncoding}
		}
		p.line(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading PO file: %w", err)
	}
	// Files often end without a blank line after the last msgstr.
	p.commit()

	if p.records == 0 && p.content > 0 {
		return nil, &ParseError{Err: ErrParse}
	}
	return p.catalog, nil
}

// ParseBytes converts data to UTF-8 according to its declared charset and
// parses it. fallback is tried for undeclared, non UTF-8 content.
func ParseBytes(data []byte, fallback string) (*Catalog, error) {
	text, err := DecodeCharset(data, fallback)
	if err != nil {
		return nil, err
	}
	return Parse(bytes.NewReader(text))
}

// ParseFile reads and parses a PO file from disk.
func ParseFile(path, fallback string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseBytes(data, fallback)
}
