package po

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/qiniu/iconv"
	log "github.com/sirupsen/logrus"
)

const defaultEncoding = "UTF-8"

var (
	utf8BOM   = []byte{0xEF, 0xBB, 0xBF}
	charsetRe = regexp.MustCompile(`(?i)Content-Type:[^"\n]*charset=([A-Za-z0-9._:-]+)`)
)

// headerRecord returns the msgstr lines of the leading msgid "" record of
// raw PO content, or nil if the content does not start with one. Comments
// and blank lines before it are ignored.
func headerRecord(data []byte) [][]byte {
	var (
		header  [][]byte
		inMsgid bool
	)
	for _, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimRight(line, " \t\r")
		switch {
		case !inMsgid && len(header) == 0:
			if len(line) == 0 || line[0] == '#' {
				continue
			}
			if !bytes.HasPrefix(line, []byte("msgid")) ||
				string(bytes.TrimSpace(line[len("msgid"):])) != `""` {
				return nil
			}
			inMsgid = true
		case inMsgid:
			// A continuation here means a multi-line msgid, not a header.
			if !bytes.HasPrefix(line, []byte("msgstr ")) {
				return nil
			}
			inMsgid = false
			header = append(header, line)
		case len(line) > 0 && line[0] == '"':
			header = append(header, line)
		default:
			return header
		}
	}
	return header
}

// DeclaredCharset returns the charset named in the Content-Type field of
// the header entry of raw PO content, or "" if there is none. The
// "CHARSET" placeholder of template files counts as none.
func DeclaredCharset(data []byte) string {
	for _, line := range headerRecord(data) {
		m := charsetRe.FindSubmatch(line)
		if m == nil {
			continue
		}
		charset := string(m[1])
		if strings.EqualFold(charset, "CHARSET") {
			return ""
		}
		return charset
	}
	return ""
}

func sameEncoding(enc1, enc2 string) bool {
	enc1 = strings.Replace(strings.ToLower(enc1), "-", "", -1)
	enc2 = strings.Replace(strings.ToLower(enc2), "-", "", -1)
	return enc1 == enc2
}

// DecodeCharset returns data converted to UTF-8. The source charset comes
// from the Content-Type header; fallback is used when no charset is declared
// and the content is not valid UTF-8.
func DecodeCharset(data []byte, fallback string) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	charset := DeclaredCharset(data)
	if charset == "" || sameEncoding(charset, defaultEncoding) {
		if utf8.Valid(data) {
			return data, nil
		}
		if charset != "" || fallback == "" {
			return nil, &ParseError{Err: fmt.Errorf("%w: content is not valid UTF-8", ErrEncoding)}
		}
		charset = fallback
	}

	log.Debugf("converting PO content from %s to %s", charset, defaultEncoding)
	out, err := convert(data, charset)
	if err != nil {
		return nil, &ParseError{Err: fmt.Errorf("%w: %s: %v", ErrEncoding, charset, err)}
	}
	if !utf8.Valid(out) {
		return nil, &ParseError{Err: fmt.Errorf("%w: bad %s characters", ErrEncoding, charset)}
	}
	return out, nil
}

func convert(data []byte, charset string) ([]byte, error) {
	cd, err := iconv.Open(defaultEncoding, charset)
	if err != nil {
		return nil, fmt.Errorf("iconv.Open failed: %w", err)
	}
	defer cd.Close()

	outbuf := make([]byte, len(data)*4+16)
	n, inleft, err := cd.Do(data, len(data), outbuf)
	if err != nil {
		return nil, err
	}
	if inleft > 0 {
		return nil, fmt.Errorf("%d bytes left unconverted", inleft)
	}
	return outbuf[:n], nil
}
