// Package util implements compiling PO files into MO files.
package util

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/leonelquinteros/gotext"
	log "github.com/sirupsen/logrus"
	"github.com/tldr-pro/po-compiler/mo"
	"github.com/tldr-pro/po-compiler/po"
)

var (
	// ErrSourceNotFound is returned when the PO file does not exist.
	ErrSourceNotFound = errors.New("source file not found")
	// ErrNoSourceFiles is returned by CompileDir when there is nothing to compile.
	ErrNoSourceFiles = errors.New("no .po files found")
	// ErrVerify is returned when the written MO file does not read back.
	ErrVerify = errors.New("verification of MO file failed")
)

// CompileOptions controls a compile run.
type CompileOptions struct {
	// IncludeHeader writes the header entry (msgid "") into the MO file.
	IncludeHeader bool
	// Verify reloads the written file with an independent MO reader.
	Verify bool
	// FallbackCharset is used for non UTF-8 files without a declared charset.
	FallbackCharset string
}

// CompileResult describes one compiled file.
type CompileResult struct {
	Source      string
	Destination string
	Size        int64
	Entries     int
	PluralForms string
}

// BatchResult holds the outcome of CompileDir.
type BatchResult struct {
	Results  []*CompileResult
	Failures map[string]error
}

// Succeeded returns the number of compiled files.
func (v *BatchResult) Succeeded() int {
	return len(v.Results)
}

// Failed returns the number of files which could not be compiled.
func (v *BatchResult) Failed() int {
	return len(v.Failures)
}

// OutputPath returns src with its .po extension replaced by .mo.
func OutputPath(src string) string {
	ext := filepath.Ext(src)
	if strings.EqualFold(ext, ".po") {
		return strings.TrimSuffix(src, ext) + ".mo"
	}
	return src + ".mo"
}

// CompileFile compiles src into dst. An empty dst means OutputPath(src).
func CompileFile(src, dst string, opts CompileOptions) (*CompileResult, error) {
	if dst == "" {
		dst = OutputPath(src)
	}

	catalog, err := po.ParseFile(src, opts.FallbackCharset)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, src)
		}
		return nil, fmt.Errorf("fail to parse %s: %w", src, err)
	}
	if catalog.Skipped > 0 {
		log.Debugf("%s: skipped %d unsupported lines", src, catalog.Skipped)
	}

	entries := catalog.Entries
	if opts.IncludeHeader && len(catalog.Headers) > 0 {
		entries = make(map[string]string, len(catalog.Entries)+1)
		for k, v := range catalog.Entries {
			entries[k] = v
		}
		entries[""] = headerString(catalog.Headers)
	}

	var check func(string) error
	if opts.Verify {
		check = func(tmpPath string) error {
			return verifyMoFile(tmpPath, catalog.Entries)
		}
	}
	size, err := mo.WriteFileWithCheck(dst, entries, check)
	if err != nil {
		return nil, err
	}

	return &CompileResult{
		Source:      src,
		Destination: dst,
		Size:        size,
		Entries:     len(catalog.Entries),
		PluralForms: catalog.PluralForms,
	}, nil
}

// headerString rebuilds the header entry from parsed fields in a stable order.
func headerString(headers map[string]string) string {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s\n", k, headers[k])
	}
	return b.String()
}

// verifyMoFile checks that every translated entry resolves in the MO file
// at dst when read with gotext.
func verifyMoFile(dst string, entries map[string]string) error {
	data, err := os.ReadFile(dst)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrVerify, err)
	}
	if _, err := mo.Decode(data); err != nil {
		return fmt.Errorf("%w: %v", ErrVerify, err)
	}

	catalog := gotext.NewMo()
	catalog.Parse(data)
	for _, id := range mo.SortedKeys(entries) {
		want := entries[id]
		if want == "" {
			continue
		}
		if got := catalog.Get(id); got != want {
			return fmt.Errorf("%w: %s: msgid %q reads back as %q", ErrVerify, dst, id, got)
		}
	}
	log.Debugf("verified %d entries in %s", len(entries), dst)
	return nil
}

// FindPoFiles returns the *.po files in dir in lexical order.
func FindPoFiles(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.po"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// CompileDir compiles every *.po file in dir to its sibling .mo file. A
// failing file is reported and counted, the other files are still compiled.
func CompileDir(dir string, opts CompileOptions, out io.Writer) (*BatchResult, error) {
	if !IsDir(dir) {
		return nil, fmt.Errorf("directory does not exist: %s", dir)
	}
	files, err := FindPoFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSourceFiles, dir)
	}

	result := &BatchResult{Failures: make(map[string]error)}
	var errs []string
	for _, src := range files {
		r, err := CompileFile(src, "", opts)
		if err != nil {
			result.Failures[src] = err
			errs = append(errs, err.Error())
			log.Debugf("fail to compile %s: %s", src, err)
			continue
		}
		result.Results = append(result.Results, r)
		PrintCompileResult(out, r)
	}

	ReportWarnAndErrors(errs, "", result.Failed() == 0)
	fmt.Fprintf(out, "compiled: %d, failed: %d\n", result.Succeeded(), result.Failed())
	return result, nil
}

// PrintCompileResult writes a progress line for r.
func PrintCompileResult(out io.Writer, r *CompileResult) {
	fmt.Fprintf(out, "%s -> %s (%d bytes, %d entries)\n",
		r.Source, r.Destination, r.Size, r.Entries)
}
