package reforge

import (
	"fmt"
	"io/fs"
	"strings"
	"unicode/utf8"
)

// ShaderNotFoundError reports a shader module that could not be loaded:
// the file does not exist in the library's filesystem or is not valid UTF-8.
type ShaderNotFoundError struct {
	// Name is the module name as requested, relative to the library root.
	Name string
}

// Error implements the error interface.
func (e *ShaderNotFoundError) Error() string {
	return fmt.Sprintf("reforge: shader not found: %s", e.Name)
}

// ShaderParseError reports shader source that loaded but could not be used:
// a malformed import directive, or a Kage compile failure surfaced by
// [BuildPass].
type ShaderParseError struct {
	// Name is the module (or pass) the error originated in.
	Name string
	// Message is the underlying parser or compiler output.
	Message string
}

// Error implements the error interface.
func (e *ShaderParseError) Error() string {
	return fmt.Sprintf("reforge: shader parse error in %s:\n%s", e.Name, e.Message)
}

// ShaderLibrary loads and flattens shader modules from a filesystem.
//
// Pass [os.DirFS] over the live shader directory during development so the
// watcher-triggered rebuilds see edits immediately, or an embed.FS in
// shipped builds where sources are frozen into the binary. The same module
// names work against either.
type ShaderLibrary struct {
	fsys fs.FS
}

// NewShaderLibrary creates a library reading module names relative to the
// root of fsys.
func NewShaderLibrary(fsys fs.FS) *ShaderLibrary {
	return &ShaderLibrary{fsys: fsys}
}

// Load returns the raw text of a single module without expanding imports.
// A missing file or non-UTF-8 content yields a [ShaderNotFoundError].
func (l *ShaderLibrary) Load(name string) (string, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return "", &ShaderNotFoundError{Name: name}
	}
	if !utf8.Valid(data) {
		return "", &ShaderNotFoundError{Name: name}
	}
	return string(data), nil
}

// Build loads a module and expands its import graph into one compilable
// source text.
//
// A line starting with #import followed by a double-quoted relative path
// includes another module at that point. Expansion is depth-first in source
// order; each module's body is emitted at most once per Build call, so
// repeated and cyclic imports are harmless: the first occurrence wins and
// later ones expand to nothing. Import lines are kept in the output as
// comments so line provenance survives flattening. Every other line passes
// through verbatim.
//
// Kage (like WGSL) is declaration-order independent, so imports need no
// topological sorting; emitting each module once is enough to avoid
// duplicate symbols.
func (l *ShaderLibrary) Build(name string) (string, error) {
	var b strings.Builder
	if err := l.build(name, map[string]bool{}, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// build appends the expanded text of one module. seen spans a single
// top-level Build call; a module already in it expands to nothing.
func (l *ShaderLibrary) build(name string, seen map[string]bool, b *strings.Builder) error {
	if seen[name] {
		return nil
	}
	seen[name] = true

	src, err := l.Load(name)
	if err != nil {
		return err
	}

	for _, line := range sourceLines(src) {
		if !strings.HasPrefix(line, "#import") {
			b.WriteString(line)
			b.WriteByte('\n')
			continue
		}
		parts := strings.Split(line, `"`)
		if len(parts) < 3 {
			return &ShaderParseError{
				Name:    name,
				Message: fmt.Sprintf("invalid import directive %q: expected #import \"file\"", line),
			}
		}
		// Keep the directive as a comment for traceability.
		b.WriteString("//")
		b.WriteString(line)
		b.WriteByte('\n')
		if err := l.build(parts[1], seen, b); err != nil {
			return err
		}
	}
	return nil
}

// sourceLines splits shader text into lines without terminators, handling
// both LF and CRLF, with no phantom empty line after a trailing newline.
func sourceLines(src string) []string {
	src = strings.TrimSuffix(src, "\n")
	if src == "" {
		return nil
	}
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
