// Package fortios emits FortiOS CLI scripts.
//
// A Script tracks nesting of config/edit stanzas and indents every line by
// four spaces per level, which is the layout FortiGate itself prints in
// "show" output. Values are written exactly as given: the builder never
// escapes or validates them.
package fortios

import (
	"fmt"
	"strconv"
	"strings"
)

const indentUnit = "    "

// Script builds a FortiOS CLI script line by line.
type Script struct {
	lines []string
	depth int
}

// NewScript creates an empty script.
func NewScript() *Script {
	return &Script{
		lines: make([]string, 0, 64),
	}
}

// AddLine adds a raw line at the current indentation.
func (s *Script) AddLine(line string) {
	s.lines = append(s.lines, strings.Repeat(indentUnit, s.depth)+line)
}

// Blank adds an empty separator line. It is never indented.
func (s *Script) Blank() {
	s.lines = append(s.lines, "")
}

// Config opens a "config <path>" stanza.
func (s *Script) Config(path string) {
	s.AddLine("config " + path)
	s.depth++
}

// End closes the innermost config stanza.
func (s *Script) End() {
	s.pop()
	s.AddLine("end")
}

// Edit opens an entry with a quoted name.
func (s *Script) Edit(name string) {
	s.AddLine("edit " + Quote(name))
	s.depth++
}

// EditID opens an entry with a numeric identifier. FortiOS treats 0 as
// "assign the next free id".
func (s *Script) EditID(id int) {
	s.AddLine("edit " + strconv.Itoa(id))
	s.depth++
}

// Next closes the innermost edit entry.
func (s *Script) Next() {
	s.pop()
	s.AddLine("next")
}

// Set adds "set <key> <value>" with the value written verbatim.
func (s *Script) Set(key, value string) {
	s.AddLine("set " + key + " " + value)
}

// SetInt adds "set <key> <n>".
func (s *Script) SetInt(key string, n int) {
	s.Set(key, strconv.Itoa(n))
}

// SetQuoted adds "set <key>" followed by each value in double quotes.
func (s *Script) SetQuoted(key string, values ...string) {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = Quote(v)
	}
	s.Set(key, strings.Join(quoted, " "))
}

// Enable adds "set <key> enable".
func (s *Script) Enable(key string) {
	s.Set(key, "enable")
}

// Disable adds "set <key> disable".
func (s *Script) Disable(key string) {
	s.Set(key, "disable")
}

// Depth returns the current nesting level.
func (s *Script) Depth() int {
	return s.depth
}

// Lines returns a copy of the script lines.
func (s *Script) Lines() []string {
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

// String joins the script lines with newlines. There is no trailing newline.
func (s *Script) String() string {
	return strings.Join(s.lines, "\n")
}

// Validate reports stanzas left open.
func (s *Script) Validate() error {
	if s.depth != 0 {
		return fmt.Errorf("unbalanced script: %d stanza(s) left open", s.depth)
	}
	return nil
}

func (s *Script) pop() {
	if s.depth > 0 {
		s.depth--
	}
}

// Quote wraps v in double quotes without escaping.
func Quote(v string) string {
	return `"` + v + `"`
}
