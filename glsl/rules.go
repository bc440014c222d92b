// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glsl

import (
	"slices"
	"strings"
)

// RuleSet maps identifier names to their replacement text.
// An identifier is a maximal run of letters, digits and underscores,
// and it is only replaced when it equals a rule name exactly.
// Identifiers that follow a '.' member access (ignoring whitespace)
// are already qualified and are never replaced, which makes Apply
// idempotent when every replacement ends in a qualified reference.
// Macro names introduced or tested by #define, #undef, #ifdef,
// #ifndef and defined are also left alone. Comments are copied
// unchanged and are skipped when looking back for a '.'.
type RuleSet struct {
	rules map[string]string
	names []string
}

// Add adds a rule replacing name with to.
func (rs *RuleSet) Add(name, to string) {
	if rs.rules == nil {
		rs.rules = make(map[string]string)
	}
	if _, has := rs.rules[name]; !has {
		rs.names = append(rs.names, name)
	}
	rs.rules[name] = to
}

// Names returns the rule names in the order they were added.
func (rs *RuleSet) Names() []string {
	return slices.Clone(rs.names)
}

// Len returns the number of rules.
func (rs *RuleSet) Len() int {
	return len(rs.names)
}

var macroKeywords = map[string]bool{
	"define":  true,
	"undef":   true,
	"ifdef":   true,
	"ifndef":  true,
	"defined": true,
}

// Apply returns the code with every rule applied in a single pass.
func (rs *RuleSet) Apply(code string) string {
	if len(rs.rules) == 0 {
		return code
	}
	var b strings.Builder
	b.Grow(len(code) + len(code)/8)
	var prevWord string
	var prevChar byte
	for i := 0; i < len(code); {
		c := code[i]
		if n := commentLen(code[i:]); n > 0 {
			b.WriteString(code[i : i+n])
			i += n
			continue
		}
		if !isWordChar(c) {
			b.WriteByte(c)
			if !isSpace(c) {
				prevChar = c
				if c != '(' {
					prevWord = ""
				}
			}
			i++
			continue
		}
		j := i + 1
		for j < len(code) && isWordChar(code[j]) {
			j++
		}
		word := code[i:j]
		to, has := rs.rules[word]
		if has && prevChar != '.' && !macroKeywords[prevWord] {
			b.WriteString(to)
		} else {
			b.WriteString(word)
		}
		prevWord = word
		prevChar = code[j-1]
		i = j
	}
	return b.String()
}

// commentLen returns the length of the comment at the start of code,
// or 0 if code does not start with one. A line comment ends before
// its newline, and an unterminated block comment runs to the end.
func commentLen(code string) int {
	switch {
	case strings.HasPrefix(code, "//"):
		if n := strings.IndexByte(code, '\n'); n >= 0 {
			return n
		}
		return len(code)
	case strings.HasPrefix(code, "/*"):
		if n := strings.Index(code[2:], "*/"); n >= 0 {
			return n + 4
		}
		return len(code)
	}
	return 0
}

func isWordChar(c byte) bool {
	return c == '_' || '0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}
