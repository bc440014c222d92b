// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glsl

import (
	"regexp"
	"strings"
)

var versionRe = regexp.MustCompile(`(?m)^[ \t]*#[ \t]*version\b[^\n]*(\n|$)`)

// StripVersion removes every #version directive line from the given code.
func StripVersion(code string) string {
	return versionRe.ReplaceAllString(code, "")
}

// StripFunc removes every definition of a void function with the given
// name from the code, including its complete block body, as well as any
// prototype declarations of it. The body is matched by brace depth,
// ignoring braces inside comments, so nested blocks are handled.
// A definition whose body is never closed is left in place.
func StripFunc(code, name string) string {
	re := regexp.MustCompile(`\bvoid\s+` + regexp.QuoteMeta(name) + `\s*\(`)
	var b strings.Builder
	pos := 0
	for {
		loc := re.FindStringIndex(code[pos:])
		if loc == nil {
			break
		}
		start, open := pos+loc[0], pos+loc[1]-1
		end := funcEnd(code, open)
		if end < 0 {
			b.WriteString(code[pos:open+1])
			pos = open + 1
			continue
		}
		b.WriteString(code[pos:start])
		pos = end
	}
	b.WriteString(code[pos:])
	return b.String()
}

// funcEnd returns the index just past the end of the function
// whose parameter list opens at the given index: after the closing
// brace of its body, or after the semicolon of a prototype.
// It returns -1 if there is no well-formed body or prototype.
func funcEnd(code string, open int) int {
	i := matchParen(code, open)
	if i < 0 {
		return -1
	}
	i = skipSpace(code, i)
	if i >= len(code) {
		return -1
	}
	switch code[i] {
	case ';':
		return i + 1
	case '{':
		return matchBrace(code, i)
	}
	return -1
}

// matchParen returns the index just past the parenthesis matching
// the one at open, or -1.
func matchParen(code string, open int) int {
	depth := 0
	for i := open; i < len(code); i++ {
		if n := skipComment(code, i); n > i {
			i = n - 1
			continue
		}
		switch code[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

// matchBrace returns the index just past the brace matching
// the one at open, or -1.
func matchBrace(code string, open int) int {
	depth := 0
	for i := open; i < len(code); i++ {
		if n := skipComment(code, i); n > i {
			i = n - 1
			continue
		}
		switch code[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

// skipSpace returns the index of the first character at or after i
// that is neither whitespace nor part of a comment.
func skipSpace(code string, i int) int {
	for i < len(code) {
		if n := skipComment(code, i); n > i {
			i = n
			continue
		}
		switch code[i] {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			i++
		default:
			return i
		}
	}
	return i
}

// skipComment returns the index just past the comment starting at i,
// or i if no comment starts there. An unterminated block comment
// extends to the end of the code.
func skipComment(code string, i int) int {
	if i+1 >= len(code) || code[i] != '/' {
		return i
	}
	switch code[i+1] {
	case '/':
		if n := strings.IndexByte(code[i:], '\n'); n >= 0 {
			return i + n
		}
		return len(code)
	case '*':
		if n := strings.Index(code[i+2:], "*/"); n >= 0 {
			return i + 2 + n + 2
		}
		return len(code)
	}
	return i
}

// Clean strips the #version directives and the definitions of the
// given entry point function from the code, leaving declarations and
// helper functions only.
func Clean(code, entryPoint string) string {
	return StripFunc(StripVersion(code), entryPoint)
}

// Merge concatenates the cleaned common block and the cleaned shader
// body, separated by a blank line, with surrounding whitespace trimmed.
func Merge(common, body string) string {
	common = strings.TrimSpace(common)
	body = strings.TrimSpace(body)
	if common == "" {
		return body
	}
	if body == "" {
		return common
	}
	return common + "\n\n" + body
}
