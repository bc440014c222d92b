// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glsl

import "strings"

// Rewriter turns an expanded ShaderToy shader into a self-contained
// shader for a [Layout]: the layout header, the body with every
// uniform qualified, and an entry point calling the image function.
// It is safe for concurrent use.
type Rewriter struct {
	Layout *Layout
	Rules  *RuleSet

	header string
	footer string
}

// NewRewriter returns a new [Rewriter] for the given layout,
// which defaults to [DefaultLayout] if nil.
func NewRewriter(ly *Layout) (*Rewriter, error) {
	if ly == nil {
		ly = DefaultLayout()
	}
	rw := &Rewriter{Layout: ly, Rules: ly.Rules()}
	var err error
	if rw.header, err = ly.Header(); err != nil {
		return nil, err
	}
	if rw.footer, err = ly.Footer(); err != nil {
		return nil, err
	}
	return rw, nil
}

// Header returns the rendered layout header.
func (rw *Rewriter) Header() string { return rw.header }

// Footer returns the rendered entry point footer.
func (rw *Rewriter) Footer() string { return rw.footer }

// Clean strips the version directives and entry point definitions.
func (rw *Rewriter) Clean(code string) string {
	return Clean(code, rw.Layout.EntryPoint)
}

// Prepare cleans the code and qualifies its uniforms, without adding
// the header and footer. It is used for common blocks before they are
// merged into each shader.
func (rw *Rewriter) Prepare(code string) string {
	return rw.Rules.Apply(rw.Clean(code))
}

// Rewrite returns the complete destination shader for the given code.
// Code that already starts with the header is treated as previous
// output, so rewriting is idempotent.
func (rw *Rewriter) Rewrite(code string) string {
	code = strings.TrimPrefix(code, rw.header)
	body := strings.TrimSpace(rw.Prepare(code))
	return rw.header + "\n" + body + "\n" + rw.footer
}
