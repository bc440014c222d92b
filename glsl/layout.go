// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glsl

import (
	"bytes"
	_ "embed"
	"text/template"

	"cogentcore.org/shaderpack/base/errors"
)

// Var is a located shader stage input or output variable.
type Var struct {
	Location int
	Type     string
	Name     string
}

// Member is one member of the uniform buffer block.
type Member struct {
	Type string
	Name string

	// Len is the array length, or 0 for a scalar member.
	Len int

	// Uniform marks members that correspond to a ShaderToy uniform
	// and therefore must be accessed through the block instance.
	Uniform bool
}

// Sampler is a texture sampler binding.
type Sampler struct {
	Binding int
	Name    string
}

// Layout describes the fixed interface of the destination shader:
// the stage inputs and outputs, the std140 uniform block that the
// runtime fills each frame, the channel samplers, and the entry point
// that adapts a ShaderToy image function to it.
type Layout struct {

	// Version is the value of the #version directive.
	Version string

	Inputs  []Var
	Outputs []Var

	// Block is the uniform block name and Instance its instance name,
	// which qualifies every uniform reference.
	Block    string
	Instance string
	Binding  int
	Members  []Member

	Samplers []Sampler

	// Coord is the name of the global holding the pixel coordinate,
	// computed by the CoordExpr expression.
	Coord     string
	CoordExpr string

	// ImageFunc is the ShaderToy image function called by EntryPoint.
	ImageFunc  string
	EntryPoint string

	// Color is the output variable that receives the image color.
	Color string
}

// DefaultLayout returns the layout expected by the Qt Quick
// ShaderEffect runtime that loads the compiled packs.
func DefaultLayout() *Layout {
	return &Layout{
		Version:  "450",
		Inputs:   []Var{{0, "vec2", "qt_TexCoord0"}},
		Outputs:  []Var{{0, "vec4", "fragColor"}},
		Block:    "buf",
		Instance: "ubuf",
		Binding:  0,
		Members: []Member{
			{Type: "mat4", Name: "qt_Matrix"},
			{Type: "float", Name: "qt_Opacity"},
			{Type: "float", Name: "iTime", Uniform: true},
			{Type: "float", Name: "iTimeDelta", Uniform: true},
			{Type: "float", Name: "iFrameRate", Uniform: true},
			{Type: "float", Name: "iSampleRate", Uniform: true},
			{Type: "int", Name: "iFrame", Uniform: true},
			{Type: "vec4", Name: "iDate", Uniform: true},
			{Type: "vec4", Name: "iMouse", Uniform: true},
			{Type: "vec3", Name: "iResolution", Uniform: true},
			{Type: "float", Name: "iChannelTime", Len: 4, Uniform: true},
			{Type: "vec3", Name: "iChannelResolution", Len: 4, Uniform: true},
		},
		Samplers: []Sampler{
			{1, "iChannel0"},
			{2, "iChannel1"},
			{3, "iChannel2"},
			{4, "iChannel3"},
		},
		Coord:      "fragCoord",
		CoordExpr:  "vec2(qt_TexCoord0.x, 1.0 - qt_TexCoord0.y) * ubuf.iResolution.xy",
		ImageFunc:  "mainImage",
		EntryPoint: "main",
		Color:      "fragColor",
	}
}

//go:embed header.glsl.tmpl
var headerTmplSrc string

//go:embed footer.glsl.tmpl
var footerTmplSrc string

var (
	headerTmpl = template.Must(template.New("header").Parse(headerTmplSrc))
	footerTmpl = template.Must(template.New("footer").Parse(footerTmplSrc))
)

// Header returns the declarations placed before every shader body.
func (ly *Layout) Header() (string, error) {
	return ly.render(headerTmpl)
}

// Footer returns the entry point appended after every shader body.
func (ly *Layout) Footer() (string, error) {
	return ly.render(footerTmpl)
}

func (ly *Layout) render(t *template.Template) (string, error) {
	var b bytes.Buffer
	if err := t.Execute(&b, ly); err != nil {
		return "", errors.Log(err)
	}
	return b.String(), nil
}

// Rules returns the rule set that qualifies every uniform member
// of the layout with the block instance name.
func (ly *Layout) Rules() *RuleSet {
	rs := &RuleSet{}
	for _, m := range ly.Members {
		if m.Uniform {
			rs.Add(m.Name, ly.Instance+"."+m.Name)
		}
	}
	return rs
}
