// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package glsl

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wantHeader = `#version 450

layout(location = 0) in vec2 qt_TexCoord0;
layout(location = 0) out vec4 fragColor;

layout(std140, binding = 0) uniform buf {
    mat4 qt_Matrix;
    float qt_Opacity;
    float iTime;
    float iTimeDelta;
    float iFrameRate;
    float iSampleRate;
    int iFrame;
    vec4 iDate;
    vec4 iMouse;
    vec3 iResolution;
    float iChannelTime[4];
    vec3 iChannelResolution[4];
} ubuf;

layout(binding = 1) uniform sampler2D iChannel0;
layout(binding = 2) uniform sampler2D iChannel1;
layout(binding = 3) uniform sampler2D iChannel2;
layout(binding = 4) uniform sampler2D iChannel3;

vec2 fragCoord = vec2(qt_TexCoord0.x, 1.0 - qt_TexCoord0.y) * ubuf.iResolution.xy;
`

const wantFooter = `
void main() {
    vec4 color = vec4(0.0);
    mainImage(color, fragCoord);
    fragColor = color;
}
`

var mainRe = regexp.MustCompile(`\bvoid\s+main\s*\(`)

func newRewriter(t *testing.T) *Rewriter {
	rw, err := NewRewriter(nil)
	require.NoError(t, err)
	return rw
}

func TestLayout(t *testing.T) {
	ly := DefaultLayout()
	h, err := ly.Header()
	require.NoError(t, err)
	assert.Equal(t, wantHeader, h)
	f, err := ly.Footer()
	require.NoError(t, err)
	assert.Equal(t, wantFooter, f)

	assert.Equal(t, []string{"iTime", "iTimeDelta", "iFrameRate", "iSampleRate",
		"iFrame", "iDate", "iMouse", "iResolution", "iChannelTime", "iChannelResolution"},
		ly.Rules().Names())
}

func TestRuleSetApply(t *testing.T) {
	rs := DefaultLayout().Rules()
	tests := []struct {
		in, want string
	}{
		{"float t = iTime;", "float t = ubuf.iTime;"},
		{"float t = iTimeScale * iTimeDelta;", "float t = iTimeScale * ubuf.iTimeDelta;"},
		{"myiTime + iTime_2 + _iTime", "myiTime + iTime_2 + _iTime"},
		{"ubuf.iTime", "ubuf.iTime"},
		{"ubuf . iTime", "ubuf . iTime"},
		{"p / iResolution.xy", "p / ubuf.iResolution.xy"},
		{"iChannelResolution[0].xy", "ubuf.iChannelResolution[0].xy"},
		{"texture(iChannel0, uv)", "texture(iChannel0, uv)"},
		{"(iMouse.z>0.)?iMouse.xy:vec2(0)", "(ubuf.iMouse.z>0.)?ubuf.iMouse.xy:vec2(0)"},
		{"int f = iFrame;int g=-iFrame;", "int f = ubuf.iFrame;int g=-ubuf.iFrame;"},
		{"#define T iTime\n", "#define T ubuf.iTime\n"},
		{"#define iTime 1.0\n", "#define iTime 1.0\n"},
		{"#ifdef iTime\n#endif", "#ifdef iTime\n#endif"},
		{"#if defined(iMouse) || iFrame > 0", "#if defined(iMouse) || ubuf.iFrame > 0"},
		{"t = speed * // seconds.\n    iTime;", "t = speed * // seconds.\n    ubuf.iTime;"},
		{"t = s. /* iTime */ x + /* a. */ iTime;", "t = s. /* iTime */ x + /* a. */ ubuf.iTime;"},
		{"x = iTime; // uses iTime", "x = ubuf.iTime; // uses iTime"},
		{"x = 1.0 / iTime;", "x = 1.0 / ubuf.iTime;"},
		{"x = iTime /* open", "x = ubuf.iTime /* open"},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, rs.Apply(test.in), test.in)
	}
}

func TestRuleSetIdempotent(t *testing.T) {
	rs := DefaultLayout().Rules()
	in := "vec2 uv = fragCoord / iResolution.xy; float t = iTime + iChannelTime[1];"
	once := rs.Apply(in)
	assert.Equal(t, once, rs.Apply(once))
	assert.Equal(t, 1, strings.Count(once, "ubuf.iTime "))
}

func TestStripVersion(t *testing.T) {
	in := "#version 300 es\nprecision highp float;\n  # version 450\nfloat x;"
	assert.Equal(t, "precision highp float;\nfloat x;", StripVersion(in))
}

func TestStripFunc(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"simple",
			"float a;\nvoid main() { a = 1.0; }\nfloat b;",
			"float a;\n\nfloat b;"},
		{"nested",
			"void main(void) {\n if (x) { y(); } else { for(;;){} }\n}\nvoid f() {}",
			"\nvoid f() {}"},
		{"comment braces",
			"void main() { // }\n /* } */ x(); }tail",
			"tail"},
		{"prototype",
			"void main();\nvoid mainImage(out vec4 c, in vec2 p) {}",
			"\nvoid mainImage(out vec4 c, in vec2 p) {}"},
		{"multiple",
			"void main(){a();}\nx;\nvoid  main ( ) {b();}",
			"\nx;\n"},
		{"unbalanced",
			"void main() { a();",
			"void main() { a();"},
		{"image func kept",
			"void mainImage(out vec4 c, in vec2 p){ c = vec4(0); }",
			"void mainImage(out vec4 c, in vec2 p){ c = vec4(0); }"},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, StripFunc(test.in, "main"), test.name)
	}
}

func TestMerge(t *testing.T) {
	assert.Equal(t, "a\n\nb", Merge("\na\n", " b\n"))
	assert.Equal(t, "b", Merge("  ", "b"))
	assert.Equal(t, "a", Merge("a", ""))
}

func TestRewrite(t *testing.T) {
	rw := newRewriter(t)
	src := "#version 300 es\nvoid mainImage(out vec4 c, in vec2 p){ c = vec4(iTime); }\nvoid main() { mainImage(gl_FragColor, gl_FragCoord.xy); }\n"
	out := rw.Rewrite(src)

	assert.True(t, strings.HasPrefix(out, wantHeader+"\n"))
	assert.True(t, strings.HasSuffix(out, wantFooter))
	assert.Contains(t, out, "c = vec4(ubuf.iTime);")
	assert.Len(t, mainRe.FindAllString(out, -1), 1)
	assert.Equal(t, 1, strings.Count(out, "#version"))
	assert.Equal(t, wantHeader+"\nvoid mainImage(out vec4 c, in vec2 p){ c = vec4(ubuf.iTime); }\n"+wantFooter, out)
}

func TestRewriteIdempotent(t *testing.T) {
	rw := newRewriter(t)
	src := `#define R iResolution
float h(vec2 p) { return fract(p.x * iTime); }
void main() {}
void mainImage(out vec4 c, in vec2 p) {
    vec2 uv = p / R.xy;
    c = vec4(uv, h(uv) + iChannelTime[0], iMouse.x);
}`
	once := rw.Rewrite(src)
	twice := rw.Rewrite(once)
	assert.Equal(t, once, twice)
	assert.NotContains(t, twice, "ubuf.ubuf.")
	assert.Len(t, mainRe.FindAllString(twice, -1), 1)
}

func TestPrepareMergeOrder(t *testing.T) {
	rw := newRewriter(t)
	common := "#version 450\nfloat helper(float x) { return x * iTime; }\nvoid main() {}\n"
	body := "void mainImage(out vec4 c, in vec2 p) { c = vec4(helper(1.0)); }"
	out := rw.Rewrite(Merge(rw.Prepare(common), rw.Clean(body)))

	def := strings.Index(out, "float helper(float x)")
	call := strings.Index(out, "helper(1.0)")
	require.GreaterOrEqual(t, def, 0)
	assert.Less(t, def, call)
	assert.Contains(t, out, "return x * ubuf.iTime;")
	assert.Len(t, mainRe.FindAllString(out, -1), 1)
}
