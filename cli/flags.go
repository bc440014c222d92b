// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/spf13/pflag"
)

// field is one exported config field bound to the command line.
type field struct {
	sf     reflect.StructField
	value  reflect.Value
	long   string
	short  string
	posarg int // -1 if not a positional argument
}

// fields returns the command line fields of the given config struct pointer,
// based on the `flag:` and `posarg:` field tags. A `flag:"-"` tag excludes the field.
// The flag names in a `flag:` tag are comma-separated, with a one-letter
// name used as the shorthand; the long name otherwise defaults to the
// kebab-case field name.
func fields(cfg any) ([]*field, error) {
	val := reflect.ValueOf(cfg)
	if val.Kind() != reflect.Pointer || val.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("cli: expected a pointer to a struct, not %T", cfg)
	}
	val = val.Elem()
	typ := val.Type()
	var res []*field
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		tag, hasTag := f.Tag.Lookup("flag")
		if tag == "-" {
			continue
		}
		fd := &field{sf: f, value: val.Field(i), posarg: -1}
		if hasTag {
			for _, nm := range strings.Split(tag, ",") {
				nm = strings.TrimSpace(nm)
				if len(nm) == 1 {
					fd.short = nm
				} else if nm != "" {
					fd.long = nm
				}
			}
		}
		if fd.long == "" {
			fd.long = toKebab(f.Name)
		}
		if pa, ok := f.Tag.Lookup("posarg"); ok {
			n, err := strconv.Atoi(pa)
			if err != nil {
				return nil, fmt.Errorf("cli: field %s: invalid posarg %q", f.Name, pa)
			}
			fd.posarg = n
		}
		res = append(res, fd)
	}
	return res, nil
}

// addFlags binds the given fields to the flag set, using the
// current field values as the flag defaults.
func addFlags(fs *pflag.FlagSet, flds []*field) error {
	for _, fd := range flds {
		usage := fd.sf.Tag.Get("desc")
		ptr := fd.value.Addr().Interface()
		switch p := ptr.(type) {
		case *string:
			fs.StringVarP(p, fd.long, fd.short, *p, usage)
		case *bool:
			fs.BoolVarP(p, fd.long, fd.short, *p, usage)
		case *int:
			fs.IntVarP(p, fd.long, fd.short, *p, usage)
		case *float64:
			fs.Float64VarP(p, fd.long, fd.short, *p, usage)
		case *time.Duration:
			fs.DurationVarP(p, fd.long, fd.short, *p, usage)
		case *[]string:
			fs.StringSliceVarP(p, fd.long, fd.short, *p, usage)
		default:
			return fmt.Errorf("cli: unsupported flag type %T for field %s", ptr, fd.sf.Name)
		}
	}
	return nil
}

// toKebab converts the given CamelCase name to kebab-case,
// keeping runs of capitals (acronyms) together.
func toKebab(s string) string {
	rs := []rune(s)
	var b strings.Builder
	for i, r := range rs {
		if unicode.IsUpper(r) && i > 0 {
			prev := rs[i-1]
			nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('-')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
