// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"fmt"
	"log/slog"

	"cogentcore.org/shaderpack/base/errors"
	"cogentcore.org/shaderpack/base/fsx"
	"github.com/h2non/filetype"
)

// ErrBinaryShader is the error for a file with the shader extension
// whose contents are a known binary file type, such as an image
// saved under the wrong name.
var ErrBinaryShader = errors.New("shader file has binary contents")

// checkText returns an error wrapping [ErrBinaryShader] if the
// given shader contents match a known binary file type.
func checkText(b []byte) error {
	kind, err := filetype.Match(b)
	if err != nil || kind == filetype.Unknown {
		return nil
	}
	return fmt.Errorf("%w (%s)", ErrBinaryShader, kind.MIME.Value)
}

// copyAsset copies a non-shader file verbatim.
func copyAsset(dst, src string) error {
	if err := fsx.CopyFile(dst, src); err != nil {
		return err
	}
	slog.Info("copied", "file", dst)
	return nil
}
