// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package languages

import (
	"embed"

	"cogentcore.org/core/base/errors"
)

//go:embed builtin
var builtinFS embed.FS

// Builtin returns a new registry holding the built-in language
// definitions. Callers may add to it or override its entries.
func Builtin() *Registry {
	r := NewRegistry()
	errors.Must(r.LoadFS(builtinFS, "builtin"))
	return r
}
