// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package highlighting

import (
	"fmt"
	"os"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is the initial default style.
var DefaultStyle = StyleName("emacs")

var (
	stylesMu sync.Mutex

	// availableStyles are the styles made so far, by name
	availableStyles = map[StyleName]*Style{}
)

// AvailableStyle returns a style by name from the chroma styles and
// the styles added with [OpenStyle]. If not found, the default style
// is used as a fallback.
func AvailableStyle(nm StyleName) *Style {
	stylesMu.Lock()
	defer stylesMu.Unlock()
	if st, ok := availableStyles[nm]; ok {
		return st
	}
	cs, ok := styles.Registry[string(nm)]
	if !ok {
		nm = DefaultStyle
		if st, ok := availableStyles[nm]; ok {
			return st
		}
		cs = styles.Get(string(nm))
	}
	st := NewStyle(cs)
	availableStyles[nm] = st
	return st
}

// HasStyle returns true if a style of the given name exists.
func HasStyle(nm StyleName) bool {
	stylesMu.Lock()
	defer stylesMu.Unlock()
	_, ok := styles.Registry[string(nm)]
	return ok
}

// StyleNames returns the names of all the available styles, sorted.
func StyleNames() []string {
	stylesMu.Lock()
	defer stylesMu.Unlock()
	return styles.Names()
}

// OpenStyle opens a style from a chroma XML style file and makes it
// available under the name it declares, replacing any style of the
// same name.
func OpenStyle(filename string) (StyleName, error) {
	f, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()
	cs, err := chroma.NewXMLStyle(f)
	if err != nil {
		return "", fmt.Errorf("style file %s: %w", filename, err)
	}
	stylesMu.Lock()
	defer stylesMu.Unlock()
	styles.Register(cs)
	nm := StyleName(cs.Name)
	delete(availableStyles, nm)
	return nm, nil
}
