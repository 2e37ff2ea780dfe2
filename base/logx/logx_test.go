// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestLevelFromFlags(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelFromFlags(true, false, false))
	assert.Equal(t, slog.LevelDebug, LevelFromFlags(true, true, true))
	assert.Equal(t, slog.LevelInfo, LevelFromFlags(false, true, true))
	assert.Equal(t, slog.LevelError, LevelFromFlags(false, false, true))
	assert.Equal(t, slog.LevelWarn, LevelFromFlags(false, false, false))
}

func TestHandler(t *testing.T) {
	var b bytes.Buffer
	lg := slog.New(NewHandler(&b, slog.LevelInfo, termenv.WithProfile(termenv.Ascii)))
	lg.Debug("hidden")
	lg.Warn("hello", "line", 3)
	assert.NotContains(t, b.String(), "hidden")
	assert.True(t, strings.HasPrefix(b.String(), "WARN time="), b.String())
	assert.Contains(t, b.String(), "msg=hello line=3\n")
	assert.NotContains(t, b.String(), "level=")

	b.Reset()
	lg = slog.New(NewHandler(&b, slog.LevelDebug, termenv.WithProfile(termenv.ANSI)))
	lg.Error("boom")
	assert.Contains(t, b.String(), "\x1b[")
	assert.Contains(t, b.String(), "ERROR")
	assert.Contains(t, b.String(), "msg=boom")
}

func TestUserLevel(t *testing.T) {
	old := UserLevel
	defer func() { UserLevel = old }()

	var b bytes.Buffer
	lg := slog.New(NewHandler(&b, userLeveler{}, termenv.WithProfile(termenv.Ascii)))
	UserLevel = slog.LevelError
	lg.Warn("quiet")
	assert.Empty(t, b.String())
	UserLevel = slog.LevelDebug
	lg.Debug("loud")
	assert.Contains(t, b.String(), "msg=loud")
}

func TestDefaultLogger(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)
	SetDefaultLogger()
	slog.Debug("this is debug")
	slog.Info("this is info")
	slog.Warn("this is warn")
}
