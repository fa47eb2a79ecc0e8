//go:build !cgo

package main

import (
	"errors"

	"github.com/taigrr/rgeo/pkg/editor"
	"github.com/taigrr/rgeo/pkg/palette"
)

func runWindow(_ *editor.Editor, _ *palette.Palette, _, _ int) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
