//go:build !cgo

package window

import "errors"

// Show fails: the figure window needs cgo.
func Show(_ string, _ []Page) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
