// Package window shows rendered figures in an interactive desktop window.
package window

import "image"

// Page is one rendered figure.
type Page struct {
	Title string
	Image image.Image
}

// step moves index by delta, wrapping around n pages.
func step(index, delta, n int) int {
	if n <= 0 {
		return 0
	}
	return ((index+delta)%n + n) % n
}
