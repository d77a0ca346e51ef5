//go:build cgo

package window

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Show opens one desktop window and pages through the figures. Right arrow
// or space moves forward, left arrow moves back, Esc or Q closes. It blocks
// until the window closes.
func Show(title string, pages []Page) error {
	if len(pages) == 0 {
		return errors.New("no figures to show")
	}
	b := pages[0].Image.Bounds()

	v := &viewer{pages: pages, images: make([]*ebiten.Image, len(pages))}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(b.Dx(), b.Dy())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(v); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("figure window: %w", err)
	}
	return nil
}

type viewer struct {
	pages  []Page
	images []*ebiten.Image
	index  int
}

func (v *viewer) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		v.index = step(v.index, 1, len(v.pages))
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		v.index = step(v.index, -1, len(v.pages))
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	if v.images[v.index] == nil {
		v.images[v.index] = ebiten.NewImageFromImage(v.pages[v.index].Image)
	}
	screen.DrawImage(v.images[v.index], nil)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%d/%d  %s", v.index+1, len(v.pages), v.pages[v.index].Title))
}

func (v *viewer) Layout(_, _ int) (int, int) {
	b := v.pages[v.index].Image.Bounds()
	return b.Dx(), b.Dy()
}
