package main

import (
	"image"
	"image/color"
	"log"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/pixelgl"
	"golang.org/x/image/colornames"

	"github.com/taito-invaders/invaders8080/invaders"
)

// Display is a pixelgl window presenting the cabinet's rotated 224×256
// surface. It implements invaders.Presenter.
type Display struct {
	rgba   *image.RGBA
	window *pixelgl.Window
	matrix pixel.Matrix
}

const (
	scale      float64 = 2
	screenPosX float64 = 400
	screenPosY float64 = 200
)

// NewDisplay opens a pixelgl window sized to the rotated surface at scale.
func NewDisplay() *Display {
	rect := image.Rect(0, 0, invaders.FinalWidth, invaders.FinalHeight)
	rgba := image.NewRGBA(rect)

	config := pixelgl.WindowConfig{
		Title:    "Space Invaders",
		Bounds:   pixel.R(0, 0, float64(invaders.FinalWidth)*scale, float64(invaders.FinalHeight)*scale),
		Position: pixel.V(screenPosX, screenPosY),
		VSync:    true,
	}
	window, err := pixelgl.NewWindow(config)
	if err != nil {
		log.Fatal("unable to create window\n", err)
	}

	pic := pixel.PictureDataFromImage(rgba)
	matrix := pixel.IM.Moved(pic.Bounds().Center().Scaled(scale))
	matrix = matrix.Scaled(pic.Bounds().Center().Scaled(scale), scale)

	return &Display{rgba: rgba, window: window, matrix: matrix}
}

// Present copies surface into the window's backing image and swaps buffers.
func (d *Display) Present(surface *[invaders.FinalHeight][invaders.FinalWidth]invaders.RGB) {
	for y := 0; y < invaders.FinalHeight; y++ {
		for x := 0; x < invaders.FinalWidth; x++ {
			c := surface[y][x]
			d.rgba.SetRGBA(x, invaders.FinalHeight-1-y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}

	d.window.Clear(colornames.Black)
	sprite := pixel.NewSprite(pixel.PictureDataFromImage(d.rgba), pixel.R(0, 0, float64(invaders.FinalWidth), float64(invaders.FinalHeight)))
	sprite.Draw(d.window, d.matrix)
	d.window.Update()
}

// Closed reports whether the user has asked to close the window.
func (d *Display) Closed() bool { return d.window.Closed() }
