package main

import (
	"github.com/faiface/pixel/pixelgl"

	"github.com/taito-invaders/invaders8080/invaders"
)

// Controller polls a pixelgl window's key state and implements
// invaders.InputSource over the cabinet's P1Coin/Start/Fire/Left/Right bits.
type Controller struct {
	window *pixelgl.Window
}

// NewController binds a Controller to win's key state.
func NewController(win *pixelgl.Window) *Controller {
	return &Controller{window: win}
}

var controllerKeys = map[byte]pixelgl.Button{
	invaders.P1Coin:  pixelgl.KeyC,
	invaders.P1Start: pixelgl.KeyEnter,
	invaders.P1Fire:  pixelgl.KeySpace,
	invaders.P1Left:  pixelgl.KeyLeft,
	invaders.P1Right: pixelgl.KeyRight,
}

// Pressed implements invaders.InputSource.
func (c *Controller) Pressed(mask byte) bool {
	key, ok := controllerKeys[mask]
	if !ok {
		return false
	}
	return c.window.Pressed(key)
}
