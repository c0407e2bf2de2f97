package invaders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeInput struct{ pressed map[byte]bool }

func (f *fakeInput) Pressed(mask byte) bool { return f.pressed[mask] }

type fakePresenter struct{ frames int }

func (f *fakePresenter) Present(*[FinalHeight][FinalWidth]RGB) { f.frames++ }

func TestSceneRunOncePresentsOneFrame(t *testing.T) {
	m := NewMachine(PermissiveMode, nil)
	r := NewRasterizer()
	sched := NewScheduler(m, r)

	in := &fakeInput{pressed: map[byte]bool{P1Fire: true}}
	present := &fakePresenter{}

	scene := NewScene(m, sched, in, present)
	assert.NoError(t, scene.RunOnce())
	assert.Equal(t, 1, present.frames)

	// Fire was held during polling, but Reset+poll happens at the start of
	// the *next* frame, so the latch still reflects this frame's input.
	assert.True(t, m.P1.Read()&P1Fire != 0)
}

func TestSceneRunUntilStoppedHonorsStop(t *testing.T) {
	m := NewMachine(PermissiveMode, nil)
	r := NewRasterizer()
	sched := NewScheduler(m, r)
	in := &fakeInput{pressed: map[byte]bool{}}
	present := &fakePresenter{}

	scene := NewScene(m, sched, in, present)
	scene.Stop() // stop before the first iteration begins

	assert.NoError(t, scene.RunUntilStopped())
	assert.Equal(t, 0, present.frames)
}
