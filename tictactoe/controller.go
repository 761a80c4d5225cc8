package tictactoe

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/tictac/audio"
	"github.com/lixenwraith/tictac/engine"
	"github.com/lixenwraith/tictac/input"
)

// Sounder plays cues; *audio.Player satisfies it
type Sounder interface {
	Play(cue audio.Cue)
	ToggleMute() bool
	Muted() bool
}

// silent is the Sounder used when none is configured
type silent struct{}

func (silent) Play(audio.Cue)   {}
func (silent) ToggleMute() bool { return false }
func (silent) Muted() bool      { return false }

var intentDirections = map[input.IntentType]Direction{
	input.IntentUp:    DirUp,
	input.IntentDown:  DirDown,
	input.IntentLeft:  DirLeft,
	input.IntentRight: DirRight,
}

// Controller applies the tick's key batch to the game
type Controller struct {
	keys  *input.KeyTable
	sound Sounder
	log   logrus.FieldLogger
}

// NewController creates the input logic; nil arguments fall back to defaults
func NewController(keys *input.KeyTable, sound Sounder, log logrus.FieldLogger) *Controller {
	if keys == nil {
		keys = input.DefaultKeyTable()
	}
	if sound == nil {
		sound = silent{}
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Controller{keys: keys, sound: sound, log: log.WithField("component", "game")}
}

// Update implements engine.Logic
func (c *Controller) Update(e *engine.Engine[Game], g *Game) {
	for _, in := range c.keys.ResolveAll(e.Keys()) {
		switch in.Type {
		case input.IntentQuit:
			c.log.WithField("key", in.Key).Info("quit requested")
			e.Stop()
			return

		case input.IntentUp, input.IntentDown, input.IntentLeft, input.IntentRight:
			if g.IsGameOver() {
				continue
			}
			if g.MoveCursor(intentDirections[in.Type]) {
				c.sound.Play(audio.CueMove)
			} else {
				c.sound.Play(audio.CueInvalid)
			}

		case input.IntentConfirm:
			c.play(g)

		case input.IntentRestart:
			g.Reset()
			c.log.Debug("game reset")
			c.sound.Play(audio.CueMove)

		case input.IntentMute:
			muted := c.sound.ToggleMute()
			c.log.WithField("muted", muted).Debug("mute toggled")
		}
	}
}

func (c *Controller) play(g *Game) {
	at := g.Cursor()
	player := g.Turn()
	if !g.Play() {
		c.sound.Play(audio.CueInvalid)
		return
	}

	c.log.WithFields(logrus.Fields{
		"player": player.String(),
		"x":      at.X,
		"y":      at.Y,
	}).Debug("mark placed")

	switch {
	case g.Winner() != PlayerNone:
		c.log.WithField("winner", g.Winner().String()).Info("game won")
		c.sound.Play(audio.CueWin)
	case g.IsGridFilled():
		c.log.Info("game drawn")
		c.sound.Play(audio.CueDraw)
	default:
		c.sound.Play(audio.CuePlace)
	}
}

// Options configures Setup
type Options struct {
	OriginX int
	OriginY int
	Keys    *input.KeyTable
	Sound   Sounder
	Logger  logrus.FieldLogger
}

// Setup installs the board sprites and registers input then scene logic on e
func Setup(e *engine.Engine[Game], opts Options) (*Scene, error) {
	scene := NewScene(opts.OriginX, opts.OriginY, opts.Sound)
	if err := scene.Install(e); err != nil {
		return nil, err
	}
	e.RegisterLogic(NewController(opts.Keys, opts.Sound, opts.Logger))
	e.RegisterLogic(scene)
	return scene, nil
}
