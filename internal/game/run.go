package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/faiface/beep/speaker"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/iburimskiy/sortsound/internal/audio"
	"github.com/iburimskiy/sortsound/internal/config"
	"github.com/iburimskiy/sortsound/internal/visualizer"
)

// Run opens the window and blocks until it is closed. Closing the window
// or pressing Esc/Q is not an error.
func Run(cfg *config.Config, log *zap.Logger, seq *visualizer.Sequencer, player *audio.Player) error {
	sr := player.SampleRate()
	bufferSize := sr.N(time.Second / 20)
	if err := speaker.Init(sr, bufferSize); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	log.Info("Speaker ready", zap.Int("sample_rate", int(sr)), zap.Int("buffer", bufferSize))
	speaker.Play(player)

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.Playback.StepsPerSecond)

	g := New(cfg, log, seq, player)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
