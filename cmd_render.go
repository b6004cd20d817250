package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/ncruces/zenity"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iburimskiy/sortsound/internal/render"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		sorts    int
		maxSteps int
	)
	cmd := &cobra.Command{
		Use:   "render [output.wav]",
		Short: "Write the tones of a sort sequence to a WAV file",
		Long: `Runs the configured algorithms without opening a window and writes
the tones they would play to a WAV file. Without an output path a save
dialog is shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRender(cmd, args, sorts, maxSteps)
		},
	}
	cmd.Flags().IntVarP(&sorts, "sorts", "n", 0, "number of sorts to render (default: one per configured algorithm)")
	cmd.Flags().IntVar(&maxSteps, "max-steps", render.DefaultMaxSteps, "stop with an error after this many steps")
	return cmd
}

func (a *app) runRender(cmd *cobra.Command, args []string, renderSorts, renderMaxSteps int) error {
	cfg := a.cfg

	var (
		path string
		err  error
	)
	if len(args) == 1 {
		path = args[0]
	} else {
		path, err = zenity.SelectFileSave(
			zenity.Title("Save Rendering"),
			zenity.ConfirmOverwrite(),
			zenity.Filename("sortsound.wav"),
			zenity.FileFilters{{Name: "WAV", Patterns: []string{"*.wav"}}},
		)
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		if err != nil {
			return err
		}
	}

	sorts := renderSorts
	if sorts <= 0 {
		sorts = len(cfg.Algorithms)
	}

	voice, err := newVoice(cfg)
	if err != nil {
		return err
	}
	seq, err := newSequencer(cfg)
	if err != nil {
		return err
	}
	defer seq.Close()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	a.logger.Info("Rendering", zap.String("output", path), zap.Int("sorts", sorts))
	stats, err := render.Render(ctx, f, seq, render.Options{
		Voice:         voice,
		BaseFrequency: cfg.Audio.BaseFrequency,
		Volume:        cfg.Audio.Volume,
		Sorts:         sorts,
		MaxSteps:      renderMaxSteps,
	})
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	a.logger.Info("Rendered",
		zap.String("output", path),
		zap.Int("sorts", stats.Sorts),
		zap.Int("tones", stats.Tones),
		zap.Duration("length", voice.SampleRate().D(stats.Samples)))
	return nil
}
