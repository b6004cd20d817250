package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/faiface/beep"
	"github.com/ncruces/zenity"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/iburimskiy/sortsound/internal/audio"
	"github.com/iburimskiy/sortsound/internal/config"
	"github.com/iburimskiy/sortsound/internal/game"
	"github.com/iburimskiy/sortsound/internal/oscillator"
	"github.com/iburimskiy/sortsound/internal/sorting"
	"github.com/iburimskiy/sortsound/internal/visualizer"
)

// app holds the flag values and the state shared by the commands of one
// invocation.
type app struct {
	configPath    string
	verbose       bool
	seed          uint64
	algorithms    []string
	mute          bool
	wavetablePath string
	pickWavetable bool

	logger *zap.Logger
	cfg    *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "sortsound",
		Short: "Watch and hear sorting algorithms at work",
		Long: `sortsound shuffles a row of bars and sorts them with counting sort,
comb sort and cocktail sort in turn, one step per frame. Every step plays a
short tone whose pitch follows the height of the bar being looked at.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: a.runWindow,
	}

	algorithmsCmd := &cobra.Command{
		Use:   "algorithms",
		Short: "List the available sorting algorithms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range sorting.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", config.DefaultFile, "path to the YAML config file")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	pf.Uint64Var(&a.seed, "seed", 0, "shuffle seed (0 for random)")
	pf.StringSliceVarP(&a.algorithms, "algorithms", "a", nil, "algorithms to cycle through, in order")
	pf.BoolVar(&a.mute, "mute", false, "start muted")
	pf.StringVar(&a.wavetablePath, "wavetable", "", "audio file with one waveform cycle (wav, mp3, flac)")
	pf.BoolVar(&a.pickWavetable, "pick-wavetable", false, "choose the wavetable file in a dialog")

	rootCmd.AddCommand(algorithmsCmd, newRenderCmd(a), newInitConfigCmd(a))
	return rootCmd
}

// setup loads the configuration and builds the logger before any command runs.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, err := zapcore.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	if a.verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	a.logger, err = zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// loadConfig reads the config file and applies command line overrides.
func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = a.seed
	}
	if flags.Changed("algorithms") {
		cfg.Algorithms = a.algorithms
	}
	if flags.Changed("mute") {
		cfg.Audio.Muted = a.mute
	}
	if flags.Changed("wavetable") {
		cfg.Audio.WavetableFile = a.wavetablePath
	}
	if a.pickWavetable {
		path, err := pickWavetableFile()
		if err != nil {
			return nil, err
		}
		if path != "" {
			cfg.Audio.WavetableFile = path
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func pickWavetableFile() (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Wavetable"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", err
	}
	return filename, nil
}

// newVoice builds the oscillator every tone is cloned from.
func newVoice(cfg *config.Config) (*oscillator.Oscillator, error) {
	var (
		table []float64
		err   error
	)
	if cfg.Audio.WavetableFile != "" {
		table, err = oscillator.Load(cfg.Audio.WavetableFile, cfg.Audio.TableSize)
	} else {
		table, err = oscillator.ByName(cfg.Audio.Waveform, cfg.Audio.TableSize)
	}
	if err != nil {
		return nil, fmt.Errorf("build wave table: %w", err)
	}

	voice, err := oscillator.New(beep.SampleRate(cfg.Audio.SampleRate), cfg.StepDuration(), table)
	if err != nil {
		return nil, err
	}
	voice.SetFrequency(cfg.Audio.BaseFrequency)
	return voice, nil
}

func newSequencer(cfg *config.Config) (*visualizer.Sequencer, error) {
	algos, err := sorting.LookupAll(cfg.Algorithms)
	if err != nil {
		return nil, err
	}
	return visualizer.New(visualizer.Options{
		Bars:       sorting.NewBars(cfg.BarCount(), cfg.Bars.Width),
		Algorithms: algos,
		RestSteps:  cfg.RestSteps(),
		Seed:       cfg.Seed,
	})
}

func (a *app) runWindow(cmd *cobra.Command, args []string) error {
	cfg := a.cfg

	err := func() error {
		voice, err := newVoice(cfg)
		if err != nil {
			return err
		}
		seq, err := newSequencer(cfg)
		if err != nil {
			return err
		}
		defer seq.Close()

		player := audio.NewPlayer(voice, cfg.Audio.Volume, config.VisualRingSize)
		player.SetMuted(cfg.Audio.Muted)

		a.logger.Info("Starting visualizer",
			zap.Strings("algorithms", cfg.Algorithms),
			zap.Int("bars", cfg.BarCount()),
			zap.Int("steps_per_second", cfg.Playback.StepsPerSecond),
			zap.String("wavetable", cfg.Audio.WavetableFile))
		return game.Run(cfg, a.logger, seq, player)
	}()
	if err != nil {
		a.logger.Error("Visualizer failed", zap.Error(err))
		_ = zenity.Error(err.Error(), zenity.Title("sortsound"), zenity.ErrorIcon)
	}
	return err
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
