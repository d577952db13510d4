package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"

	chordagon "github.com/cbegin/chordagon-go"
	"github.com/cbegin/chordagon-go/internal/midiin"
	"github.com/cbegin/chordagon-go/internal/tuning"
)

const (
	windowW = 600
	windowH = 600
)

var (
	flagA4    float64
	flagScale string
	flagQueue int
	flagPort  string
	flagDebug bool
)

var rootCmd = &cobra.Command{
	Use:   "chordagon",
	Short: "Microtonal chord visualizer",
	Long: `Chordagon draws each held MIDI note as a point on the pitch circle and
connects every pair of notes with a line colored by interval size.
Notes an octave apart share the same angle.`,
	RunE: run,
}

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List available MIDI input ports",
	Run: func(cmd *cobra.Command, args []string) {
		names := midiin.PortNames()
		if len(names) == 0 {
			fmt.Println("no MIDI input ports found")
			return
		}
		for i, name := range names {
			fmt.Printf("%d: %s\n", i, name)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.Flags().Float64Var(&flagA4, "a4", 440, "concert A reference frequency in Hz")
	rootCmd.Flags().StringVar(&flagScale, "scale", "", "Scala .scl file for microtonal tuning")
	rootCmd.Flags().IntVar(&flagQueue, "queue", 0, "event queue capacity (0 = default)")
	rootCmd.Flags().StringVar(&flagPort, "port", "", "only listen on MIDI ports whose name contains this string")
	rootCmd.AddCommand(portsCmd)
}

// initLogger routes slog (and stdlib log) to stderr at the chosen level.
func initLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(h))
}

func run(cmd *cobra.Command, args []string) error {
	initLogger(flagDebug)
	defer midi.CloseDriver()

	opts := []chordagon.Option{
		chordagon.WithReferenceFrequency(flagA4),
		chordagon.WithTuning(tuning.EqualTemperament{A4: flagA4}),
		chordagon.WithPortFilter(flagPort),
	}
	if flagQueue > 0 {
		opts = append(opts, chordagon.WithQueueCapacity(flagQueue))
	}
	if flagScale != "" {
		scale, err := tuning.LoadScale(flagScale)
		if err != nil {
			return fmt.Errorf("load scale: %w", err)
		}
		slog.Info("loaded scale", "file", flagScale, "description", scale.Description)
		opts = append(opts, chordagon.WithTuning(scale))
	}

	v, err := chordagon.New(opts...)
	if err != nil {
		return err
	}
	defer v.Close()

	ebiten.SetWindowSize(windowW, windowH)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("Chordagon")
	return ebiten.RunGame(v)
}

func main() {
	cobra.CheckErr(rootCmd.Execute())
}
