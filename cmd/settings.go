package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"chyp8/emu/clock"
	"chyp8/emu/cpu"
	"chyp8/emu/screen"

	"github.com/spf13/viper"
)

const (
	keyScale      = "scale"
	keyCadence    = "cadence"
	keyBatch      = "batch"
	keyPaletteOn  = "palette.on"
	keyPaletteOff = "palette.off"
	keyKeyMap     = "keymap"
	keyDebug      = "debug"
)

// Settings is the resolved configuration of a run: flags, then CHYP8_*
// environment variables, then the config file, then defaults.
type Settings struct {
	Scale      int
	Cadence    time.Duration
	Batch      int
	PaletteOn  string
	PaletteOff string
	KeyMap     map[string]string
	Debug      bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyScale, screen.DefaultScale)
	v.SetDefault(keyCadence, clock.DefaultCadence)
	v.SetDefault(keyBatch, cpu.DefaultBatchSize)
	v.SetDefault(keyPaletteOn, "#ffffff")
	v.SetDefault(keyPaletteOff, "#000000")
	v.SetDefault(keyDebug, false)
}

func loadSettings(v *viper.Viper) (Settings, error) {
	s := Settings{
		Scale:      v.GetInt(keyScale),
		Cadence:    v.GetDuration(keyCadence),
		Batch:      v.GetInt(keyBatch),
		PaletteOn:  v.GetString(keyPaletteOn),
		PaletteOff: v.GetString(keyPaletteOff),
		KeyMap:     v.GetStringMapString(keyKeyMap),
		Debug:      v.GetBool(keyDebug),
	}

	switch {
	case s.Scale <= 0:
		return s, fmt.Errorf("%s must be positive, got %d", keyScale, s.Scale)
	case s.Batch <= 0:
		return s, fmt.Errorf("%s must be positive, got %d", keyBatch, s.Batch)
	case s.Cadence <= 0:
		return s, fmt.Errorf("%s must be positive, got %v", keyCadence, s.Cadence)
	}
	return s, nil
}

// screenConfig builds the window configuration from the colour and key settings.
func (s Settings) screenConfig(title string) (screen.Config, error) {
	palette, err := screen.ParsePalette(s.PaletteOn, s.PaletteOff)
	if err != nil {
		return screen.Config{}, err
	}
	keymap, err := screen.ParseKeyMap(s.KeyMap)
	if err != nil {
		return screen.Config{}, err
	}
	return screen.Config{
		Title:   title,
		Scale:   s.Scale,
		Palette: palette,
		KeyMap:  keymap,
	}, nil
}

func (s Settings) logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if s.Debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
