package cmd

import (
	"path/filepath"

	"chyp8/emu/clock"
	"chyp8/emu/cpu"
	"chyp8/emu/screen"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var startCmd = &cobra.Command{
	Use:   "start `path/ROM`",
	Short: "load and start the Emulator",
	Args:  cobra.ExactArgs(1),
	RunE:  Start,
}

// chyp8 start 'path/to/ROM' -s 10
func Start(cmd *cobra.Command, args []string) error {
	romPath := args[0]

	settings, err := loadSettings(viper.GetViper())
	if err != nil {
		return err
	}
	log := settings.logger(cmd.ErrOrStderr())

	emu := cpu.NewEMU(
		cpu.WithBatchSize(settings.Batch),
		cpu.WithLogger(log),
	)
	if err := emu.LoadROM(romPath); err != nil {
		return err
	}

	cfg, err := settings.screenConfig("Chyp8 - " + filepath.Base(romPath))
	if err != nil {
		return err
	}
	win, err := screen.New(cfg)
	if err != nil {
		return err
	}
	defer win.Destroy()

	log.Info("loaded", "rom", romPath, "scale", settings.Scale, "batch", settings.Batch)

	driver := clock.New(emu, win, settings.Cadence)
	driver.Log = log
	return driver.Run(cmd.Context())
}

func init() {
	rootCmd.AddCommand(startCmd)

	flags := startCmd.Flags()
	flags.IntP(keyScale, "s", screen.DefaultScale, "window pixels per Chip-8 pixel")
	flags.DurationP(keyCadence, "c", clock.DefaultCadence, "minimum time between two cycles")
	flags.IntP(keyBatch, "b", cpu.DefaultBatchSize, "instructions executed per cycle")
	flags.String("on", "#ffffff", "colour of lit pixels")
	flags.String("off", "#000000", "colour of dark pixels")
	flags.Bool(keyDebug, false, "trace every executed instruction")

	for key, flag := range map[string]string{
		keyScale:      keyScale,
		keyCadence:    keyCadence,
		keyBatch:      keyBatch,
		keyPaletteOn:  "on",
		keyPaletteOff: "off",
		keyDebug:      keyDebug,
	} {
		cobra.CheckErr(viper.BindPFlag(key, flags.Lookup(flag)))
	}
}
