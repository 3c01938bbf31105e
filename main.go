// Command cdaudio plays CD background music the way the engine does,
// from disc images on disk, with the engine's "cd" console commands.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
	"github.com/rabidaudio/cdaudio/cdaudio"
	"github.com/rabidaudio/cdaudio/cvar"
	"github.com/rabidaudio/cdaudio/host"
	"github.com/rabidaudio/cdaudio/imagedrive"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		disc       string
		volume     float64
		fps        int
		verbose    bool
	)
	cmd := &cobra.Command{
		Use:          "cdaudio [flags] [-- engine args]",
		Short:        "Play CD background music from disc images",
		Args:         engineArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if disc != "" {
				cfg.Drives = []imagedrive.DriveConfig{{Name: "/dev/cdrom", Path: disc}}
			}
			if cmd.Flags().Changed("fps") {
				if err := checkFPS(fps); err != nil {
					return err
				}
				cfg.FPS = fps
			}

			log := logrus.New()
			log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}

			vars := cvar.NewRegistry()
			bgm := cvar.New("bgmvolume", 1, 0, 1)
			if err := vars.Register(bgm); err != nil {
				return err
			}
			if err := vars.Apply(cfg.Cvars); err != nil {
				return err
			}
			if cmd.Flags().Changed("volume") {
				bgm.SetValue(volume)
			}

			rl, err := readline.NewEx(&readline.Config{
				Prompt:       "] ",
				AutoComplete: completer(),
			})
			if err != nil {
				return err
			}
			defer rl.Close()
			log.SetOutput(rl.Stderr())

			sys := imagedrive.NewSystem(imagedrive.Speaker{}, cfg.Drives...)
			sys.Log = log.WithField("subsystem", "imagedrive")

			ctl := cdaudio.New(sys, cdaudio.Config{
				Console: host.NewConsole(log, "cdaudio"),
				Clock:   host.NewClock(),
				Volume:  bgm,
				Args:    host.ArgList{host.FlagArgs{Flags: cmd.Flags()}, host.CommandLine(args)},
			})
			if err := ctl.Init(); err != nil {
				log.WithError(err).Warn("cd audio unavailable")
			}
			defer ctl.Shutdown()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			e := &engine{cd: ctl, vars: vars, log: log}
			e.run(ctx, readLines(ctx, rl), cfg.FPS)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "YAML config file")
	f.StringVarP(&disc, "disc", "d", "", "disc directory to play, replacing the configured drives")
	f.Bool("nocdaudio", false, "disable cd audio")
	f.String("cddev", "", "cd device to use")
	f.Bool("safe", false, "safe mode, disables cd audio")
	f.Float64Var(&volume, "volume", 1, "initial bgmvolume")
	f.IntVar(&fps, "fps", defaultFPS, "engine frames per second")
	f.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	return cmd
}


// engineArgs accepts raw engine parameters such as "-cddev /dev/sr1"
// only after "--".
func engineArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 && cmd.ArgsLenAtDash() != 0 {
		return errors.Errorf("unexpected argument %q, engine arguments go after --", args[0])
	}
	return nil
}
