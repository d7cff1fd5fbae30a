// Command keytrace shows how keys travel through a small dialog: the decoded
// portable code, its name, and what the focus chain did with it. Sessions can
// be recorded and replayed.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/mattn/go-isatty"

	"github.com/lixenwraith/keyway/app"
	"github.com/lixenwraith/keyway/config"
	"github.com/lixenwraith/keyway/logutil"
	"github.com/lixenwraith/keyway/record"
)

var (
	configPath = flag.String("config", "", "YAML settings file")
	rawMode    = flag.Bool("raw", false, "Decode the terminal byte stream directly instead of through tcell")
	evdevPath  = flag.String("evdev", "", "Read a Linux input device (e.g. /dev/input/event3) instead of the terminal")
	recordPath = flag.String("record", "", "Record input to this file")
	modeFlag   = flag.String("mode", "", "Record mode: TXT, BIN or SYS")
	playPath   = flag.String("play", "", "Replay a recorded file")
	logPath    = flag.String("log", "", "Write debug log to this file")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "keytrace: %v\n", err)
		os.Exit(2)
	}

	if path := firstNonEmpty(*logPath, cfg.Logging.File); path != "" {
		f, err := logutil.SetOutputFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "keytrace: log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	}

	if *evdevPath == "" && !isatty.IsTerminal(os.Stdin.Fd()) {
		fmt.Fprintln(os.Stderr, "keytrace: stdin is not a terminal")
		os.Exit(1)
	}

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mKEYTRACE CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	switch {
	case *evdevPath != "":
		err = runDevice(cfg, *evdevPath)
	case *rawMode:
		err = runRaw(cfg)
	default:
		err = runScreen(cfg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "keytrace: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadFile(*configPath); err != nil {
			return nil, err
		}
	}
	if *modeFlag != "" {
		m, err := record.ParseMode(*modeFlag)
		if err != nil {
			return nil, err
		}
		cfg.Record.Mode = m
	}
	if *recordPath != "" {
		cfg.Record.File = *recordPath
	}
	if *playPath != "" {
		cfg.Playback.File = *playPath
	}
	if cfg.Logging.Verbose && *logPath == "" && cfg.Logging.File == "" {
		cfg.Logging.File = "keytrace.log"
	}
	return cfg, nil
}

// startSessions begins recording and playback as requested on the command
// line. Recording only starts when -record was given explicitly.
func startSessions(ctx *app.Context, cfg *config.Config) error {
	if *recordPath != "" {
		if err := ctx.RecordInput(cfg.Record.File, cfg.Record.Mode); err != nil {
			return fmt.Errorf("record %s: %w (code %d)", cfg.Record.File, err, record.Code(err))
		}
	}
	if cfg.Playback.File != "" {
		if err := ctx.PlayInput(cfg.Playback.File); err != nil {
			return fmt.Errorf("play %s: %w (code %d)", cfg.Playback.File, err, record.Code(err))
		}
	}
	return nil
}

func firstNonEmpty(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}
	return ""
}
