package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/mindweave/pkg/config"
	"github.com/vanderheijden86/mindweave/pkg/export"
	"github.com/vanderheijden86/mindweave/pkg/layout"
	"github.com/vanderheijden86/mindweave/pkg/loader"
	"github.com/vanderheijden86/mindweave/pkg/tui"
	"github.com/vanderheijden86/mindweave/pkg/version"
	"github.com/vanderheijden86/mindweave/pkg/watcher"
)

func main() {
	cpuProfile := flag.String("cpu-profile", "", "Write CPU profile to file")
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	configPath := flag.String("config", "", "Config file (default: XDG config dir)")
	watchFlag := flag.Bool("watch", false, "Reload the map when the file changes on disk")
	snapshot := flag.String("snapshot", "", "Render a static snapshot (svg or png) to this path and exit")
	snapshotW := flag.Int("snapshot-width", 1200, "Snapshot canvas width in pixels")
	snapshotH := flag.Int("snapshot-height", 800, "Snapshot canvas height in pixels")
	title := flag.String("title", "", "Snapshot title")
	linkDistance := flag.Float64("link-distance", 0, "Override target link separation")
	charge := flag.Float64("charge", 0, "Override many-body strength (negative repels)")
	flag.Parse()

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	if *help {
		fmt.Println("Usage: mw [options] <map.json|map.yaml>")
		fmt.Println("\nAn interactive force-directed mind map viewer.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("mw %s\n", version.Version)
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: mw [options] <map.json|map.yaml>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	root, err := loader.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading map: %v\n", err)
		os.Exit(1)
	}

	var cfg config.Config
	var cfgErr error
	if *configPath != "" {
		cfg, cfgErr = config.LoadFrom(*configPath)
	} else {
		cfg, cfgErr = config.Load()
	}
	if cfgErr != nil {
		// Non-fatal: continue with defaults.
		fmt.Fprintf(os.Stderr, "Warning: %v\n", cfgErr)
		cfg = config.DefaultConfig()
	}

	applyFlags := func(opts layout.Options) layout.Options {
		opts = cfg.ApplyLayout(opts)
		if *linkDistance != 0 {
			opts.LinkDistance = *linkDistance
		}
		if *charge != 0 {
			opts.Charge = *charge
		}
		return opts
	}

	if *snapshot != "" {
		err := export.SaveSnapshot(root, export.SnapshotOptions{
			Path:   *snapshot,
			Title:  *title,
			Width:  *snapshotW,
			Height: *snapshotH,
			Layout: applyFlags(layout.DefaultOptions()),
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Snapshot failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Snapshot written to %s\n", *snapshot)
		os.Exit(0)
	}

	var w *watcher.Watcher
	if *watchFlag {
		w, err = watcher.New(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error setting up watch: %v\n", err)
			os.Exit(1)
		}
		if err := w.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting watch: %v\n", err)
			os.Exit(1)
		}
		defer w.Stop()
	}

	m := tui.New(path, root, applyFlags(tui.TerminalOptions()), w, cfg.UI)
	if err := runTUIProgram(m); err != nil {
		fmt.Printf("Error running mind map viewer: %v\n", err)
		os.Exit(1)
	}
}

func runTUIProgram(m *tui.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set MW_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("MW_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()

				select {
				case <-runDone:
					return
				case <-time.After(2 * time.Second):
				}

				p.Kill()
			}()
		}
	}

	_, err := p.Run()
	if err != nil && (errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted)) {
		return nil
	}
	return err
}
