// Command framedemo renders a HUD through the frame presentation loop.
//
// By default it opens a window and presents with the best available
// backend. With -headless it renders a fixed number of frames with the
// software backend and can write the last frame to a PNG file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/gogpu/frameloop"
	"github.com/gogpu/frameloop/backend"
	"github.com/gogpu/frameloop/backend/software"
	_ "github.com/gogpu/frameloop/backend/webgpu"
	"github.com/gogpu/frameloop/compositor/hud"
	"github.com/gogpu/frameloop/config"
	"github.com/gogpu/frameloop/host/glfwhost"
	"github.com/gogpu/frameloop/host/scripted"
)

func init() {
	// GLFW must be driven from the main thread.
	runtime.LockOSThread()
}

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath = flag.String("config", "", "TOML configuration file")
		backendArg = flag.String("backend", "", "backend: auto, webgpu or software")
		width      = flag.Int("width", 0, "window width")
		height     = flag.Int("height", 0, "window height")
		headless   = flag.Bool("headless", false, "render without a window")
		frames     = flag.Int("frames", 0, "frames to render in headless mode")
		snapshot   = flag.String("snapshot", "", "PNG file for the last headless frame")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
	} else {
		cfg.ApplyEnv(os.LookupEnv)
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			cfg.Backend = *backendArg
		case "width":
			cfg.Window.Width = *width
		case "height":
			cfg.Window.Height = *height
		case "headless":
			cfg.Headless.Enabled = *headless
		case "frames":
			cfg.Headless.Frames = *frames
		case "snapshot":
			cfg.Headless.Snapshot = *snapshot
		}
	})
	if cfg.Headless.Enabled && cfg.Backend == config.BackendAuto {
		cfg.Backend = config.BackendSoftware
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if level, ok := cfg.SlogLevel(); ok {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		frameloop.SetLogger(logger)
		slog.SetDefault(logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Headless.Enabled {
		return runHeadless(ctx, cfg)
	}
	return runWindowed(ctx, cfg)
}

func runHeadless(ctx context.Context, cfg config.Config) int {
	host := scripted.New(cfg.Window.Width, cfg.Window.Height).Frames(cfg.Headless.Frames)
	b, err := backend.Open(ctx, cfg.Backend, backend.Target{})
	if err != nil {
		slog.Error("framedemo: open backend", "err", err)
		return 1
	}
	defer closeBackend(b)

	code := present(ctx, cfg, b, host)

	if sw, ok := b.(*software.Backend); ok && cfg.Headless.Snapshot != "" {
		if err := writeSnapshot(cfg.Headless.Snapshot, sw); err != nil {
			slog.Error("framedemo: snapshot", "err", err)
			return 1
		}
		slog.Info("framedemo: snapshot written", "path", cfg.Headless.Snapshot)
	}
	return code
}

func runWindowed(ctx context.Context, cfg config.Config) int {
	win, err := glfwhost.Open(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)
	if err != nil {
		slog.Error("framedemo: open window", "err", err)
		return 1
	}
	defer win.Close()

	var target backend.Target
	if display, handle, err := win.NativeHandles(); err == nil {
		target.DisplayHandle, target.WindowHandle = display, handle
	} else {
		slog.Warn("framedemo: no native window handle", "err", err)
	}

	var b frameloop.Backend
	if cfg.Backend == config.BackendAuto {
		b, err = backend.OpenDefault(ctx, target)
	} else {
		b, err = backend.Open(ctx, cfg.Backend, target)
	}
	if err != nil {
		slog.Error("framedemo: open backend", "err", err)
		return 1
	}
	defer closeBackend(b)

	win.SetTitle(fmt.Sprintf("%s (%s)", cfg.Window.Title, b.Name()))
	return present(ctx, cfg, b, win)
}

// present runs the loop until it stops and returns its exit code.
func present(ctx context.Context, cfg config.Config, b frameloop.Backend, host frameloop.Host) int {
	comp, err := hud.New(hud.WithTitle(cfg.Window.Title))
	if err != nil {
		slog.Error("framedemo: compositor", "err", err)
		return 1
	}
	defer comp.Close()

	loop, err := frameloop.New(b, comp,
		frameloop.WithHost(host),
		frameloop.WithMaxConsecutiveDrops(cfg.MaxConsecutiveDrops),
	)
	if err != nil {
		slog.Error("framedemo: create loop", "err", err)
		return 1
	}
	defer loop.Close()

	if err := loop.Run(ctx); err != nil {
		slog.Error("framedemo: loop stopped", "err", err, "kind", frameloop.KindOf(err).String())
	}
	st := loop.Stats()
	slog.Info("framedemo: done",
		"frames", st.Frames, "dropped", st.Dropped, "reconfigurations", st.Reconfigurations)
	return loop.ExitCode()
}

func writeSnapshot(path string, b *software.Backend) (err error) {
	img := b.Snapshot()
	if img == nil {
		return errors.New("no frame presented")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}

func closeBackend(b frameloop.Backend) {
	if err := b.Close(); err != nil {
		slog.Warn("framedemo: close backend", "err", err)
	}
}
