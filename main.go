package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/pkg/errors"

	"github.com/perlw/vksurface/config"
	"github.com/perlw/vksurface/hud"
	"github.com/perlw/vksurface/logger"
	"github.com/perlw/vksurface/myr"
	"github.com/perlw/vksurface/pompeii"
	"github.com/perlw/vksurface/window"
)

const appName = "vksurface"

func init() {
	// GLFW and the Vulkan surface calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	status := flag.Bool("status", false, "show the status panel in the terminal")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
	if *status {
		cfg.StatusPanel = true
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}

func newLogger(cfg config.Config) (logger.Logger, func(), error) {
	terminalLevel, err := logger.ParseLevel(cfg.Log.TerminalLevel)
	if err != nil {
		return logger.Logger{}, nil, err
	}
	if cfg.StatusPanel {
		// The panel owns the terminal.
		terminalLevel = logger.LevelOff
	}
	sinks := []logger.Sink{{Writer: os.Stderr, Level: terminalLevel}}

	closer := func() {}
	if cfg.Log.File != "" {
		fileLevel, err := logger.ParseLevel(cfg.Log.FileLevel)
		if err != nil {
			return logger.Logger{}, nil, err
		}
		file, err := logger.OpenFile(cfg.Log.File)
		if err != nil {
			return logger.Logger{}, nil, err
		}
		sinks = append(sinks, logger.Sink{Writer: file, Level: fileLevel})
		closer = func() { file.Close() }
	}

	return logger.New(appName, sinks...), closer, nil
}

func run(cfg config.Config) error {
	log, closer, err := newLogger(cfg)
	if err != nil {
		return errors.Wrap(err, "set up logging")
	}
	defer closer()

	win, err := window.New(cfg.Window)
	if err != nil {
		return err
	}
	defer win.Destroy()

	if err := pompeii.Init(window.InstanceProcAddr()); err != nil {
		return errors.Wrap(err, "load vulkan")
	}

	var layers, optional []string
	if cfg.Vulkan.Validation {
		layers = cfg.Vulkan.Layers
		optional = []string{"VK_EXT_debug_report"}
	}
	instance, err := pompeii.NewInstance(log, appName, "MYR", layers, win.RequiredInstanceExtensions(), optional)
	if err != nil {
		return err
	}
	defer instance.Destroy()

	surface, err := pompeii.NewWindowSurface(log, instance, win, cfg.Vulkan.AcquireTimeout)
	if err != nil {
		return err
	}
	var device *pompeii.Device
	defer func() {
		// The swapchain must go before the device that owns it.
		surface.Destroy()
		if device != nil {
			device.Destroy()
		}
	}()

	c := cfg.Render.ClearColor
	clearColor := myr.Color{R: c[0], G: c[1], B: c[2], A: c[3]}
	width, height := win.FramebufferSize()
	rt, err := myr.Init(instance, surface, width, height, myr.Options{
		Log:        &log,
		ClearColor: &clearColor,
	})
	if err != nil {
		log.Err(err, "init failed")
		return err
	}
	device, _ = rt.Device().(*pompeii.Device)

	var panel *hud.Panel
	if cfg.StatusPanel {
		if panel, err = hud.Open(); err != nil {
			log.Err(err, "status panel disabled")
		} else {
			defer panel.Close()
		}
	}

	machine := myr.NewMachine(rt, win, log)
	for machine.State() == myr.StateRunning {
		for _, ev := range win.Poll() {
			machine.Step(ev)
		}
		if panel != nil {
			err := panel.Draw(hud.Snapshot{
				Adapter: rt.AdapterName(),
				State:   machine.State(),
				Config:  rt.Config(),
				Stats:   rt.Stats(),
			})
			if err != nil {
				log.Err(err, "status panel")
			}
		}
		time.Sleep(time.Millisecond)
	}

	stats := rt.Stats()
	log.Log("Exiting; presented %d, skipped %d, reconfigured %d", stats.Presented, stats.Skipped, stats.Reconfigurations)
	return machine.Err()
}
