// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"runtime"

	"github.com/gobuffalo/packr"
	"github.com/loov/hrtime"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/xlab/closer"

	"github.com/devblok/koru/core"
	"github.com/devblok/koru/driver/vulkan"
	"github.com/devblok/koru/window"
)

func init() {
	runtime.LockOSThread()
}

// configs holds the dotenv defaults shipped with the binary.
var configs = packr.NewBox("./configs")

func main() {
	defer closer.Close()

	if err := run(); err != nil {
		log.WithError(err).Error("koru")
		closer.Exit(1)
	}
}

func loadConfiguration() (core.Configuration, error) {
	defaults, err := configs.FindString("default.env")
	if err != nil {
		return core.Configuration{}, errors.Wrap(err, "default.env")
	}
	if err := core.SeedDefaults(defaults); err != nil {
		return core.Configuration{}, err
	}
	return core.LoadConfiguration()
}

// run brings the device up and runs the event loop. Everything it
// creates is torn down by closer, most recent first.
func run() error {
	cfg, err := loadConfiguration()
	if err != nil {
		return err
	}
	if cfg.Validation {
		log.SetLevel(log.DebugLevel)
	}

	ctx, err := window.Open()
	if err != nil {
		return err
	}
	closer.Bind(ctx.Close)

	win, err := ctx.New(cfg.Window)
	if err != nil {
		return err
	}
	closer.Bind(win.Destroy)

	if err := vulkan.Init(ctx.ProcAddr()); err != nil {
		return err
	}
	if layers, err := vulkan.InstanceLayers(); err == nil {
		log.WithField("layers", layers).Debug("instance layers available")
	}
	if exts, err := vulkan.InstanceExtensions(); err == nil {
		log.WithField("extensions", exts).Debug("instance extensions available")
	}

	cfg = cfg.WithInstanceExtensions(win.InstanceExtensions()...)
	drv, err := vulkan.New(vulkan.InstanceConfig{
		ApplicationName: cfg.Window.Title,
		Layers:          cfg.Layers,
		Extensions:      cfg.InstanceExtensions,
		Validation:      cfg.Validation,
	})
	if err != nil {
		return err
	}
	closer.Bind(drv.Destroy)

	if cfg.Validation {
		reporter, err := vulkan.NewDebugReporter(drv, log.WithField("source", "vulkan"))
		switch {
		case err == nil:
			closer.Bind(reporter.Close)
		case errors.Cause(err) == vulkan.ErrDebugReportUnavailable:
			log.Warn("debug report is unavailable, validation messages are not logged")
		default:
			return err
		}
	}

	surface, err := win.CreateSurface(drv)
	if err != nil {
		return err
	}
	closer.Bind(surface.Destroy)

	adapters, err := core.NewAdapterList(drv, drv.Instance())
	if err != nil {
		return err
	}
	adapters.Log(log.StandardLogger())

	start := hrtime.Now()
	device, err := adapters.SelectAndBuildDevice(cfg, surface)
	if err != nil {
		return err
	}
	log.WithField("took", hrtime.Since(start)).Info("device initialised")
	closer.Bind(func() {
		if err := device.Destroy(); err != nil {
			log.WithError(err).Warn("destroying device")
		}
	})

	eventLoop(core.NewTime(cfg.Time))
	return nil
}

func eventLoop(t *core.Time) {
	defer t.Stop()
	for range t.EventTicker().C {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch et := event.(type) {
			case *sdl.KeyboardEvent:
				if et.Keysym.Sym == sdl.K_ESCAPE {
					log.Info("event loop exited")
					return
				}
			case *sdl.QuitEvent:
				log.Info("event loop exited")
				return
			}
		}
	}
}
