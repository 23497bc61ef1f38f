// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package window opens an SDL window and creates the Vulkan surface the
// device presents to.
//
// SDL must be driven from the main OS thread: callers lock it before
// calling Open.
package window

import (
	"unsafe"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/devblok/koru/core"
	"github.com/devblok/koru/driver"
	"github.com/devblok/koru/driver/vulkan"
)

// Context is an initialised SDL video subsystem with the Vulkan loader
// loaded.
type Context struct {
	open bool
}

// Open initialises SDL video and events, and loads the Vulkan loader
// library SDL resolves entry points from.
func Open() (*Context, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, errors.Wrap(err, "sdl.Init()")
	}
	if err := sdl.VulkanLoadLibrary(""); err != nil {
		sdl.Quit()
		return nil, errors.Wrap(err, "sdl.VulkanLoadLibrary()")
	}
	return &Context{open: true}, nil
}

// ProcAddr returns vkGetInstanceProcAddr as loaded by SDL, for
// vulkan.Init.
func (c *Context) ProcAddr() unsafe.Pointer {
	return sdl.VulkanGetVkGetInstanceProcAddr()
}

// Close unloads the Vulkan library and shuts SDL down. Every window must
// have been destroyed.
func (c *Context) Close() {
	if !c.open {
		return
	}
	sdl.VulkanUnloadLibrary()
	sdl.Quit()
	c.open = false
}

// Window is an SDL window created for Vulkan rendering.
type Window struct {
	window *sdl.Window
}

// New creates a centred window of the configured size.
func (c *Context) New(cfg core.WindowConfiguration) (*Window, error) {
	w, err := sdl.CreateWindow(cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		sdl.WINDOW_VULKAN|sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, errors.Wrap(err, "sdl.CreateWindow()")
	}
	return &Window{window: w}, nil
}

// InstanceExtensions returns the instance extensions SDL needs to create
// a surface for w.
func (w *Window) InstanceExtensions() []string {
	return w.window.VulkanGetInstanceExtensions()
}

// Size returns the drawable size of w in pixels.
func (w *Window) Size() driver.Extent2D {
	width, height := w.window.VulkanGetDrawableSize()
	return driver.Extent2D{Width: uint32(width), Height: uint32(height)}
}

// Destroy closes the window.
func (w *Window) Destroy() {
	if w.window == nil {
		return
	}
	if err := w.window.Destroy(); err != nil {
		log.WithError(err).Warn("destroying window")
	}
	w.window = nil
}

// Surface is a Vulkan surface bound to a window.
type Surface struct {
	window *Window
	drv    *vulkan.Driver
	handle driver.SurfaceHandle
}

// CreateSurface creates a surface for w on the instance of drv.
func (w *Window) CreateSurface(drv *vulkan.Driver) (*Surface, error) {
	ptr, err := w.window.VulkanCreateSurface(drv.NativeInstance())
	if err != nil {
		return nil, errors.Wrap(err, "sdl.Window.VulkanCreateSurface()")
	}
	return &Surface{
		window: w,
		drv:    drv,
		handle: drv.RegisterSurface(ptr),
	}, nil
}

// Size returns the drawable size of the window.
func (s *Surface) Size() driver.Extent2D {
	return s.window.Size()
}

// VulkanHandle returns the surface handle.
func (s *Surface) VulkanHandle() driver.SurfaceHandle {
	return s.handle
}

// Destroy destroys the surface. The window is left open.
func (s *Surface) Destroy() {
	if s.handle.IsNull() {
		return
	}
	s.drv.DestroySurface(s.handle)
	s.handle = 0
}

var _ core.PresentationSurface = (*Surface)(nil)
