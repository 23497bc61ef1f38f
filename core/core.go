// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package core selects a graphics adapter able to present to a window
// surface and builds the logical device and swapchain on it.
//
// The flow is AdapterList → AdapterCapabilities → SurfaceSupport → Device.
// Every type here is meant for a single goroutine.
package core

import "github.com/devblok/koru/driver"

// PresentationSurface is the window side of presentation: a live surface
// and the current framebuffer size in pixels. The surface is owned by the
// windowing code and must outlive the swapchain built on it.
type PresentationSurface interface {
	// Size returns the framebuffer extent in pixels
	Size() driver.Extent2D

	// VulkanHandle returns the surface handle
	VulkanHandle() driver.SurfaceHandle
}
