// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"

	"github.com/devblok/koru/driver"
)

// queuePriority is used for every queue the device requests.
const queuePriority float32 = 1.0

// noCopy makes go vet report copies of the struct it is embedded in.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Device owns a logical device, its swapchain, the queues taken from it
// and one view per swapchain image. Images belong to the swapchain.
//
// A Device must not be copied; use Move to hand it over. The zero value
// is an empty device, on which Destroy does nothing.
type Device struct {
	noCopy noCopy

	drv    driver.Driver
	handle driver.DeviceHandle

	swapchain driver.SwapchainHandle
	format    driver.SurfaceFormat
	extent    driver.Extent2D
	mode      driver.PresentMode
	families  QueueFamilyChoice

	graphicsQueue     driver.QueueHandle
	presentationQueue driver.QueueHandle

	images []driver.ImageHandle
	views  []driver.ImageViewHandle
}

// NewDevice builds a device on the adapter of caps, in this order:
// logical device, swapchain, graphics queue, presentation queue,
// swapchain images and one image view per image.
//
// support must have been built for caps and surface, and be acceptable.
// If any step fails, everything built before it is destroyed and the
// error is returned.
func NewDevice(drv driver.Driver, cfg Configuration, support *SurfaceSupport, surface PresentationSurface, caps *AdapterCapabilities) (*Device, error) {
	if support.Adapter() != caps.Handle() {
		panic("core.NewDevice(): surface support was built for another adapter")
	}
	if support.Surface() != surface.VulkanHandle() {
		panic("core.NewDevice(): surface support was built for another surface")
	}
	if !support.IsAcceptable() {
		panic("core.NewDevice(): surface support is not acceptable")
	}

	d := &Device{
		drv:      drv,
		families: support.QueueFamilyIndexes(),
	}
	logger := log.WithField("adapter", caps.Properties().Name)

	/* Logical device */
	extensions := slices.Clone(cfg.DeviceExtensions)
	// Portability implementations require the subset extension to be
	// acknowledged when they advertise it.
	portability, err := caps.HasExtension(driver.KhrPortabilitySubsetExtensionName)
	if err != nil {
		return nil, errors.Wrap(err, "core.NewDevice(): logical device")
	}
	if portability && !slices.Contains(extensions, driver.KhrPortabilitySubsetExtensionName) {
		extensions = append(extensions, driver.KhrPortabilitySubsetExtensionName)
	}

	families := d.families.Distinct()
	queues := make([]driver.QueueCreateInfo, len(families))
	for i, family := range families {
		queues[i] = driver.QueueCreateInfo{
			FamilyIndex: family,
			Priorities:  []float32{queuePriority},
		}
	}
	d.handle, err = drv.CreateDevice(caps.Handle(), &driver.DeviceCreateInfo{
		Queues:     queues,
		Layers:     slices.Clone(cfg.Layers),
		Extensions: extensions,
		Features:   cfg.RequiredFeatures,
	})
	if err != nil {
		return nil, errors.Wrap(err, "core.NewDevice(): logical device")
	}
	logger.WithFields(log.Fields{
		"family":     families,
		"extensions": extensions,
	}).Debug("logical device created")

	/* Swapchain */
	d.format = support.BestFormat()
	d.extent = support.BestExtentFor(surface.Size())
	d.mode = support.BestMode()
	sci := driver.SwapchainCreateInfo{
		Surface:        surface.VulkanHandle(),
		MinImageCount:  support.BestImageCount(),
		Format:         d.format.Format,
		ColorSpace:     d.format.ColorSpace,
		Extent:         d.extent,
		ArrayLayers:    1,
		Usage:          driver.ImageUsageColorAttachment,
		SharingMode:    driver.SharingModeExclusive,
		PreTransform:   support.CurrentTransform(),
		CompositeAlpha: driver.CompositeAlphaOpaque,
		PresentMode:    d.mode,
		Clipped:        true,
	}
	if !d.families.Unified() {
		sci.SharingMode = driver.SharingModeConcurrent
		sci.QueueFamilyIndices = []uint32{d.families.Graphics, d.families.Presentation}
	}
	if d.swapchain, err = drv.CreateSwapchain(d.handle, &sci); err != nil {
		return nil, d.abandon(errors.Wrap(err, "core.NewDevice(): swapchain"))
	}
	logger.WithFields(log.Fields{
		"format": d.format.Format,
		"mode":   d.mode,
		"extent": d.extent,
	}).Debug("swapchain created")

	/* Queues */
	d.graphicsQueue = drv.DeviceQueue(d.handle, d.families.Graphics, 0)
	// The presentation queue is taken from the graphics family as well.
	// QueueFamilyIndexes only ever returns a unified choice, so the two
	// queues are the same.
	d.presentationQueue = drv.DeviceQueue(d.handle, d.families.Graphics, 0)

	/* Images and views */
	if d.images, err = drv.SwapchainImages(d.handle, d.swapchain); err != nil {
		return nil, d.abandon(errors.Wrap(err, "core.NewDevice(): swapchain images"))
	}
	d.views = make([]driver.ImageViewHandle, 0, len(d.images))
	for i, img := range d.images {
		view, err := drv.CreateImageView(d.handle, &driver.ImageViewCreateInfo{
			Image:      img,
			Format:     d.format.Format,
			ViewType2D: true,
			LevelCount: 1,
			LayerCount: 1,
		})
		if err != nil {
			return nil, d.abandon(errors.Wrapf(err, "core.NewDevice(): image view %d", i))
		}
		d.views = append(d.views, view)
	}

	logger.WithField("images", len(d.images)).Info("device ready")
	return d, nil
}

// abandon tears down a partially built device and returns err.
func (d *Device) abandon(err error) error {
	if derr := d.Destroy(); derr != nil {
		log.WithError(derr).Warn("tearing down partially built device")
	}
	return err
}

// IsEmpty reports whether d holds no device.
func (d *Device) IsEmpty() bool {
	return d.handle.IsNull()
}

func (d *Device) mustNotBeEmpty(method string) {
	if d.IsEmpty() {
		panic("core.Device." + method + "(): empty device")
	}
}

// Handle returns the logical device handle.
func (d *Device) Handle() driver.DeviceHandle {
	d.mustNotBeEmpty("Handle")
	return d.handle
}

// GraphicsQueue returns the queue graphics work is submitted to.
func (d *Device) GraphicsQueue() driver.QueueHandle {
	d.mustNotBeEmpty("GraphicsQueue")
	return d.graphicsQueue
}

// PresentationQueue returns the queue presentation requests go to.
func (d *Device) PresentationQueue() driver.QueueHandle {
	d.mustNotBeEmpty("PresentationQueue")
	return d.presentationQueue
}

// Swapchain returns the swapchain handle.
func (d *Device) Swapchain() driver.SwapchainHandle {
	d.mustNotBeEmpty("Swapchain")
	return d.swapchain
}

// Format returns the swapchain surface format.
func (d *Device) Format() driver.SurfaceFormat {
	d.mustNotBeEmpty("Format")
	return d.format
}

// PresentMode returns the swapchain present mode.
func (d *Device) PresentMode() driver.PresentMode {
	d.mustNotBeEmpty("PresentMode")
	return d.mode
}

// Extent returns the swapchain image extent.
func (d *Device) Extent() driver.Extent2D {
	d.mustNotBeEmpty("Extent")
	return d.extent
}

// QueueFamilies returns the queue families the device was created with.
func (d *Device) QueueFamilies() QueueFamilyChoice {
	d.mustNotBeEmpty("QueueFamilies")
	return d.families
}

// Images returns the swapchain images, in swapchain order.
func (d *Device) Images() []driver.ImageHandle {
	d.mustNotBeEmpty("Images")
	return slices.Clone(d.images)
}

// ImageViews returns one view per swapchain image, in the same order.
func (d *Device) ImageViews() []driver.ImageViewHandle {
	d.mustNotBeEmpty("ImageViews")
	return slices.Clone(d.views)
}

// AspectRatio returns the swapchain width divided by its height.
func (d *Device) AspectRatio() float32 {
	d.mustNotBeEmpty("AspectRatio")
	if d.extent.Height == 0 {
		return 1
	}
	return float32(d.extent.Width) / float32(d.extent.Height)
}

// Perspective returns a projection matching the swapchain aspect ratio.
// fovy is in radians. Vulkan clip space has Y pointing down.
func (d *Device) Perspective(fovy, near, far float32) mgl32.Mat4 {
	m := mgl32.Perspective(fovy, d.AspectRatio(), near, far)
	m[5] = -m[5]
	return m
}

// Move hands every handle over to a new Device and leaves d empty.
func (d *Device) Move() *Device {
	m := &Device{
		drv:               d.drv,
		handle:            d.handle,
		swapchain:         d.swapchain,
		format:            d.format,
		extent:            d.extent,
		mode:              d.mode,
		families:          d.families,
		graphicsQueue:     d.graphicsQueue,
		presentationQueue: d.presentationQueue,
		images:            d.images,
		views:             d.views,
	}
	d.reset()
	return m
}

func (d *Device) reset() {
	*d = Device{}
}

// Destroy destroys the image views in order, then the swapchain, waits
// for the device to go idle and destroys it. d is left empty, so calling
// Destroy again does nothing.
//
// An error from the idle wait is returned after the device has been
// destroyed anyway.
func (d *Device) Destroy() error {
	if d.IsEmpty() {
		return nil
	}
	for _, view := range d.views {
		d.drv.DestroyImageView(d.handle, view)
	}
	if !d.swapchain.IsNull() {
		d.drv.DestroySwapchain(d.handle, d.swapchain)
	}
	err := d.drv.DeviceWaitIdle(d.handle)
	d.drv.DestroyDevice(d.handle)
	d.reset()
	if err != nil {
		return errors.Wrap(err, "core.Device.Destroy()")
	}
	return nil
}
