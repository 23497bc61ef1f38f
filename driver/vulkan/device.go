// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vulkan

import (
	vk "github.com/vulkan-go/vulkan"

	"github.com/devblok/koru/driver"
)

func (d *Driver) device(h driver.DeviceHandle) vk.Device {
	return d.devices.get(uint64(h))
}

// CreateDevice implements driver.Driver.
func (d *Driver) CreateDevice(adapter driver.AdapterHandle, info *driver.DeviceCreateInfo) (driver.DeviceHandle, error) {
	queueInfos := make([]vk.DeviceQueueCreateInfo, 0, len(info.Queues))
	for _, q := range info.Queues {
		queueInfos = append(queueInfos, vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: q.FamilyIndex,
			QueueCount:       uint32(len(q.Priorities)),
			PQueuePriorities: q.Priorities,
		})
	}
	layers := safeStrings(info.Layers)
	extensions := safeStrings(info.Extensions)
	dci := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       queueInfos,
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     layers,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: extensions,
		PEnabledFeatures:        []vk.PhysicalDeviceFeatures{toFeatures(info.Features)},
	}

	var device vk.Device
	if err := newError("vk.CreateDevice()", vk.CreateDevice(d.adapter(adapter), &dci, nil, &device)); err != nil {
		return 0, err
	}
	return driver.DeviceHandle(d.devices.put(device)), nil
}

// DeviceQueue implements driver.Driver.
func (d *Driver) DeviceQueue(device driver.DeviceHandle, family, index uint32) driver.QueueHandle {
	var queue vk.Queue
	vk.GetDeviceQueue(d.device(device), family, index, &queue)
	return driver.QueueHandle(d.queues.put(queue))
}

// CreateSwapchain implements driver.Driver.
func (d *Driver) CreateSwapchain(device driver.DeviceHandle, info *driver.SwapchainCreateInfo) (driver.SwapchainHandle, error) {
	old := vk.NullSwapchain
	if !info.OldSwapchain.IsNull() {
		old = d.swapchains.get(uint64(info.OldSwapchain))
	}
	scci := vk.SwapchainCreateInfo{
		SType:            vk.StructureTypeSwapchainCreateInfo,
		Surface:          d.surface(info.Surface),
		MinImageCount:    info.MinImageCount,
		ImageFormat:      vk.Format(info.Format),
		ImageColorSpace:  vk.ColorSpace(info.ColorSpace),
		ImageExtent:      toExtent(info.Extent),
		ImageArrayLayers: info.ArrayLayers,
		ImageUsage:       vk.ImageUsageFlags(info.Usage),
		ImageSharingMode: vk.SharingMode(info.SharingMode),
		PreTransform:     vk.SurfaceTransformFlagBits(info.PreTransform),
		CompositeAlpha:   vk.CompositeAlphaFlagBits(info.CompositeAlpha),
		PresentMode:      vk.PresentMode(info.PresentMode),
		Clipped:          toBool32(info.Clipped),
		OldSwapchain:     old,
	}
	if info.SharingMode == driver.SharingModeConcurrent {
		scci.QueueFamilyIndexCount = uint32(len(info.QueueFamilyIndices))
		scci.PQueueFamilyIndices = info.QueueFamilyIndices
	}

	var swapchain vk.Swapchain
	if err := newError("vk.CreateSwapchain()", vk.CreateSwapchain(d.device(device), &scci, nil, &swapchain)); err != nil {
		return 0, err
	}
	return driver.SwapchainHandle(d.swapchains.put(swapchain)), nil
}

// SwapchainImages implements driver.Driver.
func (d *Driver) SwapchainImages(device driver.DeviceHandle, swapchain driver.SwapchainHandle) ([]driver.ImageHandle, error) {
	dev, sc := d.device(device), d.swapchains.get(uint64(swapchain))
	var count uint32
	if err := newError("vk.GetSwapchainImages()", vk.GetSwapchainImages(dev, sc, &count, nil)); err != nil {
		return nil, err
	}
	list := make([]vk.Image, count)
	if err := newError("vk.GetSwapchainImages()", vk.GetSwapchainImages(dev, sc, &count, list)); err != nil {
		return nil, err
	}
	images := make([]driver.ImageHandle, 0, count)
	for _, img := range list[:count] {
		images = append(images, driver.ImageHandle(d.images.put(img)))
	}
	d.swapchainImages[swapchain] = images
	return images, nil
}

// CreateImageView implements driver.Driver.
func (d *Driver) CreateImageView(device driver.DeviceHandle, info *driver.ImageViewCreateInfo) (driver.ImageViewHandle, error) {
	viewType := vk.ImageViewType1d
	if info.ViewType2D {
		viewType = vk.ImageViewType2d
	}
	ivci := vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    d.images.get(uint64(info.Image)),
		ViewType: viewType,
		Format:   vk.Format(info.Format),
		Components: vk.ComponentMapping{
			R: vk.ComponentSwizzleIdentity,
			G: vk.ComponentSwizzleIdentity,
			B: vk.ComponentSwizzleIdentity,
			A: vk.ComponentSwizzleIdentity,
		},
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask:     vk.ImageAspectFlags(vk.ImageAspectColorBit),
			BaseMipLevel:   info.BaseLevel,
			LevelCount:     info.LevelCount,
			BaseArrayLayer: info.BaseLayer,
			LayerCount:     info.LayerCount,
		},
	}

	var view vk.ImageView
	if err := newError("vk.CreateImageView()", vk.CreateImageView(d.device(device), &ivci, nil, &view)); err != nil {
		return 0, err
	}
	return driver.ImageViewHandle(d.views.put(view)), nil
}

// DestroyImageView implements driver.Driver.
func (d *Driver) DestroyImageView(device driver.DeviceHandle, view driver.ImageViewHandle) {
	vk.DestroyImageView(d.device(device), d.views.drop(uint64(view)), nil)
}

// DestroySwapchain implements driver.Driver. The swapchain's images are
// forgotten along with it.
func (d *Driver) DestroySwapchain(device driver.DeviceHandle, swapchain driver.SwapchainHandle) {
	sc := d.swapchains.drop(uint64(swapchain))
	for _, id := range d.swapchainImages[swapchain] {
		d.images.drop(uint64(id))
	}
	delete(d.swapchainImages, swapchain)
	vk.DestroySwapchain(d.device(device), sc, nil)
}

// DeviceWaitIdle implements driver.Driver.
func (d *Driver) DeviceWaitIdle(device driver.DeviceHandle) error {
	return newError("vk.DeviceWaitIdle()", vk.DeviceWaitIdle(d.device(device)))
}

// DestroyDevice implements driver.Driver.
func (d *Driver) DestroyDevice(device driver.DeviceHandle) {
	vk.DestroyDevice(d.devices.drop(uint64(device)), nil)
}
