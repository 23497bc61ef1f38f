// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package drivertest

import "github.com/devblok/koru/driver"

// DiscreteGPU returns an adapter that passes every default selection
// filter: tessellation, validation layer, swapchain extension and a
// single graphics family that can also present.
func DiscreteGPU(name string) *Adapter {
	return &Adapter{
		Properties: driver.AdapterProperties{
			Name:          name,
			VendorID:      0x10de,
			DeviceID:      0x2204,
			Type:          driver.AdapterTypeDiscrete,
			APIVersion:    driver.MakeVersion(1, 3, 250),
			DriverVersion: 535,
		},
		Features: driver.FeatureTessellationShader | driver.FeatureGeometryShader | driver.FeatureSamplerAnisotropy,
		Memory: driver.MemoryProperties{Heaps: []driver.MemoryHeap{
			{Size: 8 << 30, DeviceLocal: true},
			{Size: 16 << 30},
		}},
		QueueFamilies: []driver.QueueFamily{
			{Flags: driver.QueueGraphics | driver.QueueCompute | driver.QueueTransfer, QueueCount: 16},
			{Flags: driver.QueueTransfer, QueueCount: 2},
		},
		Layers:     []string{driver.KhrValidationLayerName},
		Extensions: []string{driver.KhrSwapchainExtensionName},
		Surface: SurfaceFixture{
			Capabilities: driver.SurfaceCapabilities{
				MinImageCount:       2,
				MaxImageCount:       8,
				CurrentExtent:       driver.Extent2D{Width: 800, Height: 600},
				MinImageExtent:      driver.Extent2D{Width: 1, Height: 1},
				MaxImageExtent:      driver.Extent2D{Width: 4096, Height: 4096},
				SupportedTransforms: driver.SurfaceTransformIdentity,
				CurrentTransform:    driver.SurfaceTransformIdentity,
			},
			Formats: []driver.SurfaceFormat{
				{Format: driver.FormatB8G8R8A8Unorm, ColorSpace: driver.ColorSpaceSRGBNonlinear},
				{Format: driver.FormatB8G8R8A8SRGB, ColorSpace: driver.ColorSpaceSRGBNonlinear},
			},
			PresentModes: []driver.PresentMode{driver.PresentModeFifo, driver.PresentModeMailbox},
			Presenting:   []uint32{0},
		},
	}
}

// SplitQueueGPU returns an adapter with graphics families {0, 2} and
// presenting families {1, 2}; only family 2 does both.
func SplitQueueGPU(name string) *Adapter {
	a := DiscreteGPU(name)
	a.QueueFamilies = []driver.QueueFamily{
		{Flags: driver.QueueGraphics | driver.QueueCompute, QueueCount: 4},
		{Flags: driver.QueueTransfer, QueueCount: 1},
		{Flags: driver.QueueGraphics, QueueCount: 1},
	}
	a.Surface.Presenting = []uint32{1, 2}
	return a
}
