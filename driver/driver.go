// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package driver defines the slice of the native graphics API that adapter
// selection and device construction talk to. Handles are opaque, types are
// plain Go mirrors of the Vulkan structures involved, and Driver lists the
// native calls in the order the rest of the module issues them.
package driver

// Opaque native handles. The zero value of every handle is the null handle.
type (
	InstanceHandle  uint64
	AdapterHandle   uint64
	SurfaceHandle   uint64
	DeviceHandle    uint64
	SwapchainHandle uint64
	QueueHandle     uint64
	ImageHandle     uint64
	ImageViewHandle uint64
)

// IsNull reports whether h is the null handle.
func (h InstanceHandle) IsNull() bool { return h == 0 }

// IsNull reports whether h is the null handle.
func (h AdapterHandle) IsNull() bool { return h == 0 }

// IsNull reports whether h is the null handle.
func (h SurfaceHandle) IsNull() bool { return h == 0 }

// IsNull reports whether h is the null handle.
func (h DeviceHandle) IsNull() bool { return h == 0 }

// IsNull reports whether h is the null handle.
func (h SwapchainHandle) IsNull() bool { return h == 0 }

// IsNull reports whether h is the null handle.
func (h QueueHandle) IsNull() bool { return h == 0 }

// IsNull reports whether h is the null handle.
func (h ImageHandle) IsNull() bool { return h == 0 }

// IsNull reports whether h is the null handle.
func (h ImageViewHandle) IsNull() bool { return h == 0 }

// Well known layer and extension names.
const (
	KhrSwapchainExtensionName              = "VK_KHR_swapchain"
	KhrPortabilitySubsetExtensionName      = "VK_KHR_portability_subset"
	KhrPortabilityEnumerationExtensionName = "VK_KHR_portability_enumeration"
	ExtDebugReportExtensionName            = "VK_EXT_debug_report"
	KhrValidationLayerName                 = "VK_LAYER_KHRONOS_validation"
)

// Driver is the native graphics API. Every call that reports a status
// returns an error when the status is not success; queries that cannot
// fail return values only.
//
// A Driver is not safe for concurrent use.
type Driver interface {
	// EnumerateAdapters lists the adapters visible to the instance,
	// in driver-defined order.
	EnumerateAdapters(instance InstanceHandle) ([]AdapterHandle, error)

	AdapterProperties(adapter AdapterHandle) AdapterProperties
	AdapterFeatures(adapter AdapterHandle) Features
	AdapterMemory(adapter AdapterHandle) MemoryProperties
	AdapterQueueFamilies(adapter AdapterHandle) []QueueFamily

	// AdapterLayers and AdapterExtensions query the adapter's tables
	// afresh on each call.
	AdapterLayers(adapter AdapterHandle) ([]LayerProperties, error)
	AdapterExtensions(adapter AdapterHandle) ([]ExtensionProperties, error)

	SurfaceCapabilities(adapter AdapterHandle, surface SurfaceHandle) (SurfaceCapabilities, error)
	SurfaceFormats(adapter AdapterHandle, surface SurfaceHandle) ([]SurfaceFormat, error)
	SurfacePresentModes(adapter AdapterHandle, surface SurfaceHandle) ([]PresentMode, error)

	// SurfaceSupport reports whether queue family can present on surface.
	SurfaceSupport(adapter AdapterHandle, family uint32, surface SurfaceHandle) (bool, error)

	CreateDevice(adapter AdapterHandle, info *DeviceCreateInfo) (DeviceHandle, error)
	DeviceQueue(device DeviceHandle, family, index uint32) QueueHandle
	CreateSwapchain(device DeviceHandle, info *SwapchainCreateInfo) (SwapchainHandle, error)

	// SwapchainImages returns images owned by the swapchain.
	SwapchainImages(device DeviceHandle, swapchain SwapchainHandle) ([]ImageHandle, error)
	CreateImageView(device DeviceHandle, info *ImageViewCreateInfo) (ImageViewHandle, error)

	DestroyImageView(device DeviceHandle, view ImageViewHandle)
	DestroySwapchain(device DeviceHandle, swapchain SwapchainHandle)

	// DeviceWaitIdle blocks until all work queued on device has completed.
	DeviceWaitIdle(device DeviceHandle) error
	DestroyDevice(device DeviceHandle)
}
