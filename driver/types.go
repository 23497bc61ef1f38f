// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package driver

import "fmt"

// Enumerations carry the Vulkan numeric values, so a driver
// implementation converts them with a plain type conversion.
type (
	Format           int32
	ColorSpace       int32
	PresentMode      int32
	SurfaceTransform uint32
	QueueFlags       uint32
	SharingMode      int32
	AdapterType      int32
	ImageUsage       uint32
	CompositeAlpha   uint32
)

// Formats
const (
	FormatUndefined          Format = 0
	FormatR8G8B8A8Unorm      Format = 37
	FormatR8G8B8A8SRGB       Format = 43
	FormatB8G8R8A8Unorm      Format = 44
	FormatB8G8R8A8SRGB       Format = 50
	FormatA2B10G10R10Unorm   Format = 64
	FormatR16G16B16A16Sfloat Format = 97
)

// Color spaces
const (
	ColorSpaceSRGBNonlinear ColorSpace = 0
)

// Present modes
const (
	PresentModeImmediate   PresentMode = 0
	PresentModeMailbox     PresentMode = 1
	PresentModeFifo        PresentMode = 2
	PresentModeFifoRelaxed PresentMode = 3
)

// Surface transforms
const (
	SurfaceTransformIdentity  SurfaceTransform = 0x1
	SurfaceTransformRotate90  SurfaceTransform = 0x2
	SurfaceTransformRotate180 SurfaceTransform = 0x4
	SurfaceTransformRotate270 SurfaceTransform = 0x8
)

// Queue capabilities
const (
	QueueGraphics      QueueFlags = 0x1
	QueueCompute       QueueFlags = 0x2
	QueueTransfer      QueueFlags = 0x4
	QueueSparseBinding QueueFlags = 0x8
)

// Image sharing modes
const (
	SharingModeExclusive  SharingMode = 0
	SharingModeConcurrent SharingMode = 1
)

// Adapter types
const (
	AdapterTypeOther      AdapterType = 0
	AdapterTypeIntegrated AdapterType = 1
	AdapterTypeDiscrete   AdapterType = 2
	AdapterTypeVirtual    AdapterType = 3
	AdapterTypeCPU        AdapterType = 4
)

// Swapchain image usage and compositing.
const (
	ImageUsageColorAttachment ImageUsage     = 0x10
	CompositeAlphaOpaque      CompositeAlpha = 0x1
)

func (f Format) String() string {
	switch f {
	case FormatUndefined:
		return "UNDEFINED"
	case FormatR8G8B8A8Unorm:
		return "R8G8B8A8_UNORM"
	case FormatR8G8B8A8SRGB:
		return "R8G8B8A8_SRGB"
	case FormatB8G8R8A8Unorm:
		return "B8G8R8A8_UNORM"
	case FormatB8G8R8A8SRGB:
		return "B8G8R8A8_SRGB"
	case FormatA2B10G10R10Unorm:
		return "A2B10G10R10_UNORM_PACK32"
	case FormatR16G16B16A16Sfloat:
		return "R16G16B16A16_SFLOAT"
	}
	return fmt.Sprintf("Format(%d)", int32(f))
}

func (m PresentMode) String() string {
	switch m {
	case PresentModeImmediate:
		return "IMMEDIATE"
	case PresentModeMailbox:
		return "MAILBOX"
	case PresentModeFifo:
		return "FIFO"
	case PresentModeFifoRelaxed:
		return "FIFO_RELAXED"
	}
	return fmt.Sprintf("PresentMode(%d)", int32(m))
}

func (t AdapterType) String() string {
	switch t {
	case AdapterTypeOther:
		return "other"
	case AdapterTypeIntegrated:
		return "integrated"
	case AdapterTypeDiscrete:
		return "discrete"
	case AdapterTypeVirtual:
		return "virtual"
	case AdapterTypeCPU:
		return "cpu"
	}
	return fmt.Sprintf("AdapterType(%d)", int32(t))
}

// Extent2D is a size in pixels.
type Extent2D struct {
	Width  uint32
	Height uint32
}

func (e Extent2D) String() string {
	return fmt.Sprintf("%dx%d", e.Width, e.Height)
}

// SurfaceFormat pairs a pixel format with the color space it is presented in.
type SurfaceFormat struct {
	Format     Format
	ColorSpace ColorSpace
}

// SurfaceCapabilities are a surface's limits as reported for one adapter.
// A MaxImageCount of zero means there is no upper bound.
type SurfaceCapabilities struct {
	MinImageCount       uint32
	MaxImageCount       uint32
	CurrentExtent       Extent2D
	MinImageExtent      Extent2D
	MaxImageExtent      Extent2D
	SupportedTransforms SurfaceTransform
	CurrentTransform    SurfaceTransform
}

// AdapterProperties are the static properties of an adapter.
type AdapterProperties struct {
	Name          string
	VendorID      uint32
	DeviceID      uint32
	Type          AdapterType
	APIVersion    uint32
	DriverVersion uint32
}

// MemoryHeap describes one memory heap of an adapter.
type MemoryHeap struct {
	Size        uint64
	DeviceLocal bool
}

// MemoryProperties describes an adapter's memory layout.
type MemoryProperties struct {
	Heaps []MemoryHeap
}

// TotalSize sums the sizes of all heaps.
func (m MemoryProperties) TotalSize() uint64 {
	var total uint64
	for _, h := range m.Heaps {
		total += h.Size
	}
	return total
}

// QueueFamily describes a group of queues sharing capabilities.
type QueueFamily struct {
	Flags      QueueFlags
	QueueCount uint32
}

// Supports reports whether the family has every capability in flags.
func (q QueueFamily) Supports(flags QueueFlags) bool {
	return q.Flags&flags == flags
}

// LayerProperties describes an available layer.
type LayerProperties struct {
	Name                  string
	Description           string
	SpecVersion           uint32
	ImplementationVersion uint32
}

// ExtensionProperties describes an available extension.
type ExtensionProperties struct {
	Name        string
	SpecVersion uint32
}

// QueueCreateInfo requests len(Priorities) queues from one family.
type QueueCreateInfo struct {
	FamilyIndex uint32
	Priorities  []float32
}

// DeviceCreateInfo describes a logical device.
type DeviceCreateInfo struct {
	Queues     []QueueCreateInfo
	Layers     []string
	Extensions []string
	Features   Features
}

// SwapchainCreateInfo describes a swapchain. QueueFamilyIndices is only
// consulted when SharingMode is SharingModeConcurrent.
type SwapchainCreateInfo struct {
	Surface            SurfaceHandle
	MinImageCount      uint32
	Format             Format
	ColorSpace         ColorSpace
	Extent             Extent2D
	ArrayLayers        uint32
	Usage              ImageUsage
	SharingMode        SharingMode
	QueueFamilyIndices []uint32
	PreTransform       SurfaceTransform
	CompositeAlpha     CompositeAlpha
	PresentMode        PresentMode
	Clipped            bool
	OldSwapchain       SwapchainHandle
}

// ImageViewCreateInfo describes a color view of a swapchain image.
// Components are always identity mapped.
type ImageViewCreateInfo struct {
	Image      ImageHandle
	Format     Format
	ViewType2D bool
	BaseLevel  uint32
	LevelCount uint32
	BaseLayer  uint32
	LayerCount uint32
}

// AdapterInfo describes an adapter for diagnostics.
type AdapterInfo struct {
	Name          string
	ID            uint32
	VendorID      uint32
	Type          string
	APIVersion    string
	DriverVersion uint32
	Memory        uint64
	QueueFamilies int
}

func (i AdapterInfo) String() string {
	return fmt.Sprintf("%s id: %d type: %s API: %s", i.Name, i.ID, i.Type, i.APIVersion)
}

// FormatVersion renders a packed Vulkan version number as major.minor.patch.
func FormatVersion(v uint32) string {
	return fmt.Sprintf("%d.%d.%d", v>>22, (v>>12)&0x3ff, v&0xfff)
}

// MakeVersion packs a version number the way Vulkan does.
func MakeVersion(major, minor, patch uint32) uint32 {
	return major<<22 | minor<<12 | patch
}
