// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vulkan

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"

	"github.com/devblok/koru/driver"
)

func (d *Driver) adapter(h driver.AdapterHandle) vk.PhysicalDevice {
	return d.adapters.get(uint64(h))
}

func (d *Driver) surface(h driver.SurfaceHandle) vk.Surface {
	return d.surfaces.get(uint64(h))
}

// EnumerateAdapters implements driver.Driver.
func (d *Driver) EnumerateAdapters(instance driver.InstanceHandle) ([]driver.AdapterHandle, error) {
	if instance != instanceID {
		return nil, errors.Errorf("vulkan: unknown instance handle %d", instance)
	}
	var count uint32
	if err := newError("vk.EnumeratePhysicalDevices()", vk.EnumeratePhysicalDevices(d.instance, &count, nil)); err != nil {
		return nil, err
	}
	list := make([]vk.PhysicalDevice, count)
	if err := newError("vk.EnumeratePhysicalDevices()", vk.EnumeratePhysicalDevices(d.instance, &count, list)); err != nil {
		return nil, err
	}
	handles := make([]driver.AdapterHandle, 0, count)
	for _, pd := range list[:count] {
		handles = append(handles, driver.AdapterHandle(d.adapters.put(pd)))
	}
	return handles, nil
}

// AdapterProperties implements driver.Driver.
func (d *Driver) AdapterProperties(adapter driver.AdapterHandle) driver.AdapterProperties {
	var props vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(d.adapter(adapter), &props)
	props.Deref()
	return driver.AdapterProperties{
		Name:          vk.ToString(props.DeviceName[:]),
		VendorID:      props.VendorID,
		DeviceID:      props.DeviceID,
		Type:          driver.AdapterType(props.DeviceType),
		APIVersion:    props.ApiVersion,
		DriverVersion: props.DriverVersion,
	}
}

// AdapterFeatures implements driver.Driver.
func (d *Driver) AdapterFeatures(adapter driver.AdapterHandle) driver.Features {
	var feats vk.PhysicalDeviceFeatures
	vk.GetPhysicalDeviceFeatures(d.adapter(adapter), &feats)
	feats.Deref()
	return fromFeatures(&feats)
}

// AdapterMemory implements driver.Driver.
func (d *Driver) AdapterMemory(adapter driver.AdapterHandle) driver.MemoryProperties {
	var mem vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(d.adapter(adapter), &mem)
	mem.Deref()
	heaps := make([]driver.MemoryHeap, 0, mem.MemoryHeapCount)
	for i := uint32(0); i < mem.MemoryHeapCount; i++ {
		mem.MemoryHeaps[i].Deref()
		heaps = append(heaps, driver.MemoryHeap{
			Size:        uint64(mem.MemoryHeaps[i].Size),
			DeviceLocal: mem.MemoryHeaps[i].Flags&vk.MemoryHeapFlags(vk.MemoryHeapDeviceLocalBit) != 0,
		})
	}
	return driver.MemoryProperties{Heaps: heaps}
}

// AdapterQueueFamilies implements driver.Driver.
func (d *Driver) AdapterQueueFamilies(adapter driver.AdapterHandle) []driver.QueueFamily {
	pd := d.adapter(adapter)
	var count uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(pd, &count, nil)
	list := make([]vk.QueueFamilyProperties, count)
	vk.GetPhysicalDeviceQueueFamilyProperties(pd, &count, list)
	families := make([]driver.QueueFamily, 0, count)
	for _, q := range list[:count] {
		q.Deref()
		families = append(families, driver.QueueFamily{
			Flags:      driver.QueueFlags(q.QueueFlags),
			QueueCount: q.QueueCount,
		})
	}
	return families
}

// AdapterLayers implements driver.Driver.
func (d *Driver) AdapterLayers(adapter driver.AdapterHandle) ([]driver.LayerProperties, error) {
	pd := d.adapter(adapter)
	var count uint32
	if err := newError("vk.EnumerateDeviceLayerProperties()", vk.EnumerateDeviceLayerProperties(pd, &count, nil)); err != nil {
		return nil, err
	}
	list := make([]vk.LayerProperties, count)
	if err := newError("vk.EnumerateDeviceLayerProperties()", vk.EnumerateDeviceLayerProperties(pd, &count, list)); err != nil {
		return nil, err
	}
	layers := make([]driver.LayerProperties, 0, count)
	for _, l := range list[:count] {
		l.Deref()
		layers = append(layers, driver.LayerProperties{
			Name:                  vk.ToString(l.LayerName[:]),
			Description:           vk.ToString(l.Description[:]),
			SpecVersion:           l.SpecVersion,
			ImplementationVersion: l.ImplementationVersion,
		})
	}
	return layers, nil
}

// AdapterExtensions implements driver.Driver.
func (d *Driver) AdapterExtensions(adapter driver.AdapterHandle) ([]driver.ExtensionProperties, error) {
	pd := d.adapter(adapter)
	var count uint32
	if err := newError("vk.EnumerateDeviceExtensionProperties()", vk.EnumerateDeviceExtensionProperties(pd, "", &count, nil)); err != nil {
		return nil, err
	}
	list := make([]vk.ExtensionProperties, count)
	if err := newError("vk.EnumerateDeviceExtensionProperties()", vk.EnumerateDeviceExtensionProperties(pd, "", &count, list)); err != nil {
		return nil, err
	}
	exts := make([]driver.ExtensionProperties, 0, count)
	for _, e := range list[:count] {
		e.Deref()
		exts = append(exts, driver.ExtensionProperties{
			Name:        vk.ToString(e.ExtensionName[:]),
			SpecVersion: e.SpecVersion,
		})
	}
	return exts, nil
}

// SurfaceCapabilities implements driver.Driver.
func (d *Driver) SurfaceCapabilities(adapter driver.AdapterHandle, surface driver.SurfaceHandle) (driver.SurfaceCapabilities, error) {
	var caps vk.SurfaceCapabilities
	ret := vk.GetPhysicalDeviceSurfaceCapabilities(d.adapter(adapter), d.surface(surface), &caps)
	if err := newError("vk.GetPhysicalDeviceSurfaceCapabilities()", ret); err != nil {
		return driver.SurfaceCapabilities{}, err
	}
	caps.Deref()
	caps.CurrentExtent.Deref()
	caps.MinImageExtent.Deref()
	caps.MaxImageExtent.Deref()
	return driver.SurfaceCapabilities{
		MinImageCount:       caps.MinImageCount,
		MaxImageCount:       caps.MaxImageCount,
		CurrentExtent:       fromExtent(caps.CurrentExtent),
		MinImageExtent:      fromExtent(caps.MinImageExtent),
		MaxImageExtent:      fromExtent(caps.MaxImageExtent),
		SupportedTransforms: driver.SurfaceTransform(caps.SupportedTransforms),
		CurrentTransform:    driver.SurfaceTransform(caps.CurrentTransform),
	}, nil
}

// SurfaceFormats implements driver.Driver.
func (d *Driver) SurfaceFormats(adapter driver.AdapterHandle, surface driver.SurfaceHandle) ([]driver.SurfaceFormat, error) {
	pd, s := d.adapter(adapter), d.surface(surface)
	var count uint32
	if err := newError("vk.GetPhysicalDeviceSurfaceFormats()", vk.GetPhysicalDeviceSurfaceFormats(pd, s, &count, nil)); err != nil {
		return nil, err
	}
	list := make([]vk.SurfaceFormat, count)
	if err := newError("vk.GetPhysicalDeviceSurfaceFormats()", vk.GetPhysicalDeviceSurfaceFormats(pd, s, &count, list)); err != nil {
		return nil, err
	}
	formats := make([]driver.SurfaceFormat, 0, count)
	for _, f := range list[:count] {
		f.Deref()
		formats = append(formats, driver.SurfaceFormat{
			Format:     driver.Format(f.Format),
			ColorSpace: driver.ColorSpace(f.ColorSpace),
		})
	}
	return formats, nil
}

// SurfacePresentModes implements driver.Driver.
func (d *Driver) SurfacePresentModes(adapter driver.AdapterHandle, surface driver.SurfaceHandle) ([]driver.PresentMode, error) {
	pd, s := d.adapter(adapter), d.surface(surface)
	var count uint32
	if err := newError("vk.GetPhysicalDeviceSurfacePresentModes()", vk.GetPhysicalDeviceSurfacePresentModes(pd, s, &count, nil)); err != nil {
		return nil, err
	}
	list := make([]vk.PresentMode, count)
	if err := newError("vk.GetPhysicalDeviceSurfacePresentModes()", vk.GetPhysicalDeviceSurfacePresentModes(pd, s, &count, list)); err != nil {
		return nil, err
	}
	modes := make([]driver.PresentMode, 0, count)
	for _, m := range list[:count] {
		modes = append(modes, driver.PresentMode(m))
	}
	return modes, nil
}

// SurfaceSupport implements driver.Driver.
func (d *Driver) SurfaceSupport(adapter driver.AdapterHandle, family uint32, surface driver.SurfaceHandle) (bool, error) {
	var supported vk.Bool32
	ret := vk.GetPhysicalDeviceSurfaceSupport(d.adapter(adapter), family, d.surface(surface), &supported)
	if err := newError("vk.GetPhysicalDeviceSurfaceSupport()", ret); err != nil {
		return false, err
	}
	return supported.B(), nil
}
