// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vulkan

import (
	"unsafe"

	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

var initialised bool

// Init points the loader at procAddr, the vkGetInstanceProcAddr of the
// windowing library. A nil procAddr loads the system Vulkan library.
func Init(procAddr unsafe.Pointer) error {
	if procAddr == nil {
		if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
			return errors.Wrap(err, "vk.SetDefaultGetInstanceProcAddr()")
		}
	} else {
		vk.SetGetInstanceProcAddr(procAddr)
	}
	if err := vk.Init(); err != nil {
		return errors.Wrap(err, "vk.Init()")
	}
	initialised = true
	return nil
}

// InstanceLayers lists the instance layers the loader offers.
func InstanceLayers() ([]string, error) {
	if !initialised {
		return nil, ErrNotInitialised
	}
	var count uint32
	if err := newError("vk.EnumerateInstanceLayerProperties()", vk.EnumerateInstanceLayerProperties(&count, nil)); err != nil {
		return nil, err
	}
	list := make([]vk.LayerProperties, count)
	if err := newError("vk.EnumerateInstanceLayerProperties()", vk.EnumerateInstanceLayerProperties(&count, list)); err != nil {
		return nil, err
	}
	return layerNames(list[:count]), nil
}

// InstanceExtensions lists the instance extensions the loader offers.
func InstanceExtensions() ([]string, error) {
	if !initialised {
		return nil, ErrNotInitialised
	}
	var count uint32
	if err := newError("vk.EnumerateInstanceExtensionProperties()", vk.EnumerateInstanceExtensionProperties("", &count, nil)); err != nil {
		return nil, err
	}
	list := make([]vk.ExtensionProperties, count)
	if err := newError("vk.EnumerateInstanceExtensionProperties()", vk.EnumerateInstanceExtensionProperties("", &count, list)); err != nil {
		return nil, err
	}
	return extensionNames(list[:count]), nil
}
