// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package vulkan implements driver.Driver on top of github.com/vulkan-go/vulkan.
//
// Native handles never leave this package: they are kept in per-kind
// tables and exposed as opaque driver handles.
package vulkan

import (
	"unsafe"

	log "github.com/sirupsen/logrus"
	vk "github.com/vulkan-go/vulkan"
	"golang.org/x/exp/slices"

	"github.com/devblok/koru/driver"
)

// instanceCreateEnumeratePortability is VK_INSTANCE_CREATE_ENUMERATE_PORTABILITY_BIT_KHR.
const instanceCreateEnumeratePortability vk.InstanceCreateFlags = 0x00000001

// instanceID is the only instance a Driver manages.
const instanceID driver.InstanceHandle = 1

// InstanceConfig describes the instance New creates.
type InstanceConfig struct {
	ApplicationName string
	Layers          []string
	Extensions      []string

	// Validation adds VK_EXT_debug_report when the loader offers it.
	Validation bool
}

// Driver owns a Vulkan instance and every object created through it.
type Driver struct {
	instance vk.Instance
	config   InstanceConfig
	debug    bool

	adapters   *table[vk.PhysicalDevice]
	surfaces   *table[vk.Surface]
	devices    *table[vk.Device]
	swapchains *table[vk.Swapchain]
	queues     *table[vk.Queue]
	images     *table[vk.Image]
	views      *table[vk.ImageView]

	swapchainImages map[driver.SwapchainHandle][]driver.ImageHandle
}

// New creates the instance. Init must have been called first.
func New(cfg InstanceConfig) (*Driver, error) {
	if !initialised {
		return nil, ErrNotInitialised
	}
	available, err := InstanceExtensions()
	if err != nil {
		return nil, err
	}

	extensions := append([]string(nil), cfg.Extensions...)
	var flags vk.InstanceCreateFlags
	if slices.Contains(available, driver.KhrPortabilityEnumerationExtensionName) {
		extensions = appendMissing(extensions, driver.KhrPortabilityEnumerationExtensionName)
		flags |= instanceCreateEnumeratePortability
	}
	debug := false
	if cfg.Validation && slices.Contains(available, driver.ExtDebugReportExtensionName) {
		extensions = appendMissing(extensions, driver.ExtDebugReportExtensionName)
		debug = true
	}
	cfg.Extensions = extensions

	appName := cfg.ApplicationName
	if appName == "" {
		appName = "Koru3D"
	}
	layers := safeStrings(cfg.Layers)
	exts := safeStrings(extensions)
	instanceInfo := vk.InstanceCreateInfo{
		SType: vk.StructureTypeInstanceCreateInfo,
		Flags: flags,
		PApplicationInfo: &vk.ApplicationInfo{
			SType:              vk.StructureTypeApplicationInfo,
			ApiVersion:         vk.MakeVersion(1, 0, 0),
			ApplicationVersion: vk.MakeVersion(1, 0, 0),
			PApplicationName:   safeString(appName),
			PEngineName:        "Koru3D\x00",
		},
		EnabledExtensionCount:   uint32(len(exts)),
		PpEnabledExtensionNames: exts,
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     layers,
	}

	var instance vk.Instance
	if err := newError("vk.CreateInstance()", vk.CreateInstance(&instanceInfo, nil, &instance)); err != nil {
		return nil, err
	}
	if err := vk.InitInstance(instance); err != nil {
		vk.DestroyInstance(instance, nil)
		return nil, err
	}

	log.WithFields(log.Fields{
		"layers":     cfg.Layers,
		"extensions": extensions,
	}).Debug("vulkan instance created")

	return &Driver{
		instance:   instance,
		config:     cfg,
		debug:      debug,
		adapters:   newTable[vk.PhysicalDevice]("adapter"),
		surfaces:   newTable[vk.Surface]("surface"),
		devices:    newTable[vk.Device]("device"),
		swapchains: newTable[vk.Swapchain]("swapchain"),
		queues:     newTable[vk.Queue]("queue"),
		images:     newTable[vk.Image]("image"),
		views:      newTable[vk.ImageView]("image view"),

		swapchainImages: make(map[driver.SwapchainHandle][]driver.ImageHandle),
	}, nil
}

// Instance returns the handle adapters are enumerated for.
func (d *Driver) Instance() driver.InstanceHandle {
	return instanceID
}

// NativeInstance returns the vk.Instance, for windowing libraries that
// create surfaces from it.
func (d *Driver) NativeInstance() interface{} {
	return d.instance
}

// Extensions returns the instance extensions that were enabled.
func (d *Driver) Extensions() []string {
	return append([]string(nil), d.config.Extensions...)
}

// RegisterSurface takes ownership of a VkSurfaceKHR created by a
// windowing library from NativeInstance.
func (d *Driver) RegisterSurface(surface unsafe.Pointer) driver.SurfaceHandle {
	return driver.SurfaceHandle(d.surfaces.put(vk.SurfaceFromPointer(uintptr(surface))))
}

// DestroySurface destroys a surface registered with RegisterSurface.
func (d *Driver) DestroySurface(surface driver.SurfaceHandle) {
	vk.DestroySurface(d.instance, d.surfaces.drop(uint64(surface)), nil)
}

// Destroy destroys the instance. Devices and surfaces must have been
// destroyed already.
func (d *Driver) Destroy() {
	if n := d.devices.len() + d.surfaces.len(); n != 0 {
		log.WithField("objects", n).Warn("vulkan instance destroyed with live objects")
	}
	vk.DestroyInstance(d.instance, nil)
	d.instance = nil
}

var _ driver.Driver = (*Driver)(nil)
