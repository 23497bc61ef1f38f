// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/devblok/koru/driver"
)

// AdapterCapabilities is a snapshot of one physical adapter, taken when it
// is created. The adapter handle is borrowed, never owned.
//
// A snapshot is never refreshed: when the set of adapters changes, build
// a new AdapterList instead.
type AdapterCapabilities struct {
	drv     driver.Driver
	adapter driver.AdapterHandle

	properties    driver.AdapterProperties
	features      driver.Features
	memory        driver.MemoryProperties
	queueFamilies []driver.QueueFamily
	graphics      []uint32
}

// NewAdapterCapabilities queries everything about adapter in one pass.
// It panics on a null adapter handle.
func NewAdapterCapabilities(drv driver.Driver, adapter driver.AdapterHandle) *AdapterCapabilities {
	if adapter.IsNull() {
		panic("core.NewAdapterCapabilities(): null adapter handle")
	}
	a := &AdapterCapabilities{
		drv:           drv,
		adapter:       adapter,
		properties:    drv.AdapterProperties(adapter),
		features:      drv.AdapterFeatures(adapter),
		memory:        drv.AdapterMemory(adapter),
		queueFamilies: drv.AdapterQueueFamilies(adapter),
	}
	for i, q := range a.queueFamilies {
		if q.Supports(driver.QueueGraphics) {
			a.graphics = append(a.graphics, uint32(i))
		}
	}
	return a
}

// Handle returns the adapter handle.
func (a *AdapterCapabilities) Handle() driver.AdapterHandle {
	return a.adapter
}

// Properties returns the adapter properties.
func (a *AdapterCapabilities) Properties() driver.AdapterProperties {
	return a.properties
}

// Features returns the features the adapter exposes.
func (a *AdapterCapabilities) Features() driver.Features {
	return a.features
}

// Memory returns the adapter memory layout.
func (a *AdapterCapabilities) Memory() driver.MemoryProperties {
	return a.memory
}

// QueueFamilyCount returns the number of queue families.
func (a *AdapterCapabilities) QueueFamilyCount() int {
	return len(a.queueFamilies)
}

// QueueFamily returns the i-th queue family descriptor.
func (a *AdapterCapabilities) QueueFamily(i uint32) driver.QueueFamily {
	return a.queueFamilies[i]
}

// HasRequiredFeatures reports whether every feature in required is exposed.
func (a *AdapterCapabilities) HasRequiredFeatures(required driver.Features) bool {
	return a.features.Has(required)
}

// HasLayers reports whether the adapter offers every named layer.
// The layer table is queried afresh.
func (a *AdapterCapabilities) HasLayers(names []string) (bool, error) {
	layers, err := a.drv.AdapterLayers(a.adapter)
	if err != nil {
		return false, errors.Wrap(err, "core.AdapterCapabilities.HasLayers()")
	}
	available := make([]string, len(layers))
	for i, l := range layers {
		available[i] = l.Name
	}
	return containsAll(available, names), nil
}

// HasExtension reports whether the adapter offers the named extension.
func (a *AdapterCapabilities) HasExtension(name string) (bool, error) {
	return a.HasExtensions([]string{name})
}

// HasExtensions reports whether the adapter offers every named extension.
// The extension table is queried afresh.
func (a *AdapterCapabilities) HasExtensions(names []string) (bool, error) {
	available, err := a.extensionNames()
	if err != nil {
		return false, errors.Wrap(err, "core.AdapterCapabilities.HasExtensions()")
	}
	return containsAll(available, names), nil
}

func (a *AdapterCapabilities) extensionNames() ([]string, error) {
	exts, err := a.drv.AdapterExtensions(a.adapter)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(exts))
	for i, e := range exts {
		names[i] = e.Name
	}
	return names, nil
}

// GraphicsQueueFamilyIndices returns the ascending indices of the queue
// families that support graphics. The result may be empty.
func (a *AdapterCapabilities) GraphicsQueueFamilyIndices() []uint32 {
	return slices.Clone(a.graphics)
}

// Info returns the diagnostic record of the adapter.
func (a *AdapterCapabilities) Info() driver.AdapterInfo {
	return driver.AdapterInfo{
		Name:          a.properties.Name,
		ID:            a.properties.DeviceID,
		VendorID:      a.properties.VendorID,
		Type:          a.properties.Type.String(),
		APIVersion:    driver.FormatVersion(a.properties.APIVersion),
		DriverVersion: a.properties.DriverVersion,
		Memory:        a.memory.TotalSize(),
		QueueFamilies: len(a.queueFamilies),
	}
}

// containsAll matches names exactly, case included.
func containsAll(available, names []string) bool {
	for _, name := range names {
		if !slices.Contains(available, name) {
			return false
		}
	}
	return true
}
