// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package drivertest provides a scriptable driver.Driver that records
// every call it receives, so tests can assert native call order.
package drivertest

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/devblok/koru/driver"
)

// Instance is the instance handle the fake enumerates adapters for.
const Instance driver.InstanceHandle = 1

// Surface is the surface handle every scripted adapter answers for.
const Surface driver.SurfaceHandle = 2

// ErrInjected is the default error returned by a failing call.
var ErrInjected = errors.New("injected failure")

// SurfaceFixture is what an adapter reports for Surface.
type SurfaceFixture struct {
	Capabilities driver.SurfaceCapabilities
	Formats      []driver.SurfaceFormat
	PresentModes []driver.PresentMode

	// Presenting lists the queue families that can present on Surface.
	Presenting []uint32
}

// Adapter scripts one physical adapter.
type Adapter struct {
	Properties    driver.AdapterProperties
	Features      driver.Features
	Memory        driver.MemoryProperties
	QueueFamilies []driver.QueueFamily
	Layers        []string
	Extensions    []string
	Surface       SurfaceFixture

	// SwapchainImages is the number of images a swapchain created on this
	// adapter owns. Zero means the requested minimum image count.
	SwapchainImages int
}

// Call is one recorded driver call. Handle is the object the call acts
// on: the adapter for queries, the parent device for creation and the
// destroyed object for destruction.
type Call struct {
	Method string
	Handle uint64
}

func (c Call) String() string {
	return fmt.Sprintf("%s(%d)", c.Method, c.Handle)
}

type failure struct {
	nth int
	err error
}

// Fake is a driver.Driver over scripted adapters.
type Fake struct {
	Adapters []*Adapter

	// Calls is every call received, in order.
	Calls []Call

	// DeviceInfos, SwapchainInfos and ImageViewInfos keep copies of the
	// create infos passed in, in order.
	DeviceInfos    []driver.DeviceCreateInfo
	SwapchainInfos []driver.SwapchainCreateInfo
	ImageViewInfos []driver.ImageViewCreateInfo

	next     uint64
	counts   map[string]int
	failures map[string]failure

	devices    map[driver.DeviceHandle]int
	swapchains map[driver.SwapchainHandle][]driver.ImageHandle
	views      map[driver.ImageViewHandle]struct{}
	queues     map[driver.QueueHandle]struct{}
}

// New returns a fake exposing adapters in the given order.
func New(adapters ...*Adapter) *Fake {
	return &Fake{
		Adapters:   adapters,
		next:       1000,
		counts:     make(map[string]int),
		failures:   make(map[string]failure),
		devices:    make(map[driver.DeviceHandle]int),
		swapchains: make(map[driver.SwapchainHandle][]driver.ImageHandle),
		views:      make(map[driver.ImageViewHandle]struct{}),
		queues:     make(map[driver.QueueHandle]struct{}),
	}
}

// AdapterHandle returns the handle of the i-th scripted adapter.
func AdapterHandle(i int) driver.AdapterHandle {
	return driver.AdapterHandle(i + 1)
}

// Fail makes every call to method return err.
func (f *Fake) Fail(method string, err error) {
	f.failures[method] = failure{err: err}
}

// FailNth makes only the n-th call (counting from 1) to method return err.
func (f *Fake) FailNth(method string, n int, err error) {
	f.failures[method] = failure{nth: n, err: err}
}

// Methods returns the recorded method names in call order.
func (f *Fake) Methods() []string {
	names := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		names[i] = c.Method
	}
	return names
}

// Count returns how many times method was called.
func (f *Fake) Count(method string) int {
	return f.counts[method]
}

// Reset forgets recorded calls and create infos. Live objects are kept.
func (f *Fake) Reset() {
	f.Calls = nil
	f.DeviceInfos = nil
	f.SwapchainInfos = nil
	f.ImageViewInfos = nil
	f.counts = make(map[string]int)
}

// Live returns the number of devices, swapchains and image views created
// and not yet destroyed.
func (f *Fake) Live() int {
	return len(f.devices) + len(f.swapchains) + len(f.views)
}

func (f *Fake) record(method string, handle uint64) error {
	f.Calls = append(f.Calls, Call{Method: method, Handle: handle})
	f.counts[method]++
	fl, ok := f.failures[method]
	if !ok {
		return nil
	}
	if fl.nth != 0 && fl.nth != f.counts[method] {
		return nil
	}
	if fl.err == nil {
		return ErrInjected
	}
	return fl.err
}

func (f *Fake) handle() uint64 {
	f.next++
	return f.next
}

func (f *Fake) adapter(h driver.AdapterHandle) *Adapter {
	i := int(h) - 1
	if i < 0 || i >= len(f.Adapters) {
		panic(fmt.Sprintf("drivertest: unknown adapter %d", h))
	}
	return f.Adapters[i]
}

func (f *Fake) device(h driver.DeviceHandle) *Adapter {
	i, ok := f.devices[h]
	if !ok {
		panic(fmt.Sprintf("drivertest: unknown device %d", h))
	}
	return f.Adapters[i]
}

func (f *Fake) surface(a *Adapter, s driver.SurfaceHandle) SurfaceFixture {
	if s != Surface {
		panic(fmt.Sprintf("drivertest: unknown surface %d", s))
	}
	return a.Surface
}

// EnumerateAdapters implements driver.Driver.
func (f *Fake) EnumerateAdapters(instance driver.InstanceHandle) ([]driver.AdapterHandle, error) {
	if err := f.record("EnumerateAdapters", uint64(instance)); err != nil {
		return nil, err
	}
	if instance != Instance {
		return nil, errors.Errorf("drivertest: unknown instance %d", instance)
	}
	handles := make([]driver.AdapterHandle, len(f.Adapters))
	for i := range f.Adapters {
		handles[i] = AdapterHandle(i)
	}
	return handles, nil
}

// AdapterProperties implements driver.Driver.
func (f *Fake) AdapterProperties(adapter driver.AdapterHandle) driver.AdapterProperties {
	f.record("AdapterProperties", uint64(adapter))
	return f.adapter(adapter).Properties
}

// AdapterFeatures implements driver.Driver.
func (f *Fake) AdapterFeatures(adapter driver.AdapterHandle) driver.Features {
	f.record("AdapterFeatures", uint64(adapter))
	return f.adapter(adapter).Features
}

// AdapterMemory implements driver.Driver.
func (f *Fake) AdapterMemory(adapter driver.AdapterHandle) driver.MemoryProperties {
	f.record("AdapterMemory", uint64(adapter))
	return f.adapter(adapter).Memory
}

// AdapterQueueFamilies implements driver.Driver.
func (f *Fake) AdapterQueueFamilies(adapter driver.AdapterHandle) []driver.QueueFamily {
	f.record("AdapterQueueFamilies", uint64(adapter))
	return append([]driver.QueueFamily(nil), f.adapter(adapter).QueueFamilies...)
}

// AdapterLayers implements driver.Driver.
func (f *Fake) AdapterLayers(adapter driver.AdapterHandle) ([]driver.LayerProperties, error) {
	if err := f.record("AdapterLayers", uint64(adapter)); err != nil {
		return nil, err
	}
	a := f.adapter(adapter)
	layers := make([]driver.LayerProperties, len(a.Layers))
	for i, name := range a.Layers {
		layers[i] = driver.LayerProperties{Name: name, SpecVersion: driver.MakeVersion(1, 0, 0)}
	}
	return layers, nil
}

// AdapterExtensions implements driver.Driver.
func (f *Fake) AdapterExtensions(adapter driver.AdapterHandle) ([]driver.ExtensionProperties, error) {
	if err := f.record("AdapterExtensions", uint64(adapter)); err != nil {
		return nil, err
	}
	a := f.adapter(adapter)
	exts := make([]driver.ExtensionProperties, len(a.Extensions))
	for i, name := range a.Extensions {
		exts[i] = driver.ExtensionProperties{Name: name, SpecVersion: 1}
	}
	return exts, nil
}

// SurfaceCapabilities implements driver.Driver.
func (f *Fake) SurfaceCapabilities(adapter driver.AdapterHandle, surface driver.SurfaceHandle) (driver.SurfaceCapabilities, error) {
	if err := f.record("SurfaceCapabilities", uint64(adapter)); err != nil {
		return driver.SurfaceCapabilities{}, err
	}
	return f.surface(f.adapter(adapter), surface).Capabilities, nil
}

// SurfaceFormats implements driver.Driver.
func (f *Fake) SurfaceFormats(adapter driver.AdapterHandle, surface driver.SurfaceHandle) ([]driver.SurfaceFormat, error) {
	if err := f.record("SurfaceFormats", uint64(adapter)); err != nil {
		return nil, err
	}
	return append([]driver.SurfaceFormat(nil), f.surface(f.adapter(adapter), surface).Formats...), nil
}

// SurfacePresentModes implements driver.Driver.
func (f *Fake) SurfacePresentModes(adapter driver.AdapterHandle, surface driver.SurfaceHandle) ([]driver.PresentMode, error) {
	if err := f.record("SurfacePresentModes", uint64(adapter)); err != nil {
		return nil, err
	}
	return append([]driver.PresentMode(nil), f.surface(f.adapter(adapter), surface).PresentModes...), nil
}

// SurfaceSupport implements driver.Driver.
func (f *Fake) SurfaceSupport(adapter driver.AdapterHandle, family uint32, surface driver.SurfaceHandle) (bool, error) {
	if err := f.record("SurfaceSupport", uint64(adapter)); err != nil {
		return false, err
	}
	a := f.adapter(adapter)
	if int(family) >= len(a.QueueFamilies) {
		panic(fmt.Sprintf("drivertest: queue family %d out of range", family))
	}
	for _, p := range f.surface(a, surface).Presenting {
		if p == family {
			return true, nil
		}
	}
	return false, nil
}

// CreateDevice implements driver.Driver.
func (f *Fake) CreateDevice(adapter driver.AdapterHandle, info *driver.DeviceCreateInfo) (driver.DeviceHandle, error) {
	if err := f.record("CreateDevice", uint64(adapter)); err != nil {
		return 0, err
	}
	a := f.adapter(adapter)
	for _, q := range info.Queues {
		if int(q.FamilyIndex) >= len(a.QueueFamilies) {
			return 0, errors.Errorf("drivertest: queue family %d out of range", q.FamilyIndex)
		}
	}
	if !a.Features.Has(info.Features) {
		return 0, errors.New("drivertest: feature not present")
	}
	f.DeviceInfos = append(f.DeviceInfos, copyDeviceInfo(info))
	h := driver.DeviceHandle(f.handle())
	f.devices[h] = int(adapter) - 1
	return h, nil
}

// DeviceQueue implements driver.Driver.
func (f *Fake) DeviceQueue(device driver.DeviceHandle, family, index uint32) driver.QueueHandle {
	f.record("DeviceQueue", uint64(device))
	f.device(device)
	// The same (family, index) pair always yields the same queue.
	h := driver.QueueHandle(uint64(device)<<16 | uint64(family)<<8 | uint64(index))
	f.queues[h] = struct{}{}
	return h
}

// CreateSwapchain implements driver.Driver.
func (f *Fake) CreateSwapchain(device driver.DeviceHandle, info *driver.SwapchainCreateInfo) (driver.SwapchainHandle, error) {
	if err := f.record("CreateSwapchain", uint64(device)); err != nil {
		return 0, err
	}
	a := f.device(device)
	si := *info
	si.QueueFamilyIndices = append([]uint32(nil), info.QueueFamilyIndices...)
	f.SwapchainInfos = append(f.SwapchainInfos, si)

	n := a.SwapchainImages
	if n == 0 {
		n = int(info.MinImageCount)
	}
	images := make([]driver.ImageHandle, n)
	for i := range images {
		images[i] = driver.ImageHandle(f.handle())
	}
	h := driver.SwapchainHandle(f.handle())
	f.swapchains[h] = images
	return h, nil
}

// SwapchainImages implements driver.Driver.
func (f *Fake) SwapchainImages(device driver.DeviceHandle, swapchain driver.SwapchainHandle) ([]driver.ImageHandle, error) {
	if err := f.record("SwapchainImages", uint64(device)); err != nil {
		return nil, err
	}
	images, ok := f.swapchains[swapchain]
	if !ok {
		return nil, errors.Errorf("drivertest: unknown swapchain %d", swapchain)
	}
	return append([]driver.ImageHandle(nil), images...), nil
}

// CreateImageView implements driver.Driver.
func (f *Fake) CreateImageView(device driver.DeviceHandle, info *driver.ImageViewCreateInfo) (driver.ImageViewHandle, error) {
	if err := f.record("CreateImageView", uint64(device)); err != nil {
		return 0, err
	}
	f.device(device)
	f.ImageViewInfos = append(f.ImageViewInfos, *info)
	h := driver.ImageViewHandle(f.handle())
	f.views[h] = struct{}{}
	return h, nil
}

// DestroyImageView implements driver.Driver.
func (f *Fake) DestroyImageView(device driver.DeviceHandle, view driver.ImageViewHandle) {
	f.record("DestroyImageView", uint64(view))
	if _, ok := f.views[view]; !ok {
		panic(fmt.Sprintf("drivertest: image view %d destroyed twice or never created", view))
	}
	delete(f.views, view)
}

// DestroySwapchain implements driver.Driver.
func (f *Fake) DestroySwapchain(device driver.DeviceHandle, swapchain driver.SwapchainHandle) {
	f.record("DestroySwapchain", uint64(swapchain))
	if _, ok := f.swapchains[swapchain]; !ok {
		panic(fmt.Sprintf("drivertest: swapchain %d destroyed twice or never created", swapchain))
	}
	delete(f.swapchains, swapchain)
}

// DeviceWaitIdle implements driver.Driver.
func (f *Fake) DeviceWaitIdle(device driver.DeviceHandle) error {
	if err := f.record("DeviceWaitIdle", uint64(device)); err != nil {
		return err
	}
	f.device(device)
	return nil
}

// DestroyDevice implements driver.Driver.
func (f *Fake) DestroyDevice(device driver.DeviceHandle) {
	f.record("DestroyDevice", uint64(device))
	if _, ok := f.devices[device]; !ok {
		panic(fmt.Sprintf("drivertest: device %d destroyed twice or never created", device))
	}
	delete(f.devices, device)
}

func copyDeviceInfo(info *driver.DeviceCreateInfo) driver.DeviceCreateInfo {
	c := driver.DeviceCreateInfo{
		Layers:     append([]string(nil), info.Layers...),
		Extensions: append([]string(nil), info.Extensions...),
		Features:   info.Features,
	}
	for _, q := range info.Queues {
		c.Queues = append(c.Queues, driver.QueueCreateInfo{
			FamilyIndex: q.FamilyIndex,
			Priorities:  append([]float32(nil), q.Priorities...),
		})
	}
	return c
}

var _ driver.Driver = (*Fake)(nil)
