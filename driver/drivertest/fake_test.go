// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package drivertest_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/koru/driver"
	"github.com/devblok/koru/driver/drivertest"
)

func TestFakeEnumeratesInOrder(t *testing.T) {
	c := qt.New(t)
	f := drivertest.New(drivertest.DiscreteGPU("a"), drivertest.DiscreteGPU("b"))

	handles, err := f.EnumerateAdapters(drivertest.Instance)
	c.Assert(err, qt.IsNil)
	c.Assert(handles, qt.DeepEquals, []driver.AdapterHandle{1, 2})
	c.Assert(f.AdapterProperties(handles[1]).Name, qt.Equals, "b")
	c.Assert(f.Methods(), qt.DeepEquals, []string{"EnumerateAdapters", "AdapterProperties"})
}

func TestFakeFailNth(t *testing.T) {
	c := qt.New(t)
	f := drivertest.New(drivertest.DiscreteGPU("a"))
	f.FailNth("AdapterExtensions", 2, nil)

	_, err := f.AdapterExtensions(1)
	c.Assert(err, qt.IsNil)
	_, err = f.AdapterExtensions(1)
	c.Assert(err, qt.Equals, drivertest.ErrInjected)
	_, err = f.AdapterExtensions(1)
	c.Assert(err, qt.IsNil)
	c.Assert(f.Count("AdapterExtensions"), qt.Equals, 3)
}

func TestFakeTracksLiveObjects(t *testing.T) {
	c := qt.New(t)
	f := drivertest.New(drivertest.DiscreteGPU("a"))

	dev, err := f.CreateDevice(1, &driver.DeviceCreateInfo{
		Queues: []driver.QueueCreateInfo{{FamilyIndex: 0, Priorities: []float32{1}}},
	})
	c.Assert(err, qt.IsNil)
	sc, err := f.CreateSwapchain(dev, &driver.SwapchainCreateInfo{Surface: drivertest.Surface, MinImageCount: 3})
	c.Assert(err, qt.IsNil)
	images, err := f.SwapchainImages(dev, sc)
	c.Assert(err, qt.IsNil)
	c.Assert(images, qt.HasLen, 3)
	c.Assert(f.Live(), qt.Equals, 2)

	f.DestroySwapchain(dev, sc)
	f.DestroyDevice(dev)
	c.Assert(f.Live(), qt.Equals, 0)
	c.Assert(func() { f.DestroyDevice(dev) }, qt.PanicMatches, `drivertest: device \d+ destroyed twice or never created`)
}

func TestFakeRejectsMissingFeatures(t *testing.T) {
	c := qt.New(t)
	f := drivertest.New(drivertest.DiscreteGPU("a"))

	_, err := f.CreateDevice(1, &driver.DeviceCreateInfo{Features: driver.FeatureShaderFloat64})
	c.Assert(err, qt.ErrorMatches, "drivertest: feature not present")
}
