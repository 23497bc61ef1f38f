// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/devblok/koru/core"
	"github.com/devblok/koru/driver"
	"github.com/devblok/koru/driver/drivertest"
)

func TestSelectionSkipsAdapterMissingExtension(t *testing.T) {
	c := qt.New(t)
	first := drivertest.DiscreteGPU("no swapchain")
	first.Extensions = nil
	f := drivertest.New(first, drivertest.DiscreteGPU("good"))

	list, err := core.NewAdapterList(f, drivertest.Instance)
	c.Assert(err, qt.IsNil)
	c.Assert(list.Len(), qt.Equals, 2)
	f.Reset()

	dev, err := list.SelectAndBuildDevice(core.DefaultConfiguration(), window)
	c.Assert(err, qt.IsNil)
	defer dev.Destroy()

	for _, call := range f.Calls {
		if call.Handle == uint64(drivertest.AdapterHandle(0)) {
			c.Check(call.Method, qt.Matches, "AdapterLayers|AdapterExtensions", qt.Commentf("%v", call))
		}
	}
	c.Assert(f.Calls[:2], qt.DeepEquals, []drivertest.Call{
		{Method: "AdapterLayers", Handle: 1},
		{Method: "AdapterExtensions", Handle: 1},
	})
	c.Assert(f.Count("CreateDevice"), qt.Equals, 1)
	for _, call := range f.Calls {
		if call.Method == "CreateDevice" {
			c.Assert(call.Handle, qt.Equals, uint64(drivertest.AdapterHandle(1)))
		}
	}
}

func TestSelectionFilterOrder(t *testing.T) {
	c := qt.New(t)
	cfg := core.DefaultConfiguration()

	noFeatures := drivertest.DiscreteGPU("no tessellation")
	noFeatures.Features = driver.FeatureGeometryShader
	noLayers := drivertest.DiscreteGPU("no layers")
	noLayers.Layers = nil
	noGraphics := drivertest.DiscreteGPU("no graphics")
	noGraphics.QueueFamilies = []driver.QueueFamily{{Flags: driver.QueueCompute, QueueCount: 1}}
	noPresent := drivertest.DiscreteGPU("no present")
	noPresent.Surface.Presenting = nil

	for _, tc := range []struct {
		adapter *drivertest.Adapter
		filter  string
		methods []string
	}{
		{noFeatures, core.FilterFeatures, []string{}},
		{noLayers, core.FilterLayers, []string{"AdapterLayers"}},
		{noGraphics, core.FilterGraphicsQueue, []string{"AdapterLayers", "AdapterExtensions"}},
		{noPresent, core.FilterSurface, []string{
			"AdapterLayers", "AdapterExtensions",
			"SurfaceCapabilities", "SurfaceFormats", "SurfacePresentModes", "SurfaceSupport", "SurfaceSupport",
		}},
	} {
		c.Run(tc.filter, func(c *qt.C) {
			logger, hook := test.NewNullLogger()
			logger.SetLevel(log.DebugLevel)
			restore := swapLogger(logger)
			defer restore()

			f := drivertest.New(tc.adapter)
			list, err := core.NewAdapterList(f, drivertest.Instance)
			c.Assert(err, qt.IsNil)
			f.Reset()

			_, _, err = list.SelectAdapter(cfg, window)
			c.Assert(err, qt.Equals, core.ErrNoSuitableAdapter)
			c.Assert(f.Methods(), qt.DeepEquals, tc.methods)

			entry := hook.LastEntry()
			c.Assert(entry, qt.Not(qt.IsNil))
			c.Assert(entry.Message, qt.Equals, "adapter rejected")
			c.Assert(entry.Data["filter"], qt.Equals, tc.filter)
			c.Assert(entry.Data["adapter"], qt.Equals, tc.adapter.Properties.Name)
		})
	}
}

func TestSelectionPicksFirstAcceptable(t *testing.T) {
	c := qt.New(t)
	f := drivertest.New(drivertest.DiscreteGPU("first"), drivertest.DiscreteGPU("second"))
	list, err := core.NewAdapterList(f, drivertest.Instance)
	c.Assert(err, qt.IsNil)

	caps, support, err := list.SelectAdapter(core.DefaultConfiguration(), window)
	c.Assert(err, qt.IsNil)
	c.Assert(caps.Properties().Name, qt.Equals, "first")
	c.Assert(support.Adapter(), qt.Equals, caps.Handle())
}

func TestSelectionPropagatesDriverErrors(t *testing.T) {
	c := qt.New(t)
	f := drivertest.New(drivertest.DiscreteGPU("gpu"))
	f.Fail("AdapterExtensions", errors.New("device lost"))
	list, err := core.NewAdapterList(f, drivertest.Instance)
	c.Assert(err, qt.IsNil)

	_, err = list.SelectAndBuildDevice(core.DefaultConfiguration(), window)
	c.Assert(err, qt.ErrorMatches, `.*device lost`)
	c.Assert(errors.Cause(err), qt.Not(qt.Equals), core.ErrNoSuitableAdapter)
}

func TestNewAdapterListEnumerationError(t *testing.T) {
	c := qt.New(t)
	f := drivertest.New(drivertest.DiscreteGPU("gpu"))
	f.Fail("EnumerateAdapters", nil)

	_, err := core.NewAdapterList(f, drivertest.Instance)
	c.Assert(err, qt.ErrorMatches, `core.NewAdapterList\(\): injected failure`)
}

func TestEmptyAdapterList(t *testing.T) {
	c := qt.New(t)
	list, err := core.NewAdapterList(drivertest.New(), drivertest.Instance)
	c.Assert(err, qt.IsNil)

	_, err = list.SelectAndBuildDevice(core.DefaultConfiguration(), window)
	c.Assert(err, qt.Equals, core.ErrNoSuitableAdapter)
	c.Assert(err, qt.ErrorMatches, "no suitable Vulkan device attached")
}

func TestAdapterListLog(t *testing.T) {
	c := qt.New(t)
	f := drivertest.New(drivertest.DiscreteGPU("one"), drivertest.DiscreteGPU("two"))
	list, err := core.NewAdapterList(f, drivertest.Instance)
	c.Assert(err, qt.IsNil)

	logger, hook := test.NewNullLogger()
	list.Log(logger)

	entries := hook.AllEntries()
	c.Assert(entries, qt.HasLen, 3)
	c.Assert(entries[0].Message, qt.Equals, "2 physical devices")
	c.Assert(entries[2].Message, qt.Equals, "two")
	c.Assert(entries[2].Data["type"], qt.Equals, "discrete")
	c.Assert(entries[2].Data["api"], qt.Equals, "1.3.250")

	c.Assert(list.Dump(), qt.HasLen, 2)
	c.Assert(list.Dump()[0].Name, qt.Equals, "one")
}

// swapLogger routes the standard logrus logger into logger until the
// returned function is called.
func swapLogger(logger *log.Logger) func() {
	std := log.StandardLogger()
	out, level, hooks := std.Out, std.Level, std.Hooks
	std.Out = logger.Out
	std.SetLevel(logger.Level)
	std.ReplaceHooks(logger.Hooks)
	return func() {
		std.Out = out
		std.SetLevel(level)
		std.ReplaceHooks(hooks)
	}
}
