// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package driver_test

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/pkg/errors"

	"github.com/devblok/koru/driver"
)

func TestParseFeatures(t *testing.T) {
	c := qt.New(t)

	f, err := driver.ParseFeatures("tessellationShader, samplerAnisotropy,,")
	c.Assert(err, qt.IsNil)
	c.Assert(f, qt.Equals, driver.FeatureTessellationShader|driver.FeatureSamplerAnisotropy)
	c.Assert(f.Names(), qt.DeepEquals, []string{"tessellationShader", "samplerAnisotropy"})

	empty, err := driver.ParseFeatures("")
	c.Assert(err, qt.IsNil)
	c.Assert(empty, qt.Equals, driver.Features(0))
}

func TestParseFeaturesIsCaseSensitive(t *testing.T) {
	c := qt.New(t)

	_, err := driver.ParseFeatures("TessellationShader")
	c.Assert(errors.Cause(err), qt.Equals, driver.ErrUnknownFeature)
	c.Assert(err, qt.ErrorMatches, `"TessellationShader": unknown device feature`)
}

func TestFeaturesHas(t *testing.T) {
	c := qt.New(t)

	have := driver.FeatureTessellationShader | driver.FeatureGeometryShader
	c.Assert(have.Has(driver.FeatureTessellationShader), qt.IsTrue)
	c.Assert(have.Has(0), qt.IsTrue)
	c.Assert(have.Has(driver.FeatureTessellationShader|driver.FeatureWideLines), qt.IsFalse)
}

func TestFormatVersion(t *testing.T) {
	c := qt.New(t)

	c.Assert(driver.FormatVersion(driver.MakeVersion(1, 3, 250)), qt.Equals, "1.3.250")
	c.Assert(driver.FormatVersion(0), qt.Equals, "0.0.0")
}

func TestQueueFamilySupports(t *testing.T) {
	c := qt.New(t)

	q := driver.QueueFamily{Flags: driver.QueueGraphics | driver.QueueTransfer, QueueCount: 4}
	c.Assert(q.Supports(driver.QueueGraphics), qt.IsTrue)
	c.Assert(q.Supports(driver.QueueGraphics|driver.QueueCompute), qt.IsFalse)
}

func TestMemoryTotalSize(t *testing.T) {
	c := qt.New(t)

	m := driver.MemoryProperties{Heaps: []driver.MemoryHeap{
		{Size: 1 << 30, DeviceLocal: true},
		{Size: 1 << 28},
	}}
	c.Assert(m.TotalSize(), qt.Equals, uint64(1<<30+1<<28))
}

func TestNullHandles(t *testing.T) {
	c := qt.New(t)

	c.Assert(driver.DeviceHandle(0).IsNull(), qt.IsTrue)
	c.Assert(driver.SwapchainHandle(7).IsNull(), qt.IsFalse)
}
