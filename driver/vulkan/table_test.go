// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vulkan

import (
	"testing"

	qt "github.com/frankban/quicktest"
	vk "github.com/vulkan-go/vulkan"

	"github.com/devblok/koru/driver"
)

func TestTableReusesIds(t *testing.T) {
	c := qt.New(t)
	tab := newTable[string]("thing")

	a := tab.put("a")
	b := tab.put("b")
	c.Assert(a, qt.Equals, uint64(1))
	c.Assert(b, qt.Equals, uint64(2))
	c.Assert(tab.put("a"), qt.Equals, a)
	c.Assert(tab.get(b), qt.Equals, "b")

	c.Assert(tab.drop(a), qt.Equals, "a")
	c.Assert(tab.len(), qt.Equals, 1)
	c.Assert(func() { tab.get(a) }, qt.PanicMatches, "vulkan: unknown thing handle 1")
	c.Assert(tab.put("a"), qt.Equals, uint64(3))
}

func TestSafeStrings(t *testing.T) {
	c := qt.New(t)

	c.Assert(safeStrings([]string{"VK_KHR_swapchain", "VK_LAYER_KHRONOS_validation\x00"}), qt.DeepEquals,
		[]string{"VK_KHR_swapchain\x00", "VK_LAYER_KHRONOS_validation\x00"})
	c.Assert(appendMissing([]string{"a", "b"}, "b", "c"), qt.DeepEquals, []string{"a", "b", "c"})
}

func TestFeatureConversion(t *testing.T) {
	c := qt.New(t)

	want := driver.FeatureTessellationShader | driver.FeatureTextureCompressionASTC | driver.FeatureShaderInt16
	feats := toFeatures(want)
	c.Assert(feats.TessellationShader, qt.Equals, vk.Bool32(vk.True))
	c.Assert(feats.GeometryShader, qt.Equals, vk.Bool32(vk.False))
	c.Assert(fromFeatures(&feats), qt.Equals, want)
}

func TestNotInitialised(t *testing.T) {
	c := qt.New(t)
	if initialised {
		c.Skip("loader already initialised")
	}

	_, err := New(InstanceConfig{})
	c.Assert(err, qt.Equals, ErrNotInitialised)
	_, err = InstanceLayers()
	c.Assert(err, qt.Equals, ErrNotInitialised)
}
