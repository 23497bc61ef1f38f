// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"math/rand"
	"reflect"
	"sort"
	"testing"
	"testing/quick"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/koru/driver"
)

var quickConfig = &quick.Config{MaxCount: 500}

// fixture is a synthetic set of driver query results.
type fixture struct {
	Formats    []driver.SurfaceFormat
	Modes      []driver.PresentMode
	Graphics   []uint32
	Presenting []uint32
	Caps       driver.SurfaceCapabilities
}

var fixtureFormats = []driver.Format{
	driver.FormatR8G8B8A8Unorm,
	driver.FormatR8G8B8A8SRGB,
	driver.FormatB8G8R8A8Unorm,
	driver.FormatB8G8R8A8SRGB,
	driver.FormatA2B10G10R10Unorm,
	driver.FormatR16G16B16A16Sfloat,
}

// Generate implements quick.Generator.
func (fixture) Generate(r *rand.Rand, size int) reflect.Value {
	f := fixture{
		Formats: make([]driver.SurfaceFormat, r.Intn(5)),
		Modes:   randomModes(r, r.Intn(2) == 0),
	}
	for i := range f.Formats {
		f.Formats[i] = driver.SurfaceFormat{
			Format:     fixtureFormats[r.Intn(len(fixtureFormats))],
			ColorSpace: driver.ColorSpace(r.Intn(2) * 1000104001),
		}
	}
	f.Graphics = randomSet(r, 8)
	f.Presenting = randomSet(r, 8)

	min := uint32(r.Intn(4))
	f.Caps.MinImageCount = min
	if r.Intn(3) > 0 {
		f.Caps.MaxImageCount = uint32(r.Intn(5))
	}
	f.Caps.MinImageExtent, f.Caps.MaxImageExtent = randomExtentRange(r)
	return reflect.ValueOf(f)
}

func (f fixture) support() *SurfaceSupport {
	return &SurfaceSupport{
		adapter:      1,
		surface:      2,
		capabilities: f.Caps,
		formats:      f.Formats,
		modes:        f.Modes,
		graphics:     f.Graphics,
		presenting:   f.Presenting,
	}
}

func randomSet(r *rand.Rand, n int) []uint32 {
	var set []uint32
	for i := 0; i < n; i++ {
		if r.Intn(3) == 0 {
			set = append(set, uint32(i))
		}
	}
	return set
}

func randomModes(r *rand.Rand, withFifo bool) []driver.PresentMode {
	all := []driver.PresentMode{
		driver.PresentModeImmediate,
		driver.PresentModeMailbox,
		driver.PresentModeFifoRelaxed,
	}
	var modes []driver.PresentMode
	for _, m := range all {
		if r.Intn(2) == 0 {
			modes = append(modes, m)
		}
	}
	if withFifo {
		modes = append(modes, driver.PresentModeFifo)
	}
	r.Shuffle(len(modes), func(i, j int) { modes[i], modes[j] = modes[j], modes[i] })
	return modes
}

func randomExtentRange(r *rand.Rand) (driver.Extent2D, driver.Extent2D) {
	w := []uint32{uint32(r.Intn(5000)), uint32(r.Intn(5000))}
	h := []uint32{uint32(r.Intn(5000)), uint32(r.Intn(5000))}
	sort.Slice(w, func(i, j int) bool { return w[i] < w[j] })
	sort.Slice(h, func(i, j int) bool { return h[i] < h[j] })
	return driver.Extent2D{Width: w[0], Height: h[0]}, driver.Extent2D{Width: w[1], Height: h[1]}
}

func TestIsAcceptableProperty(t *testing.T) {
	prop := func(f fixture) bool {
		want := len(f.Formats) > 0 && len(f.Modes) > 0 && len(f.Graphics) > 0 && len(f.Presenting) > 0
		return f.support().IsAcceptable() == want
	}
	if err := quick.Check(prop, quickConfig); err != nil {
		t.Error(err)
	}
}

func TestBestFormatProperty(t *testing.T) {
	prop := func(f fixture, at uint8, insert bool) bool {
		if len(f.Formats) == 0 {
			f.Formats = []driver.SurfaceFormat{{Format: driver.FormatR8G8B8A8Unorm}}
		}
		f.Graphics, f.Presenting, f.Modes = []uint32{0}, []uint32{0}, []driver.PresentMode{driver.PresentModeFifo}
		if insert {
			i := int(at) % (len(f.Formats) + 1)
			f.Formats = append(f.Formats[:i], append([]driver.SurfaceFormat{PreferredSurfaceFormat}, f.Formats[i:]...)...)
		}

		got := f.support().BestFormat()
		for _, sf := range f.Formats {
			if sf == PreferredSurfaceFormat {
				return got == PreferredSurfaceFormat
			}
		}
		return got == f.Formats[0]
	}
	if err := quick.Check(prop, quickConfig); err != nil {
		t.Error(err)
	}
}

func TestBestModeProperty(t *testing.T) {
	prop := func(seed int64) bool {
		r := rand.New(rand.NewSource(seed))
		f := fixture{
			Formats:    []driver.SurfaceFormat{PreferredSurfaceFormat},
			Modes:      randomModes(r, true),
			Graphics:   []uint32{0},
			Presenting: []uint32{0},
		}
		got := f.support().BestMode()
		for _, m := range f.Modes {
			if m == driver.PresentModeMailbox {
				return got == driver.PresentModeMailbox
			}
		}
		return got == driver.PresentModeFifo
	}
	if err := quick.Check(prop, quickConfig); err != nil {
		t.Error(err)
	}
}

func TestBestExtentForProperty(t *testing.T) {
	prop := func(f fixture, w, h uint16) bool {
		f.Formats = []driver.SurfaceFormat{PreferredSurfaceFormat}
		f.Modes = []driver.PresentMode{driver.PresentModeFifo}
		f.Graphics, f.Presenting = []uint32{0}, []uint32{0}

		got := f.support().BestExtentFor(driver.Extent2D{Width: uint32(w), Height: uint32(h)})
		min, max := f.Caps.MinImageExtent, f.Caps.MaxImageExtent
		return got.Width >= min.Width && got.Width <= max.Width &&
			got.Height >= min.Height && got.Height <= max.Height &&
			(uint32(w) < min.Width || uint32(w) > max.Width || got.Width == uint32(w)) &&
			(uint32(h) < min.Height || uint32(h) > max.Height || got.Height == uint32(h))
	}
	if err := quick.Check(prop, quickConfig); err != nil {
		t.Error(err)
	}
}

func TestBestImageCountProperty(t *testing.T) {
	prop := func(min, max uint8) bool {
		f := fixture{
			Formats:    []driver.SurfaceFormat{PreferredSurfaceFormat},
			Modes:      []driver.PresentMode{driver.PresentModeFifo},
			Graphics:   []uint32{0},
			Presenting: []uint32{0},
			Caps:       driver.SurfaceCapabilities{MinImageCount: uint32(min), MaxImageCount: uint32(max)},
		}
		got := f.support().BestImageCount()
		if max == 0 || uint32(min)+1 <= uint32(max) {
			return got == uint32(min)+1
		}
		return got == uint32(max)
	}
	if err := quick.Check(prop, quickConfig); err != nil {
		t.Error(err)
	}
}

func TestQueueFamilyIndexesProperty(t *testing.T) {
	prop := func(f fixture) bool {
		if len(f.Graphics) == 0 || len(f.Presenting) == 0 {
			return true
		}
		f.Formats = []driver.SurfaceFormat{PreferredSurfaceFormat}
		f.Modes = []driver.PresentMode{driver.PresentModeFifo}

		got := f.support().QueueFamilyIndexes()
		for _, g := range f.Graphics {
			for _, p := range f.Presenting {
				if g == p {
					return got == QueueFamilyChoice{Graphics: g, Presentation: g}
				}
			}
		}
		return got == QueueFamilyChoice{Graphics: f.Graphics[0], Presentation: f.Graphics[0]}
	}
	if err := quick.Check(prop, quickConfig); err != nil {
		t.Error(err)
	}
}

func TestBestImageCountExamples(t *testing.T) {
	c := qt.New(t)
	for _, tc := range []struct {
		min, max, want uint32
	}{
		{1, 0, 2},
		{2, 2, 2},
		{1, 3, 2},
		{3, 3, 3},
		{0, 0, 1},
	} {
		f := fixture{
			Formats:    []driver.SurfaceFormat{PreferredSurfaceFormat},
			Modes:      []driver.PresentMode{driver.PresentModeFifo},
			Graphics:   []uint32{0},
			Presenting: []uint32{0},
			Caps:       driver.SurfaceCapabilities{MinImageCount: tc.min, MaxImageCount: tc.max},
		}
		c.Check(f.support().BestImageCount(), qt.Equals, tc.want, qt.Commentf("min=%d max=%d", tc.min, tc.max))
	}
}

func TestQueueFamilyIndexesExamples(t *testing.T) {
	c := qt.New(t)
	for _, tc := range []struct {
		graphics, presenting []uint32
		want                 QueueFamilyChoice
	}{
		{[]uint32{0, 2}, []uint32{1, 2}, QueueFamilyChoice{2, 2}},
		{[]uint32{0, 1}, []uint32{3}, QueueFamilyChoice{0, 0}},
		{[]uint32{1}, []uint32{0, 1}, QueueFamilyChoice{1, 1}},
	} {
		f := fixture{
			Formats:    []driver.SurfaceFormat{PreferredSurfaceFormat},
			Modes:      []driver.PresentMode{driver.PresentModeFifo},
			Graphics:   tc.graphics,
			Presenting: tc.presenting,
		}
		c.Check(f.support().QueueFamilyIndexes(), qt.Equals, tc.want)
	}
}
