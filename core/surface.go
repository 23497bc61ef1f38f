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

// PreferredSurfaceFormat is picked by BestFormat whenever the surface offers it.
var PreferredSurfaceFormat = driver.SurfaceFormat{
	Format:     driver.FormatB8G8R8A8SRGB,
	ColorSpace: driver.ColorSpaceSRGBNonlinear,
}

// QueueFamilyChoice names the queue families used for graphics and
// presentation.
type QueueFamilyChoice struct {
	Graphics     uint32
	Presentation uint32
}

// Unified reports whether one family serves both roles.
func (q QueueFamilyChoice) Unified() bool {
	return q.Graphics == q.Presentation
}

// Distinct returns the ascending set of families in the choice.
func (q QueueFamilyChoice) Distinct() []uint32 {
	switch {
	case q.Unified():
		return []uint32{q.Graphics}
	case q.Graphics < q.Presentation:
		return []uint32{q.Graphics, q.Presentation}
	default:
		return []uint32{q.Presentation, q.Graphics}
	}
}

// SurfaceSupport is what one adapter can do with one surface. It is tied
// to that pair and must be rebuilt when either changes.
//
// Apart from IsAcceptable and the plain accessors, every method requires
// IsAcceptable to be true and panics otherwise.
type SurfaceSupport struct {
	adapter driver.AdapterHandle
	surface driver.SurfaceHandle

	capabilities driver.SurfaceCapabilities
	formats      []driver.SurfaceFormat
	modes        []driver.PresentMode
	graphics     []uint32
	presenting   []uint32
}

// NewSurfaceSupport queries capabilities, formats, present modes and the
// per family presentation support, in that order. It panics if the adapter
// has no graphics queue family or surface is null; callers filter those
// adapters out first.
func NewSurfaceSupport(drv driver.Driver, caps *AdapterCapabilities, surface driver.SurfaceHandle) (*SurfaceSupport, error) {
	graphics := caps.GraphicsQueueFamilyIndices()
	if len(graphics) == 0 {
		panic("core.NewSurfaceSupport(): adapter has no graphics queue family")
	}
	if surface.IsNull() {
		panic("core.NewSurfaceSupport(): null surface handle")
	}
	adapter := caps.Handle()

	capabilities, err := drv.SurfaceCapabilities(adapter, surface)
	if err != nil {
		return nil, errors.Wrap(err, "core.NewSurfaceSupport(): capabilities")
	}
	formats, err := drv.SurfaceFormats(adapter, surface)
	if err != nil {
		return nil, errors.Wrap(err, "core.NewSurfaceSupport(): formats")
	}
	modes, err := drv.SurfacePresentModes(adapter, surface)
	if err != nil {
		return nil, errors.Wrap(err, "core.NewSurfaceSupport(): present modes")
	}
	var presenting []uint32
	for i := 0; i < caps.QueueFamilyCount(); i++ {
		ok, err := drv.SurfaceSupport(adapter, uint32(i), surface)
		if err != nil {
			return nil, errors.Wrapf(err, "core.NewSurfaceSupport(): queue family %d", i)
		}
		if ok {
			presenting = append(presenting, uint32(i))
		}
	}

	return &SurfaceSupport{
		adapter:      adapter,
		surface:      surface,
		capabilities: capabilities,
		formats:      formats,
		modes:        modes,
		graphics:     graphics,
		presenting:   presenting,
	}, nil
}

// IsAcceptable reports whether formats, present modes, graphics families
// and presenting families are all non-empty.
func (s *SurfaceSupport) IsAcceptable() bool {
	return len(s.formats) > 0 && len(s.modes) > 0 && len(s.graphics) > 0 && len(s.presenting) > 0
}

func (s *SurfaceSupport) mustBeAcceptable(method string) {
	if !s.IsAcceptable() {
		panic("core.SurfaceSupport." + method + "(): surface support is not acceptable")
	}
}

// Adapter returns the adapter the support was queried for.
func (s *SurfaceSupport) Adapter() driver.AdapterHandle {
	return s.adapter
}

// Surface returns the surface the support was queried for.
func (s *SurfaceSupport) Surface() driver.SurfaceHandle {
	return s.surface
}

// Capabilities returns the surface limits.
func (s *SurfaceSupport) Capabilities() driver.SurfaceCapabilities {
	return s.capabilities
}

// Formats returns the supported formats in driver order.
func (s *SurfaceSupport) Formats() []driver.SurfaceFormat {
	return slices.Clone(s.formats)
}

// PresentModes returns the supported present modes in driver order.
func (s *SurfaceSupport) PresentModes() []driver.PresentMode {
	return slices.Clone(s.modes)
}

// PresentationQueueFamilyIndices returns the ascending indices of the
// queue families that can present on the surface.
func (s *SurfaceSupport) PresentationQueueFamilyIndices() []uint32 {
	return slices.Clone(s.presenting)
}

// CurrentTransform returns the transform the surface currently applies.
func (s *SurfaceSupport) CurrentTransform() driver.SurfaceTransform {
	s.mustBeAcceptable("CurrentTransform")
	return s.capabilities.CurrentTransform
}

// BestFormat returns PreferredSurfaceFormat when offered, else the first
// format the driver reported.
func (s *SurfaceSupport) BestFormat() driver.SurfaceFormat {
	s.mustBeAcceptable("BestFormat")
	for _, f := range s.formats {
		if f == PreferredSurfaceFormat {
			return f
		}
	}
	return s.formats[0]
}

// BestMode returns mailbox when offered, else FIFO. Every conforming
// driver offers FIFO; its absence panics.
func (s *SurfaceSupport) BestMode() driver.PresentMode {
	s.mustBeAcceptable("BestMode")
	if slices.Contains(s.modes, driver.PresentModeMailbox) {
		return driver.PresentModeMailbox
	}
	if !slices.Contains(s.modes, driver.PresentModeFifo) {
		panic("core.SurfaceSupport.BestMode(): driver does not offer FIFO presentation")
	}
	return driver.PresentModeFifo
}

// BestExtentFor clamps size into the surface's image extent range.
func (s *SurfaceSupport) BestExtentFor(size driver.Extent2D) driver.Extent2D {
	s.mustBeAcceptable("BestExtentFor")
	min, max := s.capabilities.MinImageExtent, s.capabilities.MaxImageExtent
	return driver.Extent2D{
		Width:  clamp(size.Width, min.Width, max.Width),
		Height: clamp(size.Height, min.Height, max.Height),
	}
}

// BestImageCount asks for one image more than the minimum, limited by the
// maximum unless the maximum is zero (unbounded).
func (s *SurfaceSupport) BestImageCount() uint32 {
	s.mustBeAcceptable("BestImageCount")
	count := s.capabilities.MinImageCount + 1
	if max := s.capabilities.MaxImageCount; max != 0 && count > max {
		count = max
	}
	return count
}

// QueueFamilyIndexes picks the lowest graphics family that can also
// present and uses it for both roles.
//
// When no graphics family can present, the lowest graphics family is
// still used for both roles, even though it cannot present on the
// surface. A distinct presenting family is not searched for.
func (s *SurfaceSupport) QueueFamilyIndexes() QueueFamilyChoice {
	s.mustBeAcceptable("QueueFamilyIndexes")
	for _, g := range s.graphics {
		if slices.Contains(s.presenting, g) {
			return QueueFamilyChoice{Graphics: g, Presentation: g}
		}
	}
	g := s.graphics[0]
	return QueueFamilyChoice{Graphics: g, Presentation: g}
}

func clamp(v, lo, hi uint32) uint32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
