// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"github.com/devblok/koru/core"
	"github.com/devblok/koru/driver"
	"github.com/devblok/koru/driver/drivertest"
)

type surface struct {
	size driver.Extent2D
}

func (s surface) Size() driver.Extent2D { return s.size }

func (s surface) VulkanHandle() driver.SurfaceHandle { return drivertest.Surface }

var window = surface{size: driver.Extent2D{Width: 1024, Height: 768}}

// build returns the capabilities and surface support of the first
// scripted adapter, with the recorded calls cleared.
func build(f *drivertest.Fake) (*core.AdapterCapabilities, *core.SurfaceSupport) {
	caps := core.NewAdapterCapabilities(f, drivertest.AdapterHandle(0))
	support, err := core.NewSurfaceSupport(f, caps, drivertest.Surface)
	if err != nil {
		panic(err)
	}
	f.Reset()
	return caps, support
}
