// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/devblok/koru/driver"
)

// ErrNoSuitableAdapter is returned when no adapter passes selection.
var ErrNoSuitableAdapter = errors.New("no suitable Vulkan device attached")

// Selection filters, in the order they are applied.
const (
	FilterFeatures      = "features"
	FilterLayers        = "layers"
	FilterExtensions    = "extensions"
	FilterGraphicsQueue = "graphics queue"
	FilterSurface       = "surface support"
)

// AdapterList holds a capability snapshot of every adapter visible to an
// instance, in enumeration order.
type AdapterList struct {
	drv      driver.Driver
	adapters []*AdapterCapabilities
}

// NewAdapterList enumerates the adapters of instance.
func NewAdapterList(drv driver.Driver, instance driver.InstanceHandle) (*AdapterList, error) {
	handles, err := drv.EnumerateAdapters(instance)
	if err != nil {
		return nil, errors.Wrap(err, "core.NewAdapterList()")
	}
	l := &AdapterList{
		drv:      drv,
		adapters: make([]*AdapterCapabilities, 0, len(handles)),
	}
	for _, h := range handles {
		l.adapters = append(l.adapters, NewAdapterCapabilities(drv, h))
	}
	return l, nil
}

// Len returns the number of adapters.
func (l *AdapterList) Len() int {
	return len(l.adapters)
}

// Adapters returns the snapshots in enumeration order.
func (l *AdapterList) Adapters() []*AdapterCapabilities {
	return append([]*AdapterCapabilities(nil), l.adapters...)
}

// Dump returns the diagnostic record of every adapter.
func (l *AdapterList) Dump() []driver.AdapterInfo {
	infos := make([]driver.AdapterInfo, len(l.adapters))
	for i, a := range l.adapters {
		infos[i] = a.Info()
	}
	return infos
}

// Log writes the adapter dump to logger, one entry per adapter.
func (l *AdapterList) Log(logger log.FieldLogger) {
	logger.Infof("%d physical devices", len(l.adapters))
	for _, info := range l.Dump() {
		logger.WithFields(log.Fields{
			"id":   info.ID,
			"type": info.Type,
			"api":  info.APIVersion,
		}).Info(info.Name)
	}
}

// SelectAdapter returns the first adapter, in enumeration order, that
// exposes the required features, layers and device extensions, has a
// graphics queue family and acceptable support for surface.
func (l *AdapterList) SelectAdapter(cfg Configuration, surface PresentationSurface) (*AdapterCapabilities, *SurfaceSupport, error) {
	for _, a := range l.adapters {
		support, reason, err := l.check(a, cfg, surface)
		if err != nil {
			return nil, nil, err
		}
		if reason != "" {
			log.WithFields(log.Fields{
				"adapter": a.Properties().Name,
				"filter":  reason,
			}).Debug("adapter rejected")
			continue
		}
		return a, support, nil
	}
	return nil, nil, ErrNoSuitableAdapter
}

// check runs the filters on a. It returns the failed filter, or the
// surface support when every filter passed.
func (l *AdapterList) check(a *AdapterCapabilities, cfg Configuration, surface PresentationSurface) (*SurfaceSupport, string, error) {
	if !a.HasRequiredFeatures(cfg.RequiredFeatures) {
		return nil, FilterFeatures, nil
	}
	if ok, err := a.HasLayers(cfg.Layers); err != nil {
		return nil, "", err
	} else if !ok {
		return nil, FilterLayers, nil
	}
	if ok, err := a.HasExtensions(cfg.DeviceExtensions); err != nil {
		return nil, "", err
	} else if !ok {
		return nil, FilterExtensions, nil
	}
	if len(a.GraphicsQueueFamilyIndices()) == 0 {
		return nil, FilterGraphicsQueue, nil
	}
	support, err := NewSurfaceSupport(l.drv, a, surface.VulkanHandle())
	if err != nil {
		return nil, "", err
	}
	if !support.IsAcceptable() {
		return nil, FilterSurface, nil
	}
	return support, "", nil
}

// SelectAndBuildDevice selects an adapter like SelectAdapter and builds
// the device on it.
func (l *AdapterList) SelectAndBuildDevice(cfg Configuration, surface PresentationSurface) (*Device, error) {
	a, support, err := l.SelectAdapter(cfg, surface)
	if err != nil {
		return nil, err
	}
	log.WithField("adapter", a.Info().String()).Info("adapter selected")
	return NewDevice(l.drv, cfg, support, surface, a)
}
