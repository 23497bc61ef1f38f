// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vulkan

import (
	"unsafe"

	log "github.com/sirupsen/logrus"
	vk "github.com/vulkan-go/vulkan"
)

// DebugReporter routes validation layer messages into a logger.
// Create it once after the instance and close it before Driver.Destroy.
type DebugReporter struct {
	instance vk.Instance
	callback vk.DebugReportCallback
	logger   log.FieldLogger
	active   bool
}

// NewDebugReporter installs a debug report callback on the instance of d.
// It returns ErrDebugReportUnavailable when d was created without the
// debug report extension.
func NewDebugReporter(d *Driver, logger log.FieldLogger) (*DebugReporter, error) {
	if !d.debug {
		return nil, ErrDebugReportUnavailable
	}
	r := &DebugReporter{instance: d.instance, logger: logger}
	info := vk.DebugReportCallbackCreateInfo{
		SType: vk.StructureTypeDebugReportCallbackCreateInfo,
		Flags: vk.DebugReportFlags(vk.DebugReportErrorBit | vk.DebugReportWarningBit |
			vk.DebugReportPerformanceWarningBit | vk.DebugReportInformationBit),
		PfnCallback: r.report,
	}
	ret := vk.CreateDebugReportCallback(d.instance, &info, nil, &r.callback)
	if ret == vk.ErrorExtensionNotPresent {
		return nil, ErrDebugReportUnavailable
	}
	if err := newError("vk.CreateDebugReportCallback()", ret); err != nil {
		return nil, err
	}
	r.active = true
	return r, nil
}

func (r *DebugReporter) report(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType,
	object uint64, location uint, messageCode int32, layerPrefix string, message string,
	userData unsafe.Pointer) vk.Bool32 {

	entry := r.logger.WithFields(log.Fields{
		"layer": layerPrefix,
		"code":  messageCode,
	})
	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		entry.Error(message)
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit|vk.DebugReportPerformanceWarningBit) != 0:
		entry.Warn(message)
	case flags&vk.DebugReportFlags(vk.DebugReportInformationBit) != 0:
		entry.Info(message)
	default:
		entry.Debug(message)
	}
	return vk.False
}

// Close removes the callback. Closing twice has no effect.
func (r *DebugReporter) Close() {
	if !r.active {
		return
	}
	vk.DestroyDebugReportCallback(r.instance, r.callback, nil)
	r.active = false
}
