// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vulkan

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// ErrDebugReportUnavailable is returned by NewDebugReporter when the
// instance was created without VK_EXT_debug_report.
var ErrDebugReportUnavailable = errors.New("vulkan: debug report extension is not available")

// ErrNotInitialised is returned when the loader was not set up with Init.
var ErrNotInitialised = errors.New("vulkan: loader is not initialised")

// newError names the failing call, e.g. "vk.CreateDevice(): vulkan error: ...".
// It returns nil when ret is a success code.
func newError(call string, ret vk.Result) error {
	if err := vk.Error(ret); err != nil {
		return errors.Wrap(err, call)
	}
	return nil
}
