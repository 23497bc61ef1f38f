// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vulkan

import (
	"strings"

	vk "github.com/vulkan-go/vulkan"
	"golang.org/x/exp/slices"
)

// safeString null-terminates s for the C side, unless it already is.
func safeString(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}

func safeStrings(list []string) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = safeString(s)
	}
	return out
}

func layerNames(list []vk.LayerProperties) []string {
	names := make([]string, 0, len(list))
	for _, l := range list {
		l.Deref()
		names = append(names, vk.ToString(l.LayerName[:]))
	}
	return names
}

func extensionNames(list []vk.ExtensionProperties) []string {
	names := make([]string, 0, len(list))
	for _, e := range list {
		e.Deref()
		names = append(names, vk.ToString(e.ExtensionName[:]))
	}
	return names
}

// appendMissing appends the names from extra that are not yet in list.
func appendMissing(list []string, extra ...string) []string {
	for _, name := range extra {
		if !slices.Contains(list, name) {
			list = append(list, name)
		}
	}
	return list
}
