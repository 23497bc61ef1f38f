// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package driver

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownFeature is returned when a feature name is not recognised.
var ErrUnknownFeature = errors.New("unknown device feature")

// Features is a set of optional adapter features.
type Features uint64

// Feature bits, named after the VkPhysicalDeviceFeatures members.
const (
	FeatureRobustBufferAccess Features = 1 << iota
	FeatureGeometryShader
	FeatureTessellationShader
	FeatureSampleRateShading
	FeatureDualSrcBlend
	FeatureLogicOp
	FeatureMultiDrawIndirect
	FeatureDepthClamp
	FeatureDepthBiasClamp
	FeatureFillModeNonSolid
	FeatureWideLines
	FeatureLargePoints
	FeatureMultiViewport
	FeatureSamplerAnisotropy
	FeatureTextureCompressionETC2
	FeatureTextureCompressionASTC
	FeatureTextureCompressionBC
	FeatureShaderFloat64
	FeatureShaderInt64
	FeatureShaderInt16
)

var featureNames = []struct {
	bit  Features
	name string
}{
	{FeatureRobustBufferAccess, "robustBufferAccess"},
	{FeatureGeometryShader, "geometryShader"},
	{FeatureTessellationShader, "tessellationShader"},
	{FeatureSampleRateShading, "sampleRateShading"},
	{FeatureDualSrcBlend, "dualSrcBlend"},
	{FeatureLogicOp, "logicOp"},
	{FeatureMultiDrawIndirect, "multiDrawIndirect"},
	{FeatureDepthClamp, "depthClamp"},
	{FeatureDepthBiasClamp, "depthBiasClamp"},
	{FeatureFillModeNonSolid, "fillModeNonSolid"},
	{FeatureWideLines, "wideLines"},
	{FeatureLargePoints, "largePoints"},
	{FeatureMultiViewport, "multiViewport"},
	{FeatureSamplerAnisotropy, "samplerAnisotropy"},
	{FeatureTextureCompressionETC2, "textureCompressionETC2"},
	{FeatureTextureCompressionASTC, "textureCompressionASTC_LDR"},
	{FeatureTextureCompressionBC, "textureCompressionBC"},
	{FeatureShaderFloat64, "shaderFloat64"},
	{FeatureShaderInt64, "shaderInt64"},
	{FeatureShaderInt16, "shaderInt16"},
}

// Has reports whether f contains every feature in required.
func (f Features) Has(required Features) bool {
	return f&required == required
}

// Names lists the features in f in bit order.
func (f Features) Names() []string {
	var names []string
	for _, fn := range featureNames {
		if f&fn.bit != 0 {
			names = append(names, fn.name)
		}
	}
	return names
}

func (f Features) String() string {
	return strings.Join(f.Names(), ",")
}

// ParseFeatures parses a comma separated list of feature names.
// Names are matched case-sensitively; blanks between names are ignored.
func ParseFeatures(list string) (Features, error) {
	var f Features
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		bit, ok := lookupFeature(name)
		if !ok {
			return 0, errors.Wrapf(ErrUnknownFeature, "%q", name)
		}
		f |= bit
	}
	return f, nil
}

func lookupFeature(name string) (Features, bool) {
	for _, fn := range featureNames {
		if fn.name == name {
			return fn.bit, true
		}
	}
	return 0, false
}
