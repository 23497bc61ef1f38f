// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vulkan

import (
	vk "github.com/vulkan-go/vulkan"

	"github.com/devblok/koru/driver"
)

var featureFields = []struct {
	bit   driver.Features
	field func(*vk.PhysicalDeviceFeatures) *vk.Bool32
}{
	{driver.FeatureRobustBufferAccess, func(f *vk.PhysicalDeviceFeatures) *vk.Bool32 { return &f.RobustBufferAccess }},
	{driver.FeatureGeometryShader, func(f *vk.PhysicalDeviceFeatures) *vk.Bool32 { return &f.GeometryShader }},
	{driver.FeatureTessellationShader, func(f *vk.PhysicalDeviceFeatures) *vk.Bool32 { return &f.TessellationShader }},
	{driver.FeatureSampleRateShading, func(f *vk.PhysicalDeviceFeatures) *vk.Bool32 { return &f.SampleRateShading }},
	{driver.FeatureDualSrcBlend, func(f *vk.PhysicalDeviceFeatures) *vk.Bool32 { return &f.DualSrcBlend }},
	{driver.FeatureLogicOp, func(f *vk.PhysicalDeviceFeatures) *vk.Bool32 { return &f.LogicOp }},
	{driver.FeatureMultiDrawIndirect, func(f *vk.PhysicalDeviceFeatures) *vk.Bool32 { return &f.MultiDrawIndirect }},
	{driver.FeatureDepthClamp, func(f *vk.PhysicalDeviceFeatures) *vk.Bool32 { return &f.DepthClamp }},
	{driver.FeatureDepthBiasClamp, func(f *vk.PhysicalDeviceFeatures) *vk.Bool32 { return &f.DepthBiasClamp }},
	{driver.FeatureFillModeNonSolid, func(f *vk.PhysicalDeviceFeatures) *vk.Bool32 { return &f.FillModeNonSolid }},
	{driver.FeatureWideLines, func(f *vk.PhysicalDeviceFeatures) *vk.Bool32 { return &f.WideLines }},
	{driver.FeatureLargePoints, func(f *vk.PhysicalDeviceFeatures) *vk.Bool32 { return &f.LargePoints }},
	{driver.FeatureMultiViewport, func(f *vk.PhysicalDeviceFeatures) *vk.Bool32 { return &f.MultiViewport }},
	{driver.FeatureSamplerAnisotropy, func(f *vk.PhysicalDeviceFeatures) *vk.Bool32 { return &f.SamplerAnisotropy }},
	{driver.FeatureTextureCompressionETC2, func(f *vk.PhysicalDeviceFeatures) *vk.Bool32 { return &f.TextureCompressionETC2 }},
	{driver.FeatureTextureCompressionASTC, func(f *vk.PhysicalDeviceFeatures) *vk.Bool32 { return &f.TextureCompressionASTC_LDR }},
	{driver.FeatureTextureCompressionBC, func(f *vk.PhysicalDeviceFeatures) *vk.Bool32 { return &f.TextureCompressionBC }},
	{driver.FeatureShaderFloat64, func(f *vk.PhysicalDeviceFeatures) *vk.Bool32 { return &f.ShaderFloat64 }},
	{driver.FeatureShaderInt64, func(f *vk.PhysicalDeviceFeatures) *vk.Bool32 { return &f.ShaderInt64 }},
	{driver.FeatureShaderInt16, func(f *vk.PhysicalDeviceFeatures) *vk.Bool32 { return &f.ShaderInt16 }},
}

func fromFeatures(feats *vk.PhysicalDeviceFeatures) driver.Features {
	var f driver.Features
	for _, ff := range featureFields {
		if ff.field(feats).B() {
			f |= ff.bit
		}
	}
	return f
}

func toFeatures(f driver.Features) vk.PhysicalDeviceFeatures {
	var feats vk.PhysicalDeviceFeatures
	for _, ff := range featureFields {
		if f.Has(ff.bit) {
			*ff.field(&feats) = vk.True
		}
	}
	return feats
}

func fromExtent(e vk.Extent2D) driver.Extent2D {
	return driver.Extent2D{Width: e.Width, Height: e.Height}
}

func toExtent(e driver.Extent2D) vk.Extent2D {
	return vk.Extent2D{Width: e.Width, Height: e.Height}
}

func toBool32(b bool) vk.Bool32 {
	if b {
		return vk.True
	}
	return vk.False
}
