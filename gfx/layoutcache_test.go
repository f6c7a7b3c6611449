package gfx

import (
	"testing"

	"github.com/forgelabs/enginecore/gfx/vk"
)

func TestHashDescriptorSetLayoutDeterministic(t *testing.T) {
	bindings := []DescriptorBinding{
		{Index: 0, Type: vk.DescriptorTypeUniformBuffer, Count: 1, Visibility: vk.ShaderStageVertex, Name: "ubo"},
		{Index: 1, Type: vk.DescriptorTypeCombinedImageSampler, Count: 1, Visibility: vk.ShaderStageFragment, Name: "tex"},
	}
	a := hashDescriptorSetLayout(bindings)
	b := hashDescriptorSetLayout(append([]DescriptorBinding(nil), bindings...))
	if a != b {
		t.Fatal("identical binding lists must hash identically")
	}
}

func TestHashDescriptorSetLayoutDistinguishesBindings(t *testing.T) {
	base := []DescriptorBinding{{Index: 0, Type: vk.DescriptorTypeUniformBuffer, Count: 1, Visibility: vk.ShaderStageVertex, Name: "ubo"}}
	changedIndex := []DescriptorBinding{{Index: 1, Type: vk.DescriptorTypeUniformBuffer, Count: 1, Visibility: vk.ShaderStageVertex, Name: "ubo"}}
	changedType := []DescriptorBinding{{Index: 0, Type: vk.DescriptorTypeStorageBuffer, Count: 1, Visibility: vk.ShaderStageVertex, Name: "ubo"}}
	changedName := []DescriptorBinding{{Index: 0, Type: vk.DescriptorTypeUniformBuffer, Count: 1, Visibility: vk.ShaderStageVertex, Name: "other"}}

	baseHash := hashDescriptorSetLayout(base)
	for _, variant := range [][]DescriptorBinding{changedIndex, changedType, changedName} {
		if hashDescriptorSetLayout(variant) == baseHash {
			t.Fatalf("variant %+v must not collide with base hash", variant)
		}
	}
}

func TestHashDescriptorSetLayoutOrderSensitive(t *testing.T) {
	a := []DescriptorBinding{
		{Index: 0, Type: vk.DescriptorTypeUniformBuffer, Count: 1, Visibility: vk.ShaderStageVertex, Name: "a"},
		{Index: 1, Type: vk.DescriptorTypeUniformBuffer, Count: 1, Visibility: vk.ShaderStageVertex, Name: "b"},
	}
	b := []DescriptorBinding{a[1], a[0]}
	if hashDescriptorSetLayout(a) == hashDescriptorSetLayout(b) {
		t.Fatal("binding order is part of the cache key; reordering must change the hash")
	}
}

func TestHashPipelineLayoutDistinguishesPushConstants(t *testing.T) {
	layouts := []vk.DescriptorSetLayout{1, 2}
	a := []PushConstantRange{{StageFlags: vk.ShaderStageVertex, Offset: 0, Size: 16}}
	b := []PushConstantRange{{StageFlags: vk.ShaderStageVertex, Offset: 0, Size: 32}}
	if hashPipelineLayout(layouts, a) == hashPipelineLayout(layouts, b) {
		t.Fatal("push constant size must be part of the pipeline layout cache key")
	}
}

func TestAnyCountAbove1(t *testing.T) {
	if anyCountAbove1([]DescriptorBinding{{Count: 1}, {Count: 1}}) {
		t.Fatal("expected false when every binding has count 1")
	}
	if !anyCountAbove1([]DescriptorBinding{{Count: 1}, {Count: 4}}) {
		t.Fatal("expected true when a binding has count > 1")
	}
}
