package gfx

import (
	"fmt"

	"github.com/forgelabs/enginecore/gfx/vk"
)

// ShaderStageRecord is one compiled shader stage inside a reflection
// blob: its kind, entry point name, and raw SPIR-V bytes.
type ShaderStageRecord struct {
	Stage     vk.ShaderStageFlags
	EntryName string
	SPIRV     []byte
}

// ShaderParameter is one reflected resource binding: a uniform/storage
// buffer, sampler, or push-constant block.
type ShaderParameter struct {
	Name            string
	Type            vk.DescriptorType
	BindingIndex    uint32
	IsPushConstant  bool
}

// VertexAttributeFormat mirrors the handful of VkFormat values vertex
// attributes can take.
type VertexAttributeFormat = vk.Format

// VertexAttribute is one reflected vertex input: a semantic name (e.g.
// "POSITION", "COLOR"), a semantic index for repeated semantics, its
// shader location, and expected format.
type VertexAttribute struct {
	Semantic      string
	SemanticIndex uint32
	Location      uint32
	Format        VertexAttributeFormat
}

// ShaderReflection is the opaque binary's decoded form: name, content
// hash, stages, parameters, and vertex attributes. No source compilation
// happens at runtime; this engine only consumes already-compiled SPIR-V
// plus its reflection data.
type ShaderReflection struct {
	Name       string
	Hash       uint64
	Stages     []ShaderStageRecord
	Parameters []ShaderParameter
	Vertex     []VertexAttribute
}

// colorAttributeException is the one permitted mismatch in vertex
// attribute validation: a CPU-side COLOR attribute may be
// R8G8B8A8_UNORM while the shader declares R32G32B32A32_SFLOAT.
func colorAttributeException(cpu, shader VertexAttribute) bool {
	return cpu.Semantic == "COLOR" &&
		cpu.Format == vk.FormatR8G8B8A8Unorm &&
		shader.Format == vk.FormatR32G32B32A32Sfloat
}

// validateVertexAttributes checks that every CPU-side attribute's
// semantic+index+format matches the shader's reflected vertex
// attributes exactly, except the one documented COLOR exception.
func validateVertexAttributes(cpuSide []VertexAttribute, refl *ShaderReflection) error {
	byKey := make(map[string]VertexAttribute, len(refl.Vertex))
	key := func(a VertexAttribute) string { return fmt.Sprintf("%s#%d", a.Semantic, a.SemanticIndex) }
	for _, a := range refl.Vertex {
		byKey[key(a)] = a
	}
	for _, cpu := range cpuSide {
		shaderAttr, ok := byKey[key(cpu)]
		if !ok {
			return fmt.Errorf("gfx: shader %q has no vertex attribute %s#%d", refl.Name, cpu.Semantic, cpu.SemanticIndex)
		}
		if cpu.Format != shaderAttr.Format && !colorAttributeException(cpu, shaderAttr) {
			return fmt.Errorf("gfx: shader %q attribute %s#%d format mismatch: cpu=%d shader=%d",
				refl.Name, cpu.Semantic, cpu.SemanticIndex, cpu.Format, shaderAttr.Format)
		}
	}
	return nil
}
