package gfx

import (
	"testing"

	"github.com/forgelabs/enginecore/gfx/vk"
)

func TestValidateVertexAttributesExactMatch(t *testing.T) {
	refl := &ShaderReflection{
		Name: "basic",
		Vertex: []VertexAttribute{
			{Semantic: "POSITION", Format: vk.FormatR32G32B32A32Sfloat},
		},
	}
	cpu := []VertexAttribute{
		{Semantic: "POSITION", Format: vk.FormatR32G32B32A32Sfloat},
	}
	if err := validateVertexAttributes(cpu, refl); err != nil {
		t.Fatalf("validateVertexAttributes: %v", err)
	}
}

func TestValidateVertexAttributesMissingAttribute(t *testing.T) {
	refl := &ShaderReflection{Name: "basic", Vertex: []VertexAttribute{
		{Semantic: "POSITION", Format: vk.FormatR32G32B32A32Sfloat},
	}}
	cpu := []VertexAttribute{
		{Semantic: "NORMAL", Format: vk.FormatR32G32B32A32Sfloat},
	}
	if err := validateVertexAttributes(cpu, refl); err == nil {
		t.Fatal("expected an error for an attribute the shader does not declare")
	}
}

func TestValidateVertexAttributesFormatMismatch(t *testing.T) {
	refl := &ShaderReflection{Name: "basic", Vertex: []VertexAttribute{
		{Semantic: "POSITION", Format: vk.FormatR32G32B32A32Sfloat},
	}}
	cpu := []VertexAttribute{
		{Semantic: "POSITION", Format: vk.FormatD32Sfloat},
	}
	if err := validateVertexAttributes(cpu, refl); err == nil {
		t.Fatal("expected an error for a mismatched format")
	}
}

func TestValidateVertexAttributesColorException(t *testing.T) {
	refl := &ShaderReflection{Name: "basic", Vertex: []VertexAttribute{
		{Semantic: "COLOR", Format: vk.FormatR32G32B32A32Sfloat},
	}}
	cpu := []VertexAttribute{
		{Semantic: "COLOR", Format: vk.FormatR8G8B8A8Unorm},
	}
	if err := validateVertexAttributes(cpu, refl); err != nil {
		t.Fatalf("expected the COLOR unorm/float exception to be permitted, got: %v", err)
	}
}

func TestValidateVertexAttributesSemanticIndexDistinguishesSlots(t *testing.T) {
	refl := &ShaderReflection{Name: "basic", Vertex: []VertexAttribute{
		{Semantic: "TEXCOORD", SemanticIndex: 0, Format: vk.FormatD32Sfloat},
		{Semantic: "TEXCOORD", SemanticIndex: 1, Format: vk.FormatD32Sfloat},
	}}
	cpu := []VertexAttribute{
		{Semantic: "TEXCOORD", SemanticIndex: 1, Format: vk.FormatD32Sfloat},
	}
	if err := validateVertexAttributes(cpu, refl); err != nil {
		t.Fatalf("validateVertexAttributes: %v", err)
	}
}
