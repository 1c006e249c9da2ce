// Package shaders holds the GLSL sources of the Vulkan pipeline. The backend loads the compiled SPIR-V at
// runtime, run go generate with glslc on the PATH to produce it.
package shaders

//go:generate glslc -o polyhedra.vert.spv polyhedra.vert
//go:generate glslc -o polyhedra.frag.spv polyhedra.frag
