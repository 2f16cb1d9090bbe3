//go:build !nogpu

// Package gpu renders tile work through WebGPU compute pipelines.
//
// The backend receives its device and queue from the host; it never
// creates them. Pipelines are compiled once at Init from the embedded
// WGSL source.
package gpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/types"
)

//go:embed shaders/tile_fill.wgsl
var tileFillWGSL string

// tileFillPipeline owns the compute pipelines for solid tile fills.
//
// Note: full GPU buffer binding requires HAL API extensions to expose
// buffer handles. The pipelines and layouts are created and verified;
// Submit mirrors the shader algorithm on the CPU until the binding
// path is available.
type tileFillPipeline struct {
	device hal.Device
	queue  hal.Queue

	shaderModule hal.ShaderModule

	fillPipeline  hal.ComputePipeline
	clearPipeline hal.ComputePipeline

	pipelineLayout   hal.PipelineLayout
	inputBindLayout  hal.BindGroupLayout
	outputBindLayout hal.BindGroupLayout

	// Compiled SPIR-V (cached for verification).
	spirvCode []uint32

	initialized bool
}

func newTileFillPipeline(device hal.Device, queue hal.Queue) (*tileFillPipeline, error) {
	if device == nil || queue == nil {
		return nil, ErrNoDevice
	}

	p := &tileFillPipeline{device: device, queue: queue}
	if err := p.init(); err != nil {
		p.destroy()
		return nil, err
	}
	return p, nil
}

// init compiles the shader and creates pipelines and layouts.
func (p *tileFillPipeline) init() error {
	// Compile WGSL to SPIR-V.
	spirvBytes, err := naga.Compile(tileFillWGSL)
	if err != nil {
		return fmt.Errorf("gpu: failed to compile tile shader: %w", err)
	}

	// Convert bytes to uint32 slice for SPIR-V.
	p.spirvCode = make([]uint32, len(spirvBytes)/4)
	for i := range p.spirvCode {
		p.spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	shaderModule, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: "tile_fill_shader",
		Source: hal.ShaderSource{
			SPIRV: p.spirvCode,
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: failed to create shader module: %w", err)
	}
	p.shaderModule = shaderModule

	if err := p.createBindGroupLayouts(); err != nil {
		return err
	}
	if err := p.createPipelineLayout(); err != nil {
		return err
	}
	if err := p.createPipelines(); err != nil {
		return err
	}

	p.initialized = true
	return nil
}

func (p *tileFillPipeline) createBindGroupLayouts() error {
	// Input bind group layout (group 0): config uniform + tile work.
	inputLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "tile_fill_input_layout",
		Entries: []types.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: types.ShaderStageCompute,
				Buffer: &types.BufferBindingLayout{
					Type:           types.BufferBindingTypeUniform,
					MinBindingSize: 32, // sizeof(Config)
				},
			},
			{
				Binding:    1,
				Visibility: types.ShaderStageCompute,
				Buffer: &types.BufferBindingLayout{
					Type: types.BufferBindingTypeReadOnlyStorage,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: failed to create input bind group layout: %w", err)
	}
	p.inputBindLayout = inputLayout

	// Output bind group layout (group 1): framebuffer storage.
	outputLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "tile_fill_output_layout",
		Entries: []types.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: types.ShaderStageCompute,
				Buffer: &types.BufferBindingLayout{
					Type: types.BufferBindingTypeStorage,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: failed to create output bind group layout: %w", err)
	}
	p.outputBindLayout = outputLayout

	return nil
}

func (p *tileFillPipeline) createPipelineLayout() error {
	layout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "tile_fill_pipeline_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.inputBindLayout, p.outputBindLayout},
	})
	if err != nil {
		return fmt.Errorf("gpu: failed to create pipeline layout: %w", err)
	}
	p.pipelineLayout = layout
	return nil
}

func (p *tileFillPipeline) createPipelines() error {
	fill, err := p.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:  "tile_fill_pipeline",
		Layout: p.pipelineLayout,
		Compute: hal.ComputeState{
			Module:     p.shaderModule,
			EntryPoint: "cs_fill_solid",
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: failed to create fill pipeline: %w", err)
	}
	p.fillPipeline = fill

	clearPipe, err := p.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:  "tile_clear_pipeline",
		Layout: p.pipelineLayout,
		Compute: hal.ComputeState{
			Module:     p.shaderModule,
			EntryPoint: "cs_clear",
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: failed to create clear pipeline: %w", err)
	}
	p.clearPipeline = clearPipe

	return nil
}

// destroy releases all GPU resources.
func (p *tileFillPipeline) destroy() {
	if p.device == nil {
		return
	}

	if p.fillPipeline != nil {
		p.device.DestroyComputePipeline(p.fillPipeline)
		p.fillPipeline = nil
	}
	if p.clearPipeline != nil {
		p.device.DestroyComputePipeline(p.clearPipeline)
		p.clearPipeline = nil
	}
	if p.pipelineLayout != nil {
		p.device.DestroyPipelineLayout(p.pipelineLayout)
		p.pipelineLayout = nil
	}
	if p.inputBindLayout != nil {
		p.device.DestroyBindGroupLayout(p.inputBindLayout)
		p.inputBindLayout = nil
	}
	if p.outputBindLayout != nil {
		p.device.DestroyBindGroupLayout(p.outputBindLayout)
		p.outputBindLayout = nil
	}
	if p.shaderModule != nil {
		p.device.DestroyShaderModule(p.shaderModule)
		p.shaderModule = nil
	}

	p.initialized = false
}
