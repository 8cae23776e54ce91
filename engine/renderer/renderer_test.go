package renderer

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-scene/engine/renderable"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordingSinkCountsCalls(t *testing.T) {
	sink := NewRecordingSink()
	a := renderable.NewMesh(renderable.WithName("a"))
	b := renderable.NewMesh(renderable.WithName("b"))
	c := renderable.NewComputeMesh([3]uint32{4, 1, 1}, renderable.WithName("c"))

	sub := Submission{
		Token: 3,
		Batches: []Batch{
			{Technique: "lit", Renderables: []renderable.Renderable{a, b}},
			{Technique: "particles", Renderables: []renderable.Renderable{c}},
		},
	}
	stats, err := sink.Submit(sub)
	require.NoError(t, err)
	assert.Equal(t, SubmitStats{DrawCalls: 2, DispatchCalls: 1}, stats)
	assert.Equal(t, 3, sub.NumRenderables())

	// The sink keeps its own copy of the batches.
	sub.Batches[0].Renderables[0] = c

	last, ok := sink.Last()
	require.True(t, ok)
	assert.Equal(t, uint32(3), last.Token)
	assert.Same(t, a, last.Batches[0].Renderables[0])

	_, err = sink.Submit(Submission{Token: 4})
	require.NoError(t, err)
	assert.Len(t, sink.Submissions(), 2)
	assert.Equal(t, SubmitStats{DrawCalls: 2, DispatchCalls: 1}, sink.Totals())

	sink.Reset()
	_, ok = sink.Last()
	assert.False(t, ok)
	assert.Zero(t, sink.Totals())
}

func TestWGPUSinkRequiresPass(t *testing.T) {
	sink := NewWGPUSink(nil, nil)
	sink.RegisterRenderPipeline("lit", nil)
	sink.RegisterComputePipeline("particles", nil)
	require.True(t, sink.HasTechnique("lit"))

	draw := Submission{Batches: []Batch{{Technique: "lit", Renderables: []renderable.Renderable{renderable.NewMesh()}}}}
	_, err := sink.Submit(draw)
	assert.ErrorIs(t, err, ErrNoPass)

	dispatch := Submission{Batches: []Batch{{
		Technique:   "particles",
		Renderables: []renderable.Renderable{renderable.NewComputeMesh([3]uint32{1, 1, 1})},
	}}}
	_, err = sink.Submit(dispatch)
	assert.ErrorIs(t, err, ErrNoPass)
}

func TestWGPUSinkRejectsUnknownTechnique(t *testing.T) {
	sink := NewWGPUSink(nil, nil)
	sink.BeginFrame(&wgpu.RenderPassEncoder{}, nil)
	defer sink.EndFrame()

	_, err := sink.Submit(Submission{Batches: []Batch{{
		Technique:   "missing",
		Renderables: []renderable.Renderable{renderable.NewMesh()},
	}}})
	assert.ErrorIs(t, err, ErrUnknownTechnique)
	assert.False(t, sink.HasTechnique("missing"))
}

func TestWGPUSinkSkipsEmptyBatches(t *testing.T) {
	sink := NewWGPUSink(nil, nil, WithLabel("test"), WithInstanceCount(0))

	stats, err := sink.Submit(Submission{Batches: []Batch{{Technique: "missing"}}})
	require.NoError(t, err)
	assert.Zero(t, stats)
}

func TestWGPUSinkUploadWithoutDevice(t *testing.T) {
	sink := NewWGPUSink(nil, nil)
	m := renderable.NewCube(1)

	err := sink.UploadMesh(m)
	require.Error(t, err)
	assert.False(t, m.HWResourceReady())
	sink.Release()
}
