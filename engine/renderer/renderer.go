package renderer

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-scene/engine/camera"
	"github.com/Carmen-Shannon/oxy-scene/engine/renderable"
)

var (
	// ErrNoPass is returned when a submission arrives while no render pass is open.
	ErrNoPass = errors.New("renderer: no active pass")

	// ErrUnknownTechnique is returned when a batch names a technique with no registered pipeline.
	ErrUnknownTechnique = errors.New("renderer: unknown technique")
)

// Batch is a run of drawables sharing one technique. Drawables are submitted in slice order.
type Batch struct {
	Technique   string
	Renderables []renderable.Renderable
}

// Submission is everything one camera produced in one flush. Batches are ordered by the
// first time their technique was encountered during the frame.
type Submission struct {
	// Token is the update-request token of the frame that produced the submission.
	Token uint32

	// Camera is the camera the batches were culled against.
	Camera camera.Camera

	Batches []Batch
}

// NumRenderables returns the total number of drawables across all batches.
func (s Submission) NumRenderables() int {
	n := 0
	for _, b := range s.Batches {
		n += len(b.Renderables)
	}
	return n
}

// SubmitStats reports what a sink issued for one submission.
type SubmitStats struct {
	DrawCalls     uint32
	DispatchCalls uint32
}

// Add returns the element-wise sum of s and o.
func (s SubmitStats) Add(o SubmitStats) SubmitStats {
	return SubmitStats{
		DrawCalls:     s.DrawCalls + o.DrawCalls,
		DispatchCalls: s.DispatchCalls + o.DispatchCalls,
	}
}

// Sink consumes technique-ordered batches and issues the corresponding GPU work.
//
// The scene manager calls Submit once per camera per frame from the goroutine that
// drives SceneManager.Update. Implementations need not be safe for concurrent Submit calls.
type Sink interface {
	// Submit issues the draw and dispatch calls for every batch in order.
	// No work is issued when an error is returned.
	//
	// Parameters:
	//   - sub: the submission to issue
	//
	// Returns:
	//   - SubmitStats: the number of draw and dispatch calls issued
	//   - error: ErrNoPass or ErrUnknownTechnique (possibly wrapped) when the submission cannot be issued
	Submit(sub Submission) (SubmitStats, error)
}

// countCalls returns the stats a sink issuing one call per drawable would report.
// Compute drawables count as dispatches, everything else as draws.
func countCalls(batches []Batch) SubmitStats {
	var stats SubmitStats
	for _, b := range batches {
		for _, r := range b.Renderables {
			if _, ok := r.(renderable.ComputeRenderable); ok {
				stats.DispatchCalls++
			} else {
				stats.DrawCalls++
			}
		}
	}
	return stats
}
