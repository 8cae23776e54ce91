package renderer

// WGPUSinkBuilderOption is a functional option for configuring a WGPUSink.
type WGPUSinkBuilderOption func(*wgpuSink)

// WithLabel sets the prefix used for GPU buffer labels.
//
// Parameters:
//   - label: the label prefix
//
// Returns:
//   - WGPUSinkBuilderOption: option function to apply
func WithLabel(label string) WGPUSinkBuilderOption {
	return func(s *wgpuSink) {
		s.label = label
	}
}

// WithInstanceCount sets the instance count passed to every draw. Defaults to 1.
//
// Parameters:
//   - n: the instance count (minimum 1)
//
// Returns:
//   - WGPUSinkBuilderOption: option function to apply
func WithInstanceCount(n uint32) WGPUSinkBuilderOption {
	return func(s *wgpuSink) {
		s.instanceCount = max(n, 1)
	}
}
