package motion

import "github.com/charmbracelet/harmonica"

// FollowerBuilderOption is a functional option for configuring a Follower.
type FollowerBuilderOption func(*follower)

// WithFrequency sets the spring's angular frequency. Higher values move faster.
//
// Parameters:
//   - frequency: the angular frequency
//
// Returns:
//   - FollowerBuilderOption: option function to apply
func WithFrequency(frequency float64) FollowerBuilderOption {
	return func(f *follower) {
		f.frequency = frequency
	}
}

// WithDamping sets the spring's damping ratio. 1 is critically damped, below 1 overshoots.
//
// Parameters:
//   - damping: the damping ratio
//
// Returns:
//   - FollowerBuilderOption: option function to apply
func WithDamping(damping float64) FollowerBuilderOption {
	return func(f *follower) {
		f.damping = damping
	}
}

// WithFPS sets the step used when the command is executed with a zero frame time.
//
// Parameters:
//   - fps: steps per second
//
// Returns:
//   - FollowerBuilderOption: option function to apply
func WithFPS(fps int) FollowerBuilderOption {
	return func(f *follower) {
		if fps > 0 {
			f.step = harmonica.FPS(fps)
		}
	}
}
