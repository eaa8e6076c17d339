// Package stencil precomputes and applies the grid operators used by the
// field solver.
//
//   - [Engine.ApplyInverseLaplacian]: spectral inverse of the 5-point Laplacian
//   - [Engine.Gradient], [Engine.GradientAt]: periodic finite differences
//   - [Engine.Soften], [Engine.AddSoftenedPoint]: Gaussian softening of point
//     sources, by full Fourier convolution or by a local real-space window
//
// Spectral operators treat the grid as periodic. The engine holds no field
// values, only kernels sized to the geometry.
package stencil
