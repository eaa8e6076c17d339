// Package analysis post-processes recorded runs.
//
//   - [PowerSpectrum] and [DominantFrequency]: spectrum of a probe series
//   - [UpCrossings] and [MeanPeriod]: period estimate from threshold crossings
//   - [ChargeTrajectory] and [PointsToASCII]: path of one charge over a run
//
// # Radiation from an oscillating charge
//
// A probe placed away from a charge that oscillates at angular frequency w
// picks up Bz at w/2pi once the first wavefront arrives:
//
//	f := analysis.DominantFrequency(probe.Series(), dt)
package analysis
