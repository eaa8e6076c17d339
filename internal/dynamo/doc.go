// Package dynamo provides the core value types shared by the field solver,
// the contour tracer and the session driver.
//
// The package defines:
//
//   - [Charge]: a point source in physical coordinates
//   - [Vec2]: a 2-D point or vector
//   - [Polyline]: an ordered list of points (a traced contour or field line)
//   - [Diagnostics]: the single sink through which numeric code reports
//     degraded results instead of failing
//
// # Example
//
//	cfg, _ := field.New(600, 400, 64, 64, field.WithDiagnostics(diag.NewLogger(os.Stderr)))
//	cfg.SetCharges([]dynamo.Charge{{X: 200, Y: 200, Strength: 1}})
//	cfg.Tick(0.1)
//
// # Thread Safety
//
// None of the solver types are safe for concurrent use. A configuration is
// the sole reader and mutator of its grids.
package dynamo
