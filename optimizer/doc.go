// Package optimizer fits distribution parameters by inverse modelling.
//
// [MatchFluxParameters] searches the parameter space of a distribution
// [Family] so that the flux through a target shape matches the flux of a
// reference shape/distribution pair. The search minimizes the squared
// flux residual with gonum's Nelder-Mead; box [Bounds] are enforced by
// projecting trial points into the feasible region and penalizing the
// excursion.
//
// # Usage
//
//	res, err := optimizer.MatchFluxParameters(ctx, optimizer.MatchConfig{
//	    SourceShape:  source,
//	    SourceDist:   fluxed.Uniform{Level: 1},
//	    TargetShape:  target,
//	    TargetFamily: optimizer.UniformFamily{},
//	    InitialGuess: []float64{0.5},
//	})
//
// The context cancels a long-running search; the best parameters found so
// far are returned along with the context's error.
package optimizer
