// Package exact provides the arbitrary-precision probability arithmetic used by
// the epidemic steppers.
//
// Integers that grow factorially (n!, C(n,k)) are held in math/big. Every
// probability and rate is a Prob, a decimal carried at a fixed number of
// significant digits chosen through a Context. A Prob is converted to float64
// only at the reporting boundary (Prob.Float64); nothing in the engine narrows
// to native floating point before that.
//
// The three building blocks are:
//   - combinatorics.go: Factorial, BinomialCoefficient, Context.BinomialPointMass
//   - cdf.go: Context.BuildCDF, a cumulative binomial table of n+2 entries
//   - sampler.go: UniformGrid draws on {0, 1/steps, ..., 1} and SampleFromCDF
package exact
