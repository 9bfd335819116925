// Package common holds the pieces shared by every evaluator in the math tree.
//
// This package is organized into:
//   - context: the immutable precision context and its constant memo
//   - arith: allocation-per-call big.Float helpers bound to a context
//   - result: the evaluation outcome (finite, ±Inf, unrepresentable)
//   - errors: domain and pole sentinels
//
// All arithmetic goes through a *Context so that no literal or intermediate is
// ever produced at an unexpected precision:
//
//	ctx := common.Working()
//	x := ctx.Rat(1, 3)
//	y := ctx.Mul(x, ctx.Int(3))
package common
