// Package lae is a linear-algebra engine that evaluates trees of matrix
// operations on a pool of worker goroutines scheduled by fatigue.
//
// 🚀 What is lae?
//
//	A small, thread-safe engine that brings together:
//		• Shared vectors & matrices: row/column tagged vectors mutated in place
//		  under per-vector RW locks acquired in one global order
//		• Fatigue scheduling: every task goes to the idle worker with the least
//		  accumulated busy time × factor
//		• Operation trees: negate, transpose, n-ary add and multiply, read from
//		  and written to JSON
//
// Under the hood, everything is organized under these subpackages:
//
//	shared/   Vector, Matrix, ordered multi-vector locking
//	fatigue/  Worker, Scheduler, pool report
//	tree/     operation tree Node, JSON input/output
//	engine/   Engine: resolves a tree node by node on the pool
//	matrix/   sequential Dense kernels and Eval (lae --verify)
//	config/   YAML configuration
//	logging/  zap logger construction
//	cmd/lae/  command-line entry point
//
// Quick example:
//
//	e, _ := engine.New(4)
//	defer e.Close()
//	root := tree.NewOp(tree.KindAdd,
//		tree.NewLeaf([][]float64{{1, 2}, {3, 4}}),
//		tree.NewLeaf([][]float64{{5, 6}, {7, 8}}))
//	res, _ := e.Run(ctx, root) // res.Matrix() == [[6 8] [10 12]]
//
//	go install github.com/katalvlaran/lae/cmd/lae@latest
package lae
