// SPDX-License-Identifier: MIT
// Package shared_test contains test helpers.

package shared_test

// fixture is a named 2-D input used by table-driven tests.
type fixture struct {
	name string
	data [][]float64
}

// fixtures returns small, finite, well-formed inputs including degenerate shapes.
func fixtures() []fixture {
	return []fixture{
		{name: "empty", data: [][]float64{}},
		{name: "1x1", data: [][]float64{{7}}},
		{name: "2x2", data: [][]float64{{1, 2}, {3, 4}}},
		{name: "2x3", data: [][]float64{{1, 2, 3}, {4, 5, 6}}},
		{name: "3x1", data: [][]float64{{1}, {-2}, {3.25}}},
		{name: "1x4", data: [][]float64{{0, -1, 2.5, 1e9}}},
	}
}
