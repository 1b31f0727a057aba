// Package benchmarks holds validation and JSON driver benchmarks.
package benchmarks
