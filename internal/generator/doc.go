// Package generator executes planned tasks against a synthesis provider.
// Each task either finds its artifact already on disk, produces it, or fails
// without stopping the batch. Only cancellation ends a batch early.
package generator
