// Package runtime wires storage, configuration, and the pipeline stages into
// a single-node killbot instance.
package runtime
