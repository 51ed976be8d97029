// Package synth generates the demo fleet metrics served by the API. The
// engine is deterministic for a given seed and clock, so scenario tests can
// pin exact participation rates and vehicle counts.
package synth
