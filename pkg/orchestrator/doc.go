// Package orchestrator wires the document pipeline: parse the candidate,
// normalize it, gate its media, pin the style, validate, and fall back when
// any step rejects it. Build is total; Generate adds the one suspension point,
// the call to the content generator.
package orchestrator
