// Package ghostpen generates text in a user's own authorial voice. It
// ingests a user's writing samples into a per-user chunk store, retrieves
// style-relevant passages by embedding similarity, and conditions a
// generative model on those passages so the output imitates the author.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, ollama/).
package ghostpen
