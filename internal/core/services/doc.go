// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The generation path runs: PromptBuilder renders a chunk into a
// prompt, Generator calls the backend with the retry policy,
// ResponseParser extracts candidate pairs, QualityGate filters and
// cleans them, and Pipeline coordinates the whole batch.
package services
