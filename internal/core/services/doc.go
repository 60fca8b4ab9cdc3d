// Package services implements the driving port interfaces.
// Services hold the ingestion, retrieval and answering logic and
// orchestrate calls to driven ports (adapters).
package services
