// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ContactStore, DealStore: Record persistence (SQLite)
//   - DocumentStore: Stored note persistence
//   - Extractor: Turns pasted text into records using a layout profile
//   - LayoutStore: Builtin and user-defined layout profiles
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - DocumentSource: Extra notes read at query time (note directories)
//   - LLMService: Language model operations. Without it, "ask" is disabled.
//   - PromptStore: User-editable prompts. Without it, embedded defaults are used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
