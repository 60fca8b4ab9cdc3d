// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem under ~/.relay.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - PromptStore: user-editable LLM prompts with embedded defaults
//   - LayoutStore: YAML layout profiles merged over the builtins
package file
