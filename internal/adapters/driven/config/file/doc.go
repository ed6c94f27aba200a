// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data under the meow config directory.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage (config.toml)
//   - PromptStore: user-editable prompt templates (prompts/*.txt)
package file
