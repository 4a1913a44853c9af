package plugin

import "github.com/rotisserie/eris"

// Sentinel errors for the manager's synchronous failure modes. All three are
// user-actionable and never retried internally.
var (
	// ErrNotFound means the plugin id is not registered with the manager.
	ErrNotFound = eris.New("plugin not found")

	// ErrNotEnabled means the plugin exists but is not currently enabled.
	ErrNotEnabled = eris.New("plugin not enabled")

	// ErrInvalidInput means the input text failed the plugin's validation.
	ErrInvalidInput = eris.New("invalid input text")
)
