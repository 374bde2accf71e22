package types

// DefaultVersion is the fallback version when AppContext is nil
const DefaultVersion = "dev"

// AppContext holds application-wide context information passed to commands
type AppContext struct {
	Version string
	// Verbose echoes external tool invocations and per-frame progress lines.
	Verbose bool
}

// IsVerbose is nil-safe for commands invoked without an AppContext.
func (c *AppContext) IsVerbose() bool {
	return c != nil && c.Verbose
}

// VersionString is nil-safe for commands invoked without an AppContext.
func (c *AppContext) VersionString() string {
	if c == nil {
		return DefaultVersion
	}
	return c.Version
}
