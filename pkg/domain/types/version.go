package types

// Version is the application version. Overwritten at build time via -ldflags.
var Version = "dev"

// ServiceName is reported by the health endpoint
const ServiceName = "pr-ai-reviewer"
