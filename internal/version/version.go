// Package version holds the bindings and API versions sent with every request.
package version

const (
	// Version of the Go bindings
	Version = "1.0.0"
	// APIVersion is the path segment of the Emburse API the bindings target
	APIVersion = "v1"
	// Publisher is reported in the client user-agent metadata
	Publisher = "emburse-go"
)
