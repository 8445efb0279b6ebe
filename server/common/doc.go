// Package common holds the wire protocol definition and the configuration
// and logging plumbing shared by the server, the client and the CLI commands.
package common
