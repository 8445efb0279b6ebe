// Package cmd contains the meshkv command line interface: the serve command
// that runs a node and the kv commands that talk to a cluster through the
// ring-routing coordinator.
package cmd
