// Package app assembles the hub's dependency graph from configuration.
package app
