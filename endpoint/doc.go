// Package endpoint provides simple producers and consumers: slice cursors,
// error mapping adapters, a growable collector, a repeating producer and
// bridges to io.Reader and io.Writer.
package endpoint
