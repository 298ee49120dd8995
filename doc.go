// Package bulkio defines a synchronous contract for moving items from
// producers (pull-based sources) to consumers (push-based sinks).
//
// The single-item surface is [Producer] and [Consumer]. The bulk surface,
// [BulkProducer] and [BulkConsumer], separates acquiring a window of slots
// from committing how many of them were used, which lets a store hand out
// slices of its own memory and makes zero-copy transfers between two bulk
// endpoints possible.
//
// Nothing in this module blocks: an operation either completes or returns an
// error immediately. Ring buffers report a transient [ErrUnavailable] when
// they are full or empty, finite sources and sinks report [ErrEnd].
package bulkio
