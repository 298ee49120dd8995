// Package scramble provides wrappers that route every call of the simple
// [bulkio.Producer] and [bulkio.Consumer] surface through a scripted mixture of
// single item, bulk and flush/slurp operations on the wrapped endpoint.
//
// Piping data through a scrambled endpoint must give the same result as piping
// it through the endpoint directly, whatever the script. A difference points to
// a bug in the wrapped [bulkio.BulkProducer] or [bulkio.BulkConsumer].
package scramble
