// Package pipeline is a three-stage actor topology that bounds how much
// unacknowledged data may be in flight.
//
//	input bytes -> Tailer -> Transform (actor.Map) -> Consumer
//	                 ^                                   |
//	                 +----------- commitments -----------+
//
// The [Tailer] buffers incoming bytes and flushes them as a [Chunk] once the
// flush interval after the first buffered byte has passed. Each chunk carries
// a commitment checkpoint: the total number of bytes read at flush time. The
// [Consumer] acknowledges every chunk by sending its checkpoint back after
// its own processing latency; acknowledgments run concurrently and may
// arrive out of order.
//
// The tailer stops reading while read-committed has reached the configured
// window, and resumes as soon as a commitment arrives. Shutdown is
// cooperative: after a stop request or the end of input the tailer keeps
// running until every byte it read has been committed.
package pipeline
