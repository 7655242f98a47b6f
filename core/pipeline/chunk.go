package pipeline

// Chunk is one flushed buffer. Commit is the number of input bytes read up
// to and including Data; acknowledging a chunk means sending Commit back to
// the tailer.
type Chunk struct {
	Data   []byte
	Commit uint64
}
