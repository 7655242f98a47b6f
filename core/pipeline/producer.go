package pipeline

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/djmitche/actor-experiment/core/mailbox"
)

// Producer feeds the bytes of a reader into a mailbox, one at a time, and
// closes the mailbox at EOF.
type Producer struct {
	r   *bufio.Reader
	out mailbox.Sender[byte]
}

func NewProducer(r io.Reader, out mailbox.Sender[byte]) *Producer {
	return &Producer{r: bufio.NewReader(r), out: out}
}

func (p *Producer) Run(ctx context.Context) error {
	defer p.out.Close()
	for {
		b, err := p.r.ReadByte()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if err := p.out.Send(ctx, b); err != nil {
			if mailbox.IsClosed(err) {
				// the tailer stopped reading; that is its call to make
				return nil
			}
			return err
		}
	}
}
