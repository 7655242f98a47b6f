package actor

import (
	"context"
	"fmt"

	"github.com/djmitche/actor-experiment/core/mailbox"
)

// Map starts an actor that receives values of type I, transforms them with
// fn and sends the results to output. It stops cleanly when input is closed
// and closes output on the way out, so closure propagates downstream.
//
// A failed send means the downstream stage is gone. That is fatal for the
// stage: Map stops and reports the error through its handle instead of
// dropping data.
func Map[I, O any](
	input mailbox.Receiver[I],
	output mailbox.Sender[O],
	fn func(I) O,
	opts ...Option,
) *Handle {
	return Spawn(&mapper[I, O]{input: input, output: output, fn: fn}, opts...)
}

type mapper[I, O any] struct {
	input  mailbox.Receiver[I]
	output mailbox.Sender[O]
	fn     func(I) O
}

func (m *mapper[I, O]) Run(ctx context.Context) error {
	defer m.output.Close()
	defer m.input.Close()

	for {
		msg, err := m.input.Recv(ctx)
		if mailbox.IsClosed(err) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := m.output.Send(ctx, m.fn(msg)); err != nil {
			return fmt.Errorf("map: %w", err)
		}
	}
}
