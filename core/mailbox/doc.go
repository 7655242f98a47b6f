// Package mailbox provides the typed channels actors use to talk to each
// other.
//
// Most mailboxes have two halves, like a pipe. The sender and receiver halves
// are handed to different actors before they are spawned. Some mailboxes allow
// cloning the sender and/or the receiver for fan-in or work sharing. The
// [Timer] and [Stop] types only have a receiving side and are used inside a
// single actor to manage internal events.
//
// # Capabilities
//
// Stages are written against capabilities rather than concrete types:
//
//   - [Sender] accepts values of type T
//   - [Receiver] produces values of type T
//   - [MultiSender] is any Sender that can be cloned
//   - [MultiReceiver] is any Receiver that can be cloned
//
// MultiSender and MultiReceiver are generic constraints. Any type that has
// the Sender (or Receiver) methods and a Clone method satisfies them; no
// wrapper types are needed.
//
// # Closing
//
// Go has no destructors, so "dropping" a half is spelled Close. A mailbox is
// closed for receivers once every sender clone has been closed, and closed for
// senders once every receiver clone has been closed.
//
//	tx, rx := mailbox.New[string]()
//	go func() {
//	    defer tx.Close()
//	    _ = tx.Send(ctx, "hello")
//	    _ = tx.Send(ctx, "world")
//	}()
//	for {
//	    msg, err := rx.Recv(ctx)
//	    if errors.Is(err, mailbox.ErrClosed) {
//	        break
//	    }
//	    fmt.Println(msg)
//	}
//
// # Multi-way waits
//
// Every receiving side exposes a channel via C so an actor can race several
// event sources in one select. A disabled branch is a nil channel:
//
//	var input <-chan byte
//	if !stopping {
//	    input = rx.C()
//	}
//	select {
//	case b, ok := <-input:
//	case <-flush.C():
//	case <-stop.C():
//	}
package mailbox
