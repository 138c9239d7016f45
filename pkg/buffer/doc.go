// Package buffer provides Buffer, a growable byte buffer for the network
// boundary of an application.
//
// Incoming bytes are appended as they arrive, parsed in place through Peek
// and the Find helpers, and discarded with Retrieve once a message has been
// consumed. Outgoing messages can get a header put in front of them with
// Prepend without moving the payload.
//
//	buf := buffer.New()
//
//	// Transport reader
//	if _, err := buf.ReadOnce(conn); err != nil {
//	    return err
//	}
//
//	// Protocol parser
//	if i := buf.FindCRLF(); i >= 0 {
//	    line, _ := buf.RetrieveAsString(i)
//	    _ = buf.Retrieve(2)
//	    handle(line)
//	}
//
//	// Transport writer
//	out := buffer.New(buffer.WithPrependSize(4))
//	out.AppendString(payload)
//	_ = out.PrependUint32(uint32(len(payload)))
//	conn.Write(out.PeekWithPrependable())
//
// Integers are always encoded in network byte order.
//
// Buffers are not safe for concurrent use. Slices returned by Peek,
// PeekN, Bytes, PeekWithPrependable and WritableSlice alias the buffer and
// become invalid after the next mutating call.
package buffer
