// Package replay applies scripted operation sequences to a buffer.Buffer and
// records what every step did.
//
// Scripts are YAML or JSON documents:
//
//	initial: 1024
//	prepend: 8
//	steps:
//	  - op: append
//	    text: "GET / HTTP/1.1\r\n"
//	  - op: find
//	    sep: crlf
//	  - op: retrieve
//	    n: 16
//	    capture: true
//
// Run executes a script and returns a Trace holding the result and the buffer
// Stats after each step:
//
//	script, err := replay.Load("crlf.yaml")
//	trace, err := replay.Run(ctx, script, replay.Options{StopOnError: true})
package replay
