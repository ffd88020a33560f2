// Package oracle defines the pluggable summarization capability used to
// compress large command output, plus its production implementations.
package oracle

import "context"

// Request carries everything a summarizer needs about one command run.
// Instructions is the fully built prompt; Command, ExitCode and Output are
// available to implementations that want structure instead of prose.
type Request struct {
	Command      string
	ExitCode     int
	Output       string
	Instructions string
}

// Summarizer condenses command output. Implementations block until done
// or ctx expires; the caller bounds the call with a timeout and treats
// any error as a compression failure.
type Summarizer interface {
	Summarize(ctx context.Context, req Request) (string, error)
}

// Func adapts a function to the Summarizer interface.
type Func func(ctx context.Context, req Request) (string, error)

func (f Func) Summarize(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
