package services

import (
	"bizdash-backend/internal/llm"
	"context"
	"io"
	"log/slog"
	"sync"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeStream replays fragments, then optionally blocks until its context ends.
type fakeStream struct {
	ctx       context.Context
	fragments []string
	err       error
	block     bool
	waiting   chan struct{}

	i      int
	closed bool
}

func (s *fakeStream) Next() bool {
	if s.i < len(s.fragments) {
		s.i++
		return true
	}
	if s.block {
		if s.waiting != nil {
			close(s.waiting)
		}
		<-s.ctx.Done()
		s.err = s.ctx.Err()
	}
	return false
}

func (s *fakeStream) Text() string { return s.fragments[s.i-1] }
func (s *fakeStream) Err() error   { return s.err }
func (s *fakeStream) Close() error {
	s.closed = true
	return nil
}

type fakeChatProvider struct {
	fragments []string
	streamErr error
	startErr  error
	block     bool
	waiting   chan struct{}

	calls    int
	requests []llm.CompletionRequest
	stream   *fakeStream
}

func (p *fakeChatProvider) Name() string { return "fake" }

func (p *fakeChatProvider) StreamCompletion(ctx context.Context, req llm.CompletionRequest) (llm.CompletionStream, error) {
	p.calls++
	p.requests = append(p.requests, req)
	if p.startErr != nil {
		return nil, p.startErr
	}
	p.stream = &fakeStream{
		ctx:       ctx,
		fragments: p.fragments,
		err:       p.streamErr,
		block:     p.block,
		waiting:   p.waiting,
	}
	return p.stream, nil
}

type generatorReply struct {
	text string
	err  error
}

// fakeGenerator answers with scripted replies; the last reply repeats.
type fakeGenerator struct {
	mu      sync.Mutex
	replies []generatorReply
	calls   []time.Time
	prompts []string
}

func (g *fakeGenerator) Name() string { return "fake-generator" }

func (g *fakeGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, time.Now())
	g.prompts = append(g.prompts, prompt)
	i := len(g.calls) - 1
	if i >= len(g.replies) {
		i = len(g.replies) - 1
	}
	return g.replies[i].text, g.replies[i].err
}

func (g *fakeGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}
