package wizard

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/spec-kit/bursa-register/internal/domain"
)

type fakeSessions struct {
	session *domain.Session
}

func (f *fakeSessions) Session(context.Context) (*domain.Session, error) {
	if f.session == nil {
		return nil, domain.ErrNoSession
	}
	return f.session, nil
}

func (f *fakeSessions) SignOut(context.Context) error {
	f.session = nil
	return nil
}

type fakeStatus struct {
	report *domain.StatusReport
	err    error
}

func (f *fakeStatus) CheckStatus(context.Context, string) (*domain.StatusReport, error) {
	if f.err != nil {
		return nil, f.err
	}
	copied := *f.report
	return &copied, nil
}

type fakeSubmissions struct {
	calls    atomic.Int32
	gate     chan struct{}
	err      error
	payloads []domain.SubmissionPayload
	mu       sync.Mutex
}

func (f *fakeSubmissions) Submit(ctx context.Context, _ string, payload domain.SubmissionPayload) (*domain.SubmitResult, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.payloads = append(f.payloads, payload)
	f.mu.Unlock()
	if f.gate != nil {
		<-f.gate
	}
	if f.err != nil {
		return nil, f.err
	}
	return &domain.SubmitResult{
		Success:  true,
		Business: domain.BusinessRef{ID: "biz-1", Name: payload.Name, Status: domain.SubmissionPending},
	}, nil
}

// fakeMedia resolves uploads when the test releases the matching gate.
type fakeMedia struct {
	calls atomic.Int32
	gates map[string]chan struct{}
	fail  map[string]bool
}

func (f *fakeMedia) Upload(_ context.Context, file MediaFile) (string, error) {
	f.calls.Add(1)
	if gate, ok := f.gates[file.Name]; ok {
		<-gate
	}
	if f.fail[file.Name] {
		return "", errors.New("storage unavailable")
	}
	return "https://cdn.example.com/" + file.Name, nil
}

type remoteError struct {
	msg string
}

func (e *remoteError) Error() string       { return "remote: " + e.msg }
func (e *remoteError) UserMessage() string { return e.msg }
