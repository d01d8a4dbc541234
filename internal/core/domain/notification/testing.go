package notification

import (
	"context"
	c "oroshine/internal/core/domain/common"
	"oroshine/internal/core/domain/outbox"
	"sync"
)

type FakeSentNotification struct {
	Recipient c.Email
	Kind      outbox.JobKind
	Params    map[string]string
}

// FakeSender returns the scripted Errs one per call, then nil for every
// further call.
type FakeSender struct {
	Errs  []error
	Sent  []FakeSentNotification
	calls int
	lock  sync.Mutex
}

func NewFakeSender(errs ...error) *FakeSender {
	return &FakeSender{Errs: errs}
}

func (s *FakeSender) Send(
	ctx context.Context,
	recipient c.Email,
	kind outbox.JobKind,
	params map[string]string,
) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	call := s.calls
	s.calls++
	if call < len(s.Errs) && s.Errs[call] != nil {
		return s.Errs[call]
	}
	s.Sent = append(s.Sent, FakeSentNotification{Recipient: recipient, Kind: kind, Params: params})
	return nil
}

func (s *FakeSender) Calls() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.calls
}

func (s *FakeSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}

type FakeDeliveryGuard struct {
	acquired map[string]bool
	lock     sync.Mutex
}

func NewFakeDeliveryGuard() *FakeDeliveryGuard {
	return &FakeDeliveryGuard{acquired: make(map[string]bool)}
}

func (g *FakeDeliveryGuard) Acquire(ctx context.Context, key string) bool {
	g.lock.Lock()
	defer g.lock.Unlock()
	if g.acquired[key] {
		return false
	}
	g.acquired[key] = true
	return true
}
