package fetcherfakes

import (
	"context"
	"sync"

	"github.com/agrovision/portal/access"
)

// FakeFetcher is an in-memory access.Fetcher for tests. The returned
// objects and error can be swapped between calls; Block/Unblock lets a
// test hold a fetch in flight.
type FakeFetcher struct {
	mu        sync.Mutex
	objects   []access.Object
	err       error
	callCount int
	blockCh   chan struct{}
}

func NewFakeFetcher() *FakeFetcher {
	return &FakeFetcher{}
}

func (f *FakeFetcher) Returns(objects []access.Object, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects = objects
	f.err = err
}

// Block makes the next AccessObjects call park until Unblock.
func (f *FakeFetcher) Block() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blockCh = make(chan struct{})
}

func (f *FakeFetcher) Unblock() {
	f.mu.Lock()
	ch := f.blockCh
	f.blockCh = nil
	f.mu.Unlock()
	if ch != nil {
		close(ch)
	}
}

func (f *FakeFetcher) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.callCount
}

func (f *FakeFetcher) AccessObjects(ctx context.Context) ([]access.Object, error) {
	f.mu.Lock()
	f.callCount++
	ch := f.blockCh
	objects, err := f.objects, f.err
	f.mu.Unlock()

	if ch != nil {
		select {
		case <-ch:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	out := make([]access.Object, len(objects))
	copy(out, objects)
	return out, nil
}
