package orders

import (
	"regexp"
	"sync"
	"testing"
)

var numberPattern = regexp.MustCompile(`^YO-\d+-[A-Z0-9]{9}$`)

func TestNewOrderNumberFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		n := NewOrderNumber()
		if !numberPattern.MatchString(n) {
			t.Fatalf("order number %q does not match %s", n, numberPattern)
		}
	}
}

func TestNewOrderNumberUniqueUnderConcurrency(t *testing.T) {
	const workers = 8
	const perWorker = 250

	var mu sync.Mutex
	seen := make(map[string]struct{}, workers*perWorker)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]string, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				local = append(local, NewOrderNumber())
			}
			mu.Lock()
			defer mu.Unlock()
			for _, n := range local {
				if _, dup := seen[n]; dup {
					t.Errorf("duplicate order number %q", n)
				}
				seen[n] = struct{}{}
			}
		}()
	}
	wg.Wait()

	if len(seen) != workers*perWorker {
		t.Fatalf("generated %d unique numbers, want %d", len(seen), workers*perWorker)
	}
}
