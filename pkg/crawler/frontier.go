package crawler

import "sync"

type target struct {
	url   string
	depth int
}

// frontier is the FIFO of pages still to visit. A URL enters it at most once.
type frontier struct {
	mu      sync.Mutex
	queue   []target
	seen    map[string]bool
	visited int
}

func newFrontier(start string) *frontier {
	return &frontier{
		queue: []target{{url: start, depth: 0}},
		seen:  map[string]bool{start: true},
	}
}

// next removes up to n targets from the head of the queue and counts them
// as visited
func (f *frontier) next(n int) []target {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n > len(f.queue) {
		n = len(f.queue)
	}
	if n <= 0 {
		return nil
	}
	batch := append([]target(nil), f.queue[:n]...)
	f.queue = f.queue[n:]
	f.visited += n
	return batch
}

// push enqueues every unseen url at depth
func (f *frontier) push(urls []string, depth int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range urls {
		if f.seen[u] {
			continue
		}
		f.seen[u] = true
		f.queue = append(f.queue, target{url: u, depth: depth})
	}
}

// counts returns the visited and queued sizes
func (f *frontier) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visited, len(f.queue)
}
