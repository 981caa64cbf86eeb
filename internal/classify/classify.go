// Package classify groups a wordlist into keyed classes on a bounded worker
// pool and prunes small classes once every shard has been merged.
package classify

import (
	"context"
	"log/slog"
	"runtime"
	"sort"

	"github.com/sourcegraph/conc/pool"
)

// Assign computes the class key of one input item and the member stored for
// it. An error excludes the item from every class.
type Assign func(item string) (key, member string, err error)

// Skip records an item that could not be classified.
type Skip struct {
	Item string
	Err  error
}

// Classes maps a class key to its members in first-seen order. Members are
// unique within a class.
type Classes struct {
	Buckets map[string][]string
	Skipped []Skip
}

// Keys returns the class keys in sorted order.
func (c *Classes) Keys() []string {
	keys := make([]string, 0, len(c.Buckets))
	for k := range c.Buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of classes.
func (c *Classes) Len() int {
	return len(c.Buckets)
}

// Grouper shards items across workers.
type Grouper struct {
	// Workers bounds the pool; zero means GOMAXPROCS.
	Workers int
	// MinSize drops classes with fewer members after the merge.
	MinSize int
	Logger  *slog.Logger
}

type shard struct {
	index   int
	keys    []string
	buckets map[string][]string
	skipped []Skip
}

// Group classifies items. Shards are contiguous runs of the input and are
// merged in input order, so the result does not depend on scheduling.
func (g *Grouper) Group(ctx context.Context, items []string, assign Assign) (*Classes, error) {
	workers := g.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	logger := g.Logger
	if logger == nil {
		logger = slog.Default()
	}

	size := (len(items) + workers - 1) / workers
	if size == 0 {
		size = 1
	}

	p := pool.NewWithResults[shard]().WithContext(ctx).WithMaxGoroutines(workers)
	for i, start := 0, 0; start < len(items); i, start = i+1, start+size {
		end := min(start+size, len(items))
		index, chunk := i, items[start:end]
		p.Go(func(ctx context.Context) (shard, error) {
			return classifyShard(ctx, index, chunk, assign, logger)
		})
	}

	shards, err := p.Wait()
	if err != nil {
		return nil, err
	}
	sort.Slice(shards, func(i, j int) bool { return shards[i].index < shards[j].index })

	out := merge(shards)
	out.prune(g.MinSize)
	return out, nil
}

func classifyShard(ctx context.Context, index int, items []string, assign Assign, logger *slog.Logger) (shard, error) {
	s := shard{index: index, buckets: make(map[string][]string)}
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return s, err
		}
		key, member, err := assign(item)
		if err != nil {
			logger.Warn("skipping word", "word", item, "error", err)
			s.skipped = append(s.skipped, Skip{Item: item, Err: err})
			continue
		}
		if _, ok := s.buckets[key]; !ok {
			s.keys = append(s.keys, key)
		}
		s.buckets[key] = appendUnique(s.buckets[key], member)
	}
	return s, nil
}

// merge folds shard results together in shard order.
func merge(shards []shard) *Classes {
	out := &Classes{Buckets: make(map[string][]string)}
	for _, s := range shards {
		for _, k := range s.keys {
			for _, m := range s.buckets[k] {
				out.Buckets[k] = appendUnique(out.Buckets[k], m)
			}
		}
		out.Skipped = append(out.Skipped, s.skipped...)
	}
	return out
}

// prune drops every class with fewer than size members. It must only run on fully
// merged classes.
func (c *Classes) prune(size int) {
	for k, members := range c.Buckets {
		if len(members) < size {
			delete(c.Buckets, k)
		}
	}
}

func appendUnique(members []string, m string) []string {
	for _, x := range members {
		if x == m {
			return members
		}
	}
	return append(members, m)
}
