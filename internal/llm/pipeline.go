package llm

import (
	"context"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/Israel-Laguan/folder-summary/internal/model"
)

const initialBackoff = 500 * time.Millisecond

// PipelineOptions tunes the description run.
type PipelineOptions struct {
	Workers  int           // concurrent provider calls; <=0 means GOMAXPROCS
	Retries  int           // total attempts per group for transient failures
	Timeout  time.Duration // per-request deadline; <=0 disables it
	Progress bool          // render a progress bar on stderr
}

// Pipeline attaches descriptions to every function in a Project. Functions
// with equal body hashes form one group: the group makes at most one
// provider call and every member receives the same text.
type Pipeline struct {
	provider LLM
	name     string
	model    string
	cache    *Cache
	opts     PipelineOptions
}

func NewPipeline(provider LLM, providerName, modelName string, cache *Cache, opts PipelineOptions) *Pipeline {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Retries <= 0 {
		opts.Retries = 1
	}
	if cache == nil {
		cache = NewCache("")
	}
	return &Pipeline{
		provider: provider,
		name:     providerName,
		model:    modelName,
		cache:    cache,
		opts:     opts,
	}
}

type descGroup struct {
	key     string
	req     Request
	entries []*model.FunctionEntry
}

// Run fills Description on the project's functions. Provider failures are
// returned as diagnostics; the run itself never fails, and every entry
// whose group exhausted its attempts is left without a description.
func (p *Pipeline) Run(ctx context.Context, project *model.Project) []string {
	pending := p.collectGroups(project)
	if len(pending) == 0 {
		return nil
	}

	var bar *progressbar.ProgressBar
	if p.opts.Progress {
		bar = progressbar.NewOptions(len(pending),
			progressbar.OptionSetDescription("Describing functions"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	numWorkers := p.opts.Workers
	if numWorkers > len(pending) {
		numWorkers = len(pending)
	}

	work := make(chan *descGroup, len(pending))
	var wg sync.WaitGroup
	var mu sync.Mutex
	var diagnostics []string

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for group := range work {
				desc, err := p.summarizeWithRetry(ctx, group.req)
				if err != nil {
					mu.Lock()
					diagnostics = append(diagnostics,
						"description failed for "+group.req.Name+": "+err.Error())
					mu.Unlock()
				} else if desc != "" {
					p.cache.Put(group.key, desc)
					for _, entry := range group.entries {
						entry.Description = desc
					}
				}
				if bar != nil {
					_ = bar.Add(1)
				}
			}
		}()
	}

	for _, group := range pending {
		work <- group
	}
	close(work)
	wg.Wait()

	sort.Strings(diagnostics)
	return diagnostics
}

// collectGroups buckets the project's functions by cache key, resolves
// cache hits immediately and returns the groups that still need a call.
func (p *Pipeline) collectGroups(project *model.Project) []*descGroup {
	var order []string
	groups := make(map[string]*descGroup)

	for _, fm := range project.Files() {
		for _, fn := range fm.Functions {
			key := CacheKey(fn.BodyHash, p.name, p.model)
			group, ok := groups[key]
			if !ok {
				group = &descGroup{
					key: key,
					req: Request{
						Language:  fm.Language,
						Name:      fn.Name,
						Signature: fn.Signature,
						Body:      fn.Body,
						BodyHash:  fn.BodyHash,
					},
				}
				groups[key] = group
				order = append(order, key)
			}
			group.entries = append(group.entries, fn)
		}
	}

	pending := make([]*descGroup, 0, len(order))
	for _, key := range order {
		group := groups[key]
		if desc, ok := p.cache.Get(key); ok {
			for _, entry := range group.entries {
				entry.Description = desc
			}
			continue
		}
		pending = append(pending, group)
	}
	return pending
}

func (p *Pipeline) summarizeWithRetry(ctx context.Context, req Request) (string, error) {
	backoff := initialBackoff
	var lastErr error

	for attempt := 1; attempt <= p.opts.Retries; attempt++ {
		desc, err := p.summarizeOnce(ctx, req)
		if err == nil {
			return desc, nil
		}
		lastErr = err
		if !IsTransient(err) {
			return "", err
		}
		if attempt == p.opts.Retries {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return "", lastErr
}

func (p *Pipeline) summarizeOnce(ctx context.Context, req Request) (string, error) {
	if p.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.Timeout)
		defer cancel()
	}
	return p.provider.Summarize(ctx, req)
}
