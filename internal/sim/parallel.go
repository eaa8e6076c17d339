package sim

import (
	"context"
	"sync"
)

// Ensemble runs independent sessions side by side. Each session owns its
// own configuration, so nothing is shared between the goroutines.
type Ensemble struct {
	sessions []*Session
}

func NewEnsemble(sessions ...*Session) *Ensemble {
	return &Ensemble{sessions: sessions}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(e.sessions))
	errs := make([]error, len(e.sessions))

	var wg sync.WaitGroup
	for i, s := range e.sessions {
		wg.Add(1)
		go func(idx int, s *Session) {
			defer wg.Done()
			results[idx], errs[idx] = s.Run(ctx, cfg)
		}(i, s)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
