package design

import (
	"context"
	"runtime"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/ddoc/document"
	"github.com/dhamidi/ddoc/profile"
)

// Unit is one loaded source text.
type Unit struct {
	Path string
	Src  []byte
}

// Result is the outcome for one unit. Exactly one of Doc and Err is set,
// unless the unit was never started because the context ended.
type Result struct {
	Path string
	Doc  *document.Document
	Err  error
}

// ParseAll parses units on up to workers goroutines. Results are in the
// order of units. A unit's parse error is recorded in its result and does
// not stop the others; a cancelled context stops new units from starting
// and is returned.
func ParseAll(ctx context.Context, units []Unit, prof *profile.Profile, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	log := commonlog.GetLogger("ddoc.design")
	results := make([]Result, len(units))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, u := range units {
		results[i].Path = u.Path
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := Parse(u.Src, prof, WithFile(u.Path), WithLogger(log))
			results[i].Doc = doc
			results[i].Err = err
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}
