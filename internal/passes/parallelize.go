package passes

import (
	"log/slog"

	"github.com/roach88/nvfuse/internal/dispatch"
	"github.com/roach88/nvfuse/internal/ir"
)

// Parallelize binds IterDomains to parallel dimensions in place. bind maps
// an IterDomain's container name to its ParallelType; names that are not
// IterDomains are ignored. It returns the number of axes bound.
func Parallelize(c *ir.Container, bind map[int]ir.ParallelType) int {
	b := &binder{bind: bind}
	for _, v := range c.Values() {
		dispatch.HandleValue(b, v)
	}
	slog.Debug("parallelized", "requested", len(bind), "bound", b.bound)
	return b.bound
}

type binder struct {
	dispatch.OptOutDispatch
	bind  map[int]ir.ParallelType
	bound int
}

func (b *binder) HandleIterDomain(id *ir.IterDomain) {
	pt, ok := b.bind[id.Name()]
	if !ok {
		return
	}
	id.Parallel = pt
	b.bound++
}
