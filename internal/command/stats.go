package command

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"
)

// StatsCommand reports process uptime and runtime figures.
type StatsCommand struct {
	Info
	router  *Router
	started time.Time
	now     func() time.Time
}

func NewStatsCommand(router *Router) *StatsCommand {
	return &StatsCommand{
		Info: Info{
			Name: "stats",
			Help: "bot uptime and runtime statistics",
			Use:  []string{"stats"},
		},
		router:  router,
		started: time.Now(),
		now:     time.Now,
	}
}

func (c *StatsCommand) Execute(ctx context.Context, req Request) (*Response, error) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	uptime := c.now().Sub(c.started).Truncate(time.Second)
	var b strings.Builder
	fmt.Fprintf(&b, "uptime: %s\n", uptime)
	fmt.Fprintf(&b, "commands: %d\n", len(c.router.Commands()))
	fmt.Fprintf(&b, "goroutines: %d\n", runtime.NumGoroutine())
	fmt.Fprintf(&b, "heap: %.1fMiB", float64(mem.HeapAlloc)/(1<<20))
	return &Response{Text: b.String()}, nil
}
