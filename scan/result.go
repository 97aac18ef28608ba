package scan

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Result accumulates probe outcomes for one scan run. The collector
// goroutine inside ConnectScanner is its sole writer until finalize.
type Result struct {
	Target  *Target
	Open    []int
	Scanned int
	Total   int
	Elapsed time.Duration
}

func NewResult(target *Target, total int) *Result {
	return &Result{
		Target: target,
		Open:   []int{},
		Total:  total,
	}
}

// record folds one probe outcome in.
func (r *Result) record(port int, open bool) {
	r.Scanned++
	if open {
		r.Open = append(r.Open, port)
	}
}

// finalize freezes the result: open ports sorted ascending, elapsed time
// stamped. Outcomes arrive in arbitrary order, the report never does.
func (r *Result) finalize(elapsed time.Duration) {
	sort.Ints(r.Open)
	r.Elapsed = elapsed
}

// Summary renders the bordered report block.
func (r *Result) Summary() string {
	border := strings.Repeat("=", 60)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", border)
	fmt.Fprintf(&b, "Scan target : %s\n", r.Target)
	fmt.Fprintf(&b, "Open ports  : %d\n", len(r.Open))
	if len(r.Open) > 0 {
		b.WriteString("Ports       :\n")
		for _, p := range r.Open {
			fmt.Fprintf(&b, "  - %5d    %s\n", p, DescribePort(p))
		}
	}
	fmt.Fprintf(&b, "Elapsed time: %.2f seconds\n", r.Elapsed.Seconds())
	b.WriteString(border)
	return b.String()
}
