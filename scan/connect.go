package scan

import (
	"context"
	"errors"
	"net"
	"strconv"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// ErrInterrupted is returned by Scan when the context is cancelled before
// the port set has been fully probed.
var ErrInterrupted = errors.New("scan interrupted")

// cancelGrace is how long Scan waits for in-flight probes after a cancel
// before abandoning them.
const cancelGrace = time.Second

// OutcomeFunc receives one call per completed probe, always from a single
// goroutine, so implementations may print without further locking.
type OutcomeFunc func(port int, open bool, scanned, total int)

type probeJob struct {
	port     int
	outcomes chan<- probeOutcome
	ctx      context.Context
	wg       *sync.WaitGroup
}

type probeOutcome struct {
	port int
	open bool
}

// ConnectScanner probes a single target with a bounded pool of workers,
// one TCP connect attempt per port.
type ConnectScanner struct {
	target    *Target
	config    Config
	jobChan   chan probeJob
	onOutcome OutcomeFunc

	// dial is swapped out by tests.
	dial func(network, addr string, timeout time.Duration) (net.Conn, error)
}

// NewConnectScanner creates a scanner for target. Call Start before Scan.
func NewConnectScanner(target *Target, config Config) *ConnectScanner {
	return &ConnectScanner{
		target: target,
		config: config,
		dial:   net.DialTimeout,
	}
}

// OnOutcome registers the sink invoked once per completed probe. Must be
// set before Start.
func (c *ConnectScanner) OnOutcome(fn OutcomeFunc) {
	c.onOutcome = fn
}

// Start validates the configuration and launches the worker pool. The
// workers block on the job channel until Scan produces work.
func (c *ConnectScanner) Start() error {
	if err := c.config.Validate(); err != nil {
		return err
	}
	c.jobChan = make(chan probeJob, c.config.Workers)
	for i := 0; i < c.config.Workers; i++ {
		go c.worker()
	}
	return nil
}

func (c *ConnectScanner) worker() {
	for job := range c.jobChan {
		if job.ctx.Err() != nil {
			job.wg.Done()
			continue
		}
		open := c.probe(job.port)
		select {
		case job.outcomes <- probeOutcome{port: job.port, open: open}:
		case <-job.ctx.Done():
			// result abandoned
		}
		job.wg.Done()
	}
}

// Scan dispatches one probe per port, never more than Workers in flight,
// and returns the finalized result once every probe has completed. On
// cancellation it stops dispatching, waits out in-flight probes up to
// timeout+grace, and returns ErrInterrupted with no partial result.
func (c *ConnectScanner) Scan(ctx context.Context, ports []int) (*Result, error) {
	start := time.Now()
	result := NewResult(c.target, len(ports))

	outcomes := make(chan probeOutcome)
	collectorDone := make(chan struct{})

	// Sole writer of result. Funneling outcomes through one goroutine
	// keeps the open list and the scanned counter race-free and
	// serializes the sink's output.
	go func() {
		defer close(collectorDone)
		for o := range outcomes {
			result.record(o.port, o.open)
			if c.onOutcome != nil && ctx.Err() == nil {
				c.onOutcome(o.port, o.open, result.Scanned, result.Total)
			}
		}
	}()

	var wg sync.WaitGroup
	interrupted := false
dispatch:
	for _, port := range ports {
		job := probeJob{port: port, outcomes: outcomes, ctx: ctx, wg: &wg}
		wg.Add(1)
		select {
		case c.jobChan <- job:
		case <-ctx.Done():
			wg.Done()
			interrupted = true
			break dispatch
		}
	}

	drained := make(chan struct{})
	go func() {
		wg.Wait()
		close(drained)
	}()

	if interrupted {
		select {
		case <-drained:
			close(outcomes)
			<-collectorDone
		case <-time.After(c.config.Timeout + cancelGrace):
			log.Debug("abandoning in-flight probes")
			go func() {
				<-drained
				close(outcomes)
			}()
		}
		return nil, ErrInterrupted
	}

	<-drained
	if ctx.Err() != nil {
		close(outcomes)
		<-collectorDone
		return nil, ErrInterrupted
	}
	close(outcomes)
	<-collectorDone

	result.finalize(time.Since(start))
	return result, nil
}

// Stop closes the job channel, letting idle workers exit. Only call it
// once no further Scan will run.
func (c *ConnectScanner) Stop() {
	if c.jobChan != nil {
		close(c.jobChan)
	}
}

// probe dials one port. Every transport failure reads as closed: refusals,
// timeouts and even fd exhaustion all collapse to false, so a lossy
// network never clutters the scan output. The underlying error stays
// visible at debug level.
func (c *ConnectScanner) probe(port int) bool {
	addr := net.JoinHostPort(c.target.Addr.String(), strconv.Itoa(port))
	conn, err := c.dial("tcp", addr, c.config.Timeout)
	if err != nil {
		log.Debugf("%s: %v", addr, err)
		return false
	}
	conn.Close()
	log.Debugf("%s is open", addr)
	return true
}
