package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tcpscan/scan"
)

var (
	portSpec   string
	workers    int
	timeoutSec float64
	dnsServer  string
	debug      bool
)

const (
	exitUsage       = 2
	exitResolve     = 3
	exitInterrupted = 130
)

func init() {
	rootCmd.Flags().StringVarP(&portSpec, "ports", "p", "1-1024", "Ports to scan, comma separated with ranges e.g. 22,80,8000-8100")
	rootCmd.Flags().IntVarP(&workers, "workers", "w", 100, "Number of concurrent workers")
	rootCmd.Flags().Float64VarP(&timeoutSec, "timeout", "t", 1.0, "Per-port connect timeout in seconds")
	rootCmd.Flags().StringVar(&dnsServer, "dns", "", "Resolve the target via this DNS server instead of the system resolver")
	rootCmd.Flags().BoolVarP(&debug, "verbose", "v", false, "Enable verbose logging")
}

var rootCmd = &cobra.Command{
	Use:   "tcpscan <target>",
	Short: "Concurrent TCP connect scanner",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if debug {
			log.SetLevel(log.DebugLevel)
		}
		os.Exit(run(args[0]))
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitUsage)
	}
}

func run(target string) int {
	ports, err := scan.ParsePorts(portSpec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid ports specification: %v\n", err)
		return exitUsage
	}
	if len(ports) == 0 {
		fmt.Fprintln(os.Stderr, "No valid ports to scan.")
		return exitUsage
	}

	config := scan.Config{
		Workers: workers,
		Timeout: time.Duration(timeoutSec * float64(time.Second)),
	}
	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		return exitUsage
	}

	t, err := resolve(target, config.Timeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to resolve target %q: %v\n", target, err)
		return exitResolve
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	fmt.Printf("Scanning %s\n", t)
	fmt.Printf("Ports: %d  Workers: %d  Timeout: %gs\n", len(ports), workers, timeoutSec)

	scanner := scan.NewConnectScanner(t, config)
	scanner.OnOutcome(func(port int, open bool, scanned, total int) {
		if open {
			fmt.Printf("[OPEN] %5d   %s\n", port, scan.DescribePort(port))
		}
		fmt.Printf("Scanned: %d/%d ports\r", scanned, total)
	})
	if err := scanner.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		return exitUsage
	}
	defer scanner.Stop()

	result, err := scanner.Scan(ctx, ports)
	if err != nil {
		if errors.Is(err, scan.ErrInterrupted) {
			fmt.Fprintln(os.Stderr, "\nScan interrupted by user.")
			return exitInterrupted
		}
		fmt.Fprintf(os.Stderr, "Scan failed: %v\n", err)
		return 1
	}

	fmt.Println()
	fmt.Println(result.Summary())
	return 0
}

func resolve(target string, timeout time.Duration) (*scan.Target, error) {
	if dnsServer != "" {
		return scan.ResolveTargetVia(target, dnsServer, timeout)
	}
	return scan.ResolveTarget(target)
}
