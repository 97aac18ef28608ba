package scan

import (
	"fmt"
	"net"
	"time"

	"github.com/miekg/dns"
)

// Target is a scan destination: the name the operator supplied plus the
// address it resolved to. Resolution happens exactly once, before any
// probe is dispatched.
type Target struct {
	Host string
	Addr net.IP
}

func (t *Target) String() string {
	return fmt.Sprintf("%s (%s)", t.Host, t.Addr)
}

// ResolveTarget resolves host via the system resolver. IP literals are
// accepted as-is. For names the first IPv4 address wins, falling back to
// the first address of any family.
func ResolveTarget(host string) (*Target, error) {
	if ip := net.ParseIP(host); ip != nil {
		return &Target{Host: host, Addr: ip}, nil
	}
	ips, err := net.LookupIP(host)
	if err != nil {
		return nil, err
	}
	if len(ips) == 0 {
		return nil, fmt.Errorf("no addresses found for %q", host)
	}
	for _, ip := range ips {
		if v4 := ip.To4(); v4 != nil {
			return &Target{Host: host, Addr: v4}, nil
		}
	}
	return &Target{Host: host, Addr: ips[0]}, nil
}

// ResolveTargetVia resolves host with an A query against a specific DNS
// server instead of the system resolver. The server may omit its port, in
// which case 53 is assumed.
func ResolveTargetVia(host, server string, timeout time.Duration) (*Target, error) {
	if ip := net.ParseIP(host); ip != nil {
		return &Target{Host: host, Addr: ip}, nil
	}
	if _, _, err := net.SplitHostPort(server); err != nil {
		server = net.JoinHostPort(server, "53")
	}

	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(host), dns.TypeA)
	msg.RecursionDesired = true

	client := &dns.Client{Timeout: timeout}
	resp, _, err := client.Exchange(msg, server)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", server, err)
	}
	if resp.Rcode != dns.RcodeSuccess {
		return nil, fmt.Errorf("query %s: %s for %q", server, dns.RcodeToString[resp.Rcode], host)
	}
	for _, rr := range resp.Answer {
		if a, ok := rr.(*dns.A); ok {
			return &Target{Host: host, Addr: a.A}, nil
		}
	}
	return nil, fmt.Errorf("no A records for %q from %s", host, server)
}
