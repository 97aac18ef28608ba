package scan

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	minPort = 1
	maxPort = 65535
)

// SpecError reports a port spec token that could not be parsed as a number.
type SpecError struct {
	Token string
}

func (e *SpecError) Error() string {
	return fmt.Sprintf("invalid port spec token: %q", e.Token)
}

// ParsePorts expands a spec like "22,80,8000-8100" into a sorted list of
// unique ports. The grammar is lenient: empty tokens are skipped, inverted
// range endpoints are swapped, ranges are clamped to 1-65535 and bare
// values outside that span are dropped. Only a token that fails to parse
// as an integer is an error; an empty result is a valid parse.
func ParsePorts(spec string) ([]int, error) {
	seen := make(map[int]struct{})
	for _, token := range strings.Split(spec, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if strings.Contains(token, "-") {
			bounds := strings.SplitN(token, "-", 2)
			begin, err := strconv.Atoi(strings.TrimSpace(bounds[0]))
			if err != nil {
				return nil, &SpecError{Token: token}
			}
			end, err := strconv.Atoi(strings.TrimSpace(bounds[1]))
			if err != nil {
				return nil, &SpecError{Token: token}
			}
			if begin > end {
				begin, end = end, begin
			}
			if begin < minPort {
				begin = minPort
			}
			if end > maxPort {
				end = maxPort
			}
			for p := begin; p <= end; p++ {
				seen[p] = struct{}{}
			}
		} else {
			p, err := strconv.Atoi(token)
			if err != nil {
				return nil, &SpecError{Token: token}
			}
			if p >= minPort && p <= maxPort {
				seen[p] = struct{}{}
			}
		}
	}
	ports := make([]int, 0, len(seen))
	for p := range seen {
		ports = append(ports, p)
	}
	sort.Ints(ports)
	return ports, nil
}

// DescribePort returns the well-known service name for a TCP port, or "-"
// when the registry has no entry.
func DescribePort(port int) string {
	if s, ok := knownPorts[port]; ok {
		return s
	}
	return "-"
}
