package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

const registryURL = "https://www.iana.org/assignments/service-names-port-numbers/service-names-port-numbers.csv"

// Regenerates scan/known.go from the IANA service name registry.
// Run from the repository root: go run ./tools
func main() {
	resp, err := http.Get(registryURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	out, err := os.Create("./scan/known.go")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer out.Close()

	fmt.Fprint(out, `package scan

// data from `+registryURL+`
// regenerate with: go run ./tools
var knownPorts = map[int]string{`)

	lastPort := ""
	reader := csv.NewReader(resp.Body)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// name, port, proto, ... keep the first tcp entry per port and
		// skip port ranges.
		if len(record) < 3 || record[2] != "tcp" || record[0] == "" || record[1] == "" {
			continue
		}
		if strings.Contains(record[1], "-") || record[1] == lastPort {
			continue
		}
		lastPort = record[1]
		fmt.Fprintf(out, "\n\t%s: %q,", record[1], record[0])
	}

	fmt.Fprintln(out, "\n}")
}
