package scan

import (
	"errors"
	"reflect"
	"sort"
	"testing"
)

func TestParsePorts_Valid(t *testing.T) {
	cases := map[string][]int{
		"22":              {22},
		"22,80":           {22, 80},
		"80,22,80":        {22, 80},
		"1-3":             {1, 2, 3},
		"22,80,8000-8002": {22, 80, 8000, 8001, 8002},
		"8000-7999":       {7999, 8000},
		"0,70000,443":     {443},
		"22,,80":          {22, 80},
		" 22 , 80 ":       {22, 80},
		"70000-70010":     {},
		"":                {},
		"65534-70000":     {65534, 65535},
		"0-2":             {1, 2},
	}
	for spec, want := range cases {
		t.Run(spec, func(t *testing.T) {
			got, err := ParsePorts(spec)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("got %v want %v", got, want)
			}
		})
	}
}

func TestParsePorts_Invalid(t *testing.T) {
	cases := map[string]string{
		"22,abc":    "abc",
		"abc":       "abc",
		"1-x":       "1-x",
		"x-99":      "x-99",
		"22,80,1.5": "1.5",
	}
	for spec, token := range cases {
		t.Run(spec, func(t *testing.T) {
			_, err := ParsePorts(spec)
			if err == nil {
				t.Fatalf("expected error for spec %q", spec)
			}
			var specErr *SpecError
			if !errors.As(err, &specErr) {
				t.Fatalf("expected SpecError, got %T", err)
			}
			if specErr.Token != token {
				t.Fatalf("got token %q want %q", specErr.Token, token)
			}
		})
	}
}

func TestParsePorts_SortedUniqueInRange(t *testing.T) {
	got, err := ParsePorts("1000-1100,1050-1150,80,80,443")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sort.IntsAreSorted(got) {
		t.Fatalf("result not sorted: %v", got)
	}
	seen := make(map[int]struct{})
	for _, p := range got {
		if p < 1 || p > 65535 {
			t.Fatalf("port %d out of range", p)
		}
		if _, dup := seen[p]; dup {
			t.Fatalf("duplicate port %d", p)
		}
		seen[p] = struct{}{}
	}
	if len(got) != 153 { // 1000..1150 plus 80 and 443
		t.Fatalf("got %d ports, want 153", len(got))
	}
}

func TestDescribePort(t *testing.T) {
	if s := DescribePort(80); s != "http" {
		t.Errorf("DescribePort(80) = %q, want http", s)
	}
	if s := DescribePort(22); s != "ssh" {
		t.Errorf("DescribePort(22) = %q, want ssh", s)
	}
	if s := DescribePort(47123); s != "-" {
		t.Errorf("DescribePort(47123) = %q, want -", s)
	}
}
