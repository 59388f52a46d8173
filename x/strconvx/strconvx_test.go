package strconvx

import "testing"

func TestFormatIntUintBases(t *testing.T) {
	type C struct {
		u    uint64
		base int
		want string
	}
	for _, c := range []C{
		{0, 10, "0"},
		{5, 2, "101"},
		{255, 16, "ff"},
		{4095, 10, "4095"},
		{35, 36, "z"},
	} {
		if got := FormatUint(c.u, c.base); got != c.want {
			t.Fatalf("FormatUint(%d,%d) = %q, want %q", c.u, c.base, got, c.want)
		}
	}
	if got := FormatInt(-15, 10); got != "-15" {
		t.Fatalf("FormatInt(-15,10) = %q, want -15", got)
	}
	if got := Itoa(2048); got != "2048" {
		t.Fatalf("Itoa(2048) = %q", got)
	}
}

func TestParseUint(t *testing.T) {
	type C struct {
		s    string
		base int
		want uint64
	}
	for _, c := range []C{
		{"0", 10, 0},
		{"4095", 10, 4095},
		{"101", 2, 5},
		{"ff", 16, 255},
		{"FF", 16, 255},
	} {
		got, err := ParseUint(c.s, c.base, 64)
		if err != nil {
			t.Fatalf("ParseUint(%q,%d) error: %v", c.s, c.base, err)
		}
		if got != c.want {
			t.Fatalf("ParseUint(%q,%d) = %d, want %d", c.s, c.base, got, c.want)
		}
	}
}

func TestParseUintErrors(t *testing.T) {
	for _, s := range []string{"", "g", "2", "0b102", "-1"} {
		if _, err := ParseUint(s, 2, 64); err == nil {
			t.Fatalf("ParseUint(%q,2) expected error", s)
		}
	}
	if _, err := ParseUint("65536", 10, 16); err == nil {
		t.Fatal("ParseUint(65536, bitSize 16) expected range error")
	}
}
