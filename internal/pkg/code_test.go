package pkg

import "testing"

func TestRandAlnum(t *testing.T) {
	code, err := RandAlnum(6)
	if err != nil {
		t.Fatalf("RandAlnum: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("len = %d", len(code))
	}
	for _, r := range code {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			t.Fatalf("non alnum rune %q in %q", r, code)
		}
	}
	if c, _ := RandAlnum(0); len(c) != DefaultAccessCode {
		t.Fatalf("default length not applied: %q", c)
	}
}
