package pkg

import (
	"encoding/json"
	"testing"
)

func TestPatch_Unmarshal(t *testing.T) {
	var body struct {
		A Patch[string] `json:"a"`
		B Patch[string] `json:"b"`
		C Patch[string] `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a":"x","b":null}`), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !body.A.Set || body.A.Value == nil || *body.A.Value != "x" {
		t.Fatalf("a = %+v", body.A)
	}
	if !body.B.Set || body.B.Value != nil {
		t.Fatalf("b = %+v", body.B)
	}
	if body.C.Set {
		t.Fatalf("c should be absent")
	}
}

func TestTrimOrNil(t *testing.T) {
	blank := "   "
	v := "  hi "
	if TrimOrNil(nil) != nil || TrimOrNil(&blank) != nil {
		t.Fatalf("expected nil")
	}
	if got := TrimOrNil(&v); got == nil || *got != "hi" {
		t.Fatalf("got %v", got)
	}
}
