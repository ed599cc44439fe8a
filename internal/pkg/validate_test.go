package pkg

import (
	"errors"
	"testing"
)

type sample struct {
	Name string  `json:"name" validate:"required,min=2,max=5"`
	Slug string  `json:"slug" validate:"omitempty,slug"`
	Note *string `json:"note" validate:"omitempty,max=3"`
}

func TestValidate(t *testing.T) {
	if err := Validate(sample{Name: "ok"}); err != nil {
		t.Fatalf("valid input: %v", err)
	}

	note := "toolong"
	err := Validate(sample{Name: "", Slug: "Bad Slug", Note: &note})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	for _, f := range []string{"name", "slug", "note"} {
		if !ve.HasField(f) {
			t.Fatalf("missing field error for %s: %+v", f, ve.Fields)
		}
	}
	for _, f := range ve.Fields {
		if f.Message == "" {
			t.Fatalf("empty message for %s", f.Field)
		}
	}
}

func TestValidate_RuneLength(t *testing.T) {
	// 长度按字符计算
	if err := Validate(sample{Name: "中文名字"}); err != nil {
		t.Fatalf("4 characters must pass max=5: %v", err)
	}
}
