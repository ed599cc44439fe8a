package main

import (
	"bytes"
	"strings"
	"testing"
)

func execute(args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestHashThenVerify(t *testing.T) {
	out, err := execute("hash", "s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	hash := strings.TrimSpace(strings.SplitN(out, "\n", 2)[0])
	if !strings.HasPrefix(hash, "$2a$10$") {
		t.Fatalf("unexpected hash %q", hash)
	}
	if !strings.Contains(out, "APP_AUTH_ADMIN_PASSWORD_HASH=") {
		t.Fatalf("config hint missing: %s", out)
	}

	out, err = execute("verify", "s3cret", hash)
	if err != nil || !strings.Contains(out, "match") {
		t.Fatalf("verify: %v %s", err, out)
	}
	out, err = execute("verify", "wrong", hash)
	if err == nil || !strings.Contains(out, "no match") {
		t.Fatalf("wrong password should not match: %v %s", err, out)
	}
}

func TestVerifyBadHash(t *testing.T) {
	if _, err := execute("verify", "x", "not-a-hash"); err == nil {
		t.Fatalf("expected error for malformed hash")
	}
}
