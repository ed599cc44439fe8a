package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"Lee_Directory/internal/pkg"
)

// memAttempts 内存版失败计数
type memAttempts struct {
	counts map[string]int64
	err    error
}

func (m *memAttempts) Failures(_ context.Context, ip string) (int64, error) {
	return m.counts[ip], m.err
}

func (m *memAttempts) RecordFailure(_ context.Context, ip string, _ time.Duration) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.counts[ip]++
	return m.counts[ip], nil
}

func (m *memAttempts) Reset(_ context.Context, ip string) error {
	delete(m.counts, ip)
	return m.err
}

func newAuthService(t *testing.T, attempts LoginAttempts) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	signer, err := pkg.NewSessionSigner("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("signer: %v", err)
	}
	return NewAuthService(AuthConfig{Username: "admin", PasswordHash: string(hash), MaxFailures: 3}, signer, attempts)
}

func TestAuthService_Login(t *testing.T) {
	svc := newAuthService(t, nil)
	ctx := context.Background()

	res, err := svc.Login(ctx, "1.2.3.4", "admin", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Username != "admin" || res.Role != pkg.RoleAdmin || res.Token == "" {
		t.Fatalf("result = %+v", res)
	}
	claims, err := svc.Verify(res.Token)
	if err != nil || claims.Username != "admin" {
		t.Fatalf("verify: %v %+v", err, claims)
	}

	for _, tc := range [][2]string{{"admin", "wrong"}, {"root", "s3cret"}, {"", ""}} {
		if _, err := svc.Login(ctx, "1.2.3.4", tc[0], tc[1]); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("%v: expected ErrInvalidCredentials, got %v", tc, err)
		}
	}
}

func TestAuthService_Throttle(t *testing.T) {
	attempts := &memAttempts{counts: map[string]int64{}}
	svc := newAuthService(t, attempts)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Login(ctx, "9.9.9.9", "admin", "nope"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d: %v", i, err)
		}
	}
	if _, err := svc.Login(ctx, "9.9.9.9", "admin", "s3cret"); !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
	// 其他 IP 不受影响，成功后清零
	if _, err := svc.Login(ctx, "8.8.8.8", "admin", "nope"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("other ip: %v", err)
	}
	if _, err := svc.Login(ctx, "8.8.8.8", "admin", "s3cret"); err != nil {
		t.Fatalf("other ip login: %v", err)
	}
	if attempts.counts["8.8.8.8"] != 0 {
		t.Fatalf("counter not reset")
	}
}

func TestAuthService_ThrottleStoreDown(t *testing.T) {
	svc := newAuthService(t, &memAttempts{counts: map[string]int64{}, err: errors.New("redis down")})
	if _, err := svc.Login(context.Background(), "1.1.1.1", "admin", "s3cret"); err != nil {
		t.Fatalf("login must not depend on the throttle store: %v", err)
	}
}

func TestAuthService_NoHashConfigured(t *testing.T) {
	signer, _ := pkg.NewSessionSigner("k", time.Hour)
	svc := NewAuthService(AuthConfig{Username: "admin"}, signer, nil)
	if _, err := svc.Login(context.Background(), "", "admin", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
