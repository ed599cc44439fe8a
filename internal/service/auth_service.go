package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"Lee_Directory/internal/pkg"
)

// LoginAttempts 登录失败计数，nil 表示不限流
type LoginAttempts interface {
	Failures(ctx context.Context, ip string) (int64, error)
	RecordFailure(ctx context.Context, ip string, window time.Duration) (int64, error)
	Reset(ctx context.Context, ip string) error
}

type AuthConfig struct {
	Username     string
	PasswordHash string
	MaxFailures  int
	LockWindow   time.Duration
}

type AuthService struct {
	cfg      AuthConfig
	signer   *pkg.SessionSigner
	attempts LoginAttempts
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Username  string
	Role      string
}

func NewAuthService(cfg AuthConfig, signer *pkg.SessionSigner, attempts LoginAttempts) *AuthService {
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = 5
	}
	if cfg.LockWindow <= 0 {
		cfg.LockWindow = 15 * time.Minute
	}
	return &AuthService{cfg: cfg, signer: signer, attempts: attempts}
}

func (s *AuthService) SessionTTL() time.Duration {
	return s.signer.TTL()
}

// Login 校验管理员账号密码并签发会话令牌
func (s *AuthService) Login(ctx context.Context, ip, username, password string) (*LoginResult, error) {
	if s.attempts != nil {
		n, err := s.attempts.Failures(ctx, ip)
		if err != nil {
			log.Warn().Err(err).Str("ip", ip).Msg("login throttle unavailable")
		} else if n >= int64(s.cfg.MaxFailures) {
			return nil, ErrTooManyAttempts
		}
	}

	if !s.checkCredentials(username, password) {
		if s.attempts != nil {
			if _, err := s.attempts.RecordFailure(ctx, ip, s.cfg.LockWindow); err != nil {
				log.Warn().Err(err).Str("ip", ip).Msg("record login failure")
			}
		}
		return nil, ErrInvalidCredentials
	}

	if s.attempts != nil {
		if err := s.attempts.Reset(ctx, ip); err != nil {
			log.Warn().Err(err).Str("ip", ip).Msg("reset login failures")
		}
	}

	token, exp, err := s.signer.Issue(username)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: exp, Username: username, Role: pkg.RoleAdmin}, nil
}

func (s *AuthService) checkCredentials(username, password string) bool {
	if s.cfg.PasswordHash == "" {
		log.Warn().Msg("admin password hash is not configured")
		return false
	}
	// 用户名不对也跑一次 bcrypt
	pwErr := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(password))
	return username == s.cfg.Username && pwErr == nil
}

// Verify 只看签名和过期时间，登出后令牌在过期前仍然有效
func (s *AuthService) Verify(token string) (*pkg.SessionClaims, error) {
	return s.signer.Verify(token)
}
