package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"study-buddy/backend/config"
	"study-buddy/backend/internal/dto"
	"study-buddy/backend/pkg/jwt"
)

// ── 测试辅助 ──

type fakeProvider struct {
	profile  *dto.GitHubProfile
	err      error
	gotCodes []string
}

func (p *fakeProvider) AuthCodeURL(state string) string {
	return "https://github.com/login/oauth/authorize?state=" + state
}

func (p *fakeProvider) Exchange(_ context.Context, code string) (*dto.GitHubProfile, error) {
	p.gotCodes = append(p.gotCodes, code)
	if p.err != nil {
		return nil, p.err
	}
	return p.profile, nil
}

type fakeBlacklist struct {
	revoked map[string]time.Duration
	err     error
}

func newFakeBlacklist() *fakeBlacklist {
	return &fakeBlacklist{revoked: make(map[string]time.Duration)}
}

func (b *fakeBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	if b.err != nil {
		return b.err
	}
	b.revoked[jti] = ttl
	return nil
}

func (b *fakeBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	if b.err != nil {
		return false, b.err
	}
	_, ok := b.revoked[jti]
	return ok, nil
}

func newTestJWTManager() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		SessionSecret: "test-session-secret-0123456789",
		SessionTTL:    time.Hour,
	})
}

func setupTestAuthService() (AuthService, *fakeProvider, *fakeBlacklist) {
	provider := &fakeProvider{profile: &dto.GitHubProfile{ID: 42, Login: "octocat", Name: "The Octocat"}}
	blacklist := newFakeBlacklist()
	return NewAuthService(provider, newTestJWTManager(), blacklist, testLogger), provider, blacklist
}

// ── BeginLogin 测试 ──

func TestAuthService_BeginLogin(t *testing.T) {
	svc, _, _ := setupTestAuthService()

	url, state, err := svc.BeginLogin()
	if err != nil {
		t.Fatalf("BeginLogin 应成功: %v", err)
	}
	if state == "" || !strings.HasSuffix(url, "state="+state) {
		t.Errorf("跳转地址应携带 state: url=%s state=%s", url, state)
	}

	_, state2, _ := svc.BeginLogin()
	if state == state2 {
		t.Error("每次登录的 state 应不同")
	}
}

// ── CompleteLogin 测试 ──

func TestAuthService_CompleteLogin_Failures(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.OAuthCallbackRequest
		expected string
		exchErr  error
		wantErr  error
	}{
		{"用户拒绝授权", dto.OAuthCallbackRequest{Error: "access_denied", State: "s1"}, "s1", nil, ErrOAuthDenied},
		{"state 不匹配", dto.OAuthCallbackRequest{Code: "c", State: "forged"}, "s1", nil, ErrOAuthStateMismatch},
		{"缺少 state cookie", dto.OAuthCallbackRequest{Code: "c", State: ""}, "", nil, ErrOAuthStateMismatch},
		{"缺少 code", dto.OAuthCallbackRequest{State: "s1"}, "s1", nil, ErrOAuthExchange},
		{"交换失败", dto.OAuthCallbackRequest{Code: "c", State: "s1"}, "s1", errors.New("bad_verification_code"), ErrOAuthExchange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, provider, _ := setupTestAuthService()
			provider.err = tt.exchErr

			_, err := svc.CompleteLogin(context.Background(), &tt.req, tt.expected)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("期望 %v，实际: %v", tt.wantErr, err)
			}
		})
	}
}

func TestAuthService_CompleteLogin_Success(t *testing.T) {
	svc, provider, _ := setupTestAuthService()

	result, err := svc.CompleteLogin(context.Background(), &dto.OAuthCallbackRequest{Code: "abc", State: "s1"}, "s1")
	if err != nil {
		t.Fatalf("CompleteLogin 应成功: %v", err)
	}
	if len(provider.gotCodes) != 1 || provider.gotCodes[0] != "abc" {
		t.Errorf("应使用回调中的 code 交换: %v", provider.gotCodes)
	}

	claims, err := svc.Authenticate(context.Background(), result.Token)
	if err != nil {
		t.Fatalf("签发的会话应可通过认证: %v", err)
	}
	if claims.GitHubID != 42 || claims.Login != "octocat" || claims.Name() != "The Octocat" {
		t.Errorf("会话身份不符: %+v", claims)
	}
}

// ── Authenticate 测试 ──

func TestAuthService_Authenticate_Rejects(t *testing.T) {
	svc, _, _ := setupTestAuthService()

	for _, token := range []string{"", "not-a-jwt"} {
		if _, err := svc.Authenticate(context.Background(), token); !errors.Is(err, ErrNotAuthenticated) {
			t.Errorf("token=%q 期望 ErrNotAuthenticated，实际: %v", token, err)
		}
	}

	// 其他密钥签发的 Token
	other := jwt.NewManager(&config.AuthConfig{SessionSecret: "another-secret-9876543210", SessionTTL: time.Hour})
	forged, _ := other.GenerateSessionToken(jwt.Identity{GitHubID: 1, Login: "mallory"})
	if _, err := svc.Authenticate(context.Background(), forged); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("伪造 Token 期望 ErrNotAuthenticated，实际: %v", err)
	}
}

func TestAuthService_Authenticate_BlacklistUnavailable(t *testing.T) {
	svc, _, blacklist := setupTestAuthService()
	token, _ := newTestJWTManager().GenerateSessionToken(jwt.Identity{GitHubID: 7, Login: "dev"})

	blacklist.err = errors.New("redis: connection refused")
	claims, err := svc.Authenticate(context.Background(), token)
	if err != nil {
		t.Fatalf("吊销列表不可用时应降级放行: %v", err)
	}
	if claims.Login != "dev" {
		t.Errorf("Login 不符: %s", claims.Login)
	}
}

// ── Logout 测试 ──

func TestAuthService_Logout_RevokesSession(t *testing.T) {
	svc, _, blacklist := setupTestAuthService()
	token, _ := newTestJWTManager().GenerateSessionToken(jwt.Identity{GitHubID: 7, Login: "dev"})

	if _, err := svc.Authenticate(context.Background(), token); err != nil {
		t.Fatalf("登出前应可认证: %v", err)
	}
	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("Logout 应成功: %v", err)
	}
	if len(blacklist.revoked) != 1 {
		t.Fatalf("应吊销 1 个会话，实际 %d", len(blacklist.revoked))
	}
	for _, ttl := range blacklist.revoked {
		if ttl <= 0 || ttl > time.Hour {
			t.Errorf("吊销时长应为剩余有效期，实际 %v", ttl)
		}
	}
	if _, err := svc.Authenticate(context.Background(), token); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("登出后期望 ErrNotAuthenticated，实际: %v", err)
	}
}

func TestAuthService_Logout_Tolerant(t *testing.T) {
	svc, _, blacklist := setupTestAuthService()

	for _, token := range []string{"", "garbage"} {
		if err := svc.Logout(context.Background(), token); err != nil {
			t.Errorf("token=%q 登出应视为成功: %v", token, err)
		}
	}
	if len(blacklist.revoked) != 0 {
		t.Error("无效会话不应写入吊销列表")
	}

	noRedis := NewAuthService(&fakeProvider{}, newTestJWTManager(), nil, testLogger)
	token, _ := newTestJWTManager().GenerateSessionToken(jwt.Identity{GitHubID: 7, Login: "dev"})
	if err := noRedis.Logout(context.Background(), token); err != nil {
		t.Errorf("无吊销列表时登出应成功: %v", err)
	}
}
