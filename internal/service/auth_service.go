package service

import (
	"context"
	"errors"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"

	"study-buddy/backend/internal/dto"
	pkgerrors "study-buddy/backend/pkg/errors"
	"study-buddy/backend/pkg/jwt"
)

// ── 认证模块业务错误 ──

var (
	ErrNotAuthenticated   = pkgerrors.Unauthorized("You do not have access.")
	ErrOAuthStateMismatch = pkgerrors.Unauthorized("Authentication failed: invalid OAuth state")
	ErrOAuthDenied        = pkgerrors.Unauthorized("Authentication failed: authorization was denied")
	ErrOAuthExchange      = pkgerrors.Unauthorized("Authentication failed: could not verify GitHub account")
)

// OAuthProvider 第三方登录提供方
type OAuthProvider interface {
	AuthCodeURL(state string) string
	// Exchange 用授权码换取令牌并读取用户资料
	Exchange(ctx context.Context, code string) (*dto.GitHubProfile, error)
}

// TokenBlacklist 会话吊销列表（Redis 实现，可为 nil）
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// AuthService 认证业务接口
type AuthService interface {
	// BeginLogin 生成 state 与跳转地址
	BeginLogin() (redirectURL, state string, err error)
	// CompleteLogin 校验回调并签发会话 Token
	CompleteLogin(ctx context.Context, req *dto.OAuthCallbackRequest, expectedState string) (*dto.SessionResult, error)
	// Authenticate 校验会话 Token，是路由层唯一需要的认证能力
	Authenticate(ctx context.Context, token string) (*jwt.Claims, error)
	// Logout 吊销会话；Token 无效或已过期时视为已登出
	Logout(ctx context.Context, token string) error
}

type authService struct {
	provider  OAuthProvider
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService 创建 AuthService 实例
// blacklist 为 nil 时不支持服务端吊销，仅依赖 Token 过期
func NewAuthService(provider OAuthProvider, jwtMgr *jwt.Manager, blacklist TokenBlacklist, logger *zap.Logger) AuthService {
	return &authService{
		provider:  provider,
		jwtMgr:    jwtMgr,
		blacklist: blacklist,
		logger:    logger,
	}
}

func (s *authService) BeginLogin() (string, string, error) {
	state, err := gonanoid.New()
	if err != nil {
		s.logger.Error("生成 OAuth state 失败", zap.Error(err))
		return "", "", pkgerrors.Internal(err)
	}
	return s.provider.AuthCodeURL(state), state, nil
}

func (s *authService) CompleteLogin(ctx context.Context, req *dto.OAuthCallbackRequest, expectedState string) (*dto.SessionResult, error) {
	if req.Error != "" {
		s.logger.Warn("GitHub 拒绝授权", zap.String("error", req.Error))
		return nil, ErrOAuthDenied
	}
	if expectedState == "" || req.State != expectedState {
		return nil, ErrOAuthStateMismatch
	}
	if req.Code == "" {
		return nil, ErrOAuthExchange
	}

	profile, err := s.provider.Exchange(ctx, req.Code)
	if err != nil {
		s.logger.Warn("GitHub 授权码交换失败", zap.Error(err))
		return nil, ErrOAuthExchange
	}

	token, err := s.jwtMgr.GenerateSessionToken(jwt.Identity{
		GitHubID:    profile.ID,
		Login:       profile.Login,
		DisplayName: profile.Name,
		AvatarURL:   profile.AvatarURL,
	})
	if err != nil {
		s.logger.Error("签发会话失败", zap.Error(err))
		return nil, pkgerrors.Internal(err)
	}

	s.logger.Info("用户登录", zap.String("login", profile.Login), zap.Int64("github_id", profile.ID))

	return &dto.SessionResult{Token: token, Profile: *profile}, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*jwt.Claims, error) {
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	claims, err := s.jwtMgr.ParseToken(token)
	if err != nil {
		return nil, ErrNotAuthenticated
	}

	if s.blacklist != nil {
		revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			// Redis 故障时降级放行
			s.logger.Warn("检查会话吊销失败", zap.String("jti", claims.ID), zap.Error(err))
		} else if revoked {
			return nil, ErrNotAuthenticated
		}
	}

	return claims, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	claims, err := s.jwtMgr.ParseToken(token)
	if err != nil {
		if !errors.Is(err, jwt.ErrTokenExpired) {
			s.logger.Debug("登出时会话无效", zap.Error(err))
		}
		return nil
	}

	if s.blacklist == nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.blacklist.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("吊销会话失败", zap.String("jti", claims.ID), zap.Error(err))
		return pkgerrors.Internal(err)
	}

	s.logger.Info("用户登出", zap.String("login", claims.Login))
	return nil
}
