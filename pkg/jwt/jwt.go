package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"study-buddy/backend/config"
)

var (
	ErrTokenExpired = errors.New("session 已过期")
	ErrTokenInvalid = errors.New("session 无效")
)

const issuer = "study-buddy"

// Identity 登录成功后写入会话的 GitHub 身份
type Identity struct {
	GitHubID    int64
	Login       string
	DisplayName string
	AvatarURL   string
}

// Claims 会话 Token 声明
type Claims struct {
	GitHubID    int64  `json:"github_id"`
	Login       string `json:"login"`
	DisplayName string `json:"display_name,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	jwtv5.RegisteredClaims
}

// Name 展示用名称，优先 DisplayName
func (c *Claims) Name() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.Login
}

// Manager 会话 Token 管理器
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager 创建会话 Token 管理器
func NewManager(cfg *config.AuthConfig) *Manager {
	return &Manager{
		secret: []byte(cfg.SessionSecret),
		ttl:    cfg.SessionTTL,
	}
}

// GenerateSessionToken 为已认证的 GitHub 身份签发会话 Token
func (m *Manager) GenerateSessionToken(id Identity) (string, error) {
	now := time.Now()
	claims := Claims{
		GitHubID:    id.GitHubID,
		Login:       id.Login,
		DisplayName: id.DisplayName,
		AvatarURL:   id.AvatarURL,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   id.Login,
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(m.ttl)),
			Issuer:    issuer,
		},
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseToken 解析并验证会话 Token
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	}, jwtv5.WithIssuer(issuer))

	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
