package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"study-buddy/backend/config"
	"study-buddy/backend/internal/dto"
)

const githubUserURL = "https://api.github.com/user"

// githubProvider 基于 golang.org/x/oauth2 的 GitHub 登录
type githubProvider struct {
	conf    *oauth2.Config
	userURL string
}

// NewGitHubProvider 创建 GitHub OAuthProvider
func NewGitHubProvider(cfg *config.GitHubConfig) OAuthProvider {
	return newGitHubProvider(&oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.CallbackURL,
		Endpoint:     github.Endpoint,
		Scopes:       []string{"read:user"},
	}, githubUserURL)
}

func newGitHubProvider(conf *oauth2.Config, userURL string) *githubProvider {
	return &githubProvider{conf: conf, userURL: userURL}
}

func (p *githubProvider) AuthCodeURL(state string) string {
	return p.conf.AuthCodeURL(state)
}

func (p *githubProvider) Exchange(ctx context.Context, code string) (*dto.GitHubProfile, error) {
	token, err := p.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("交换授权码失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := p.conf.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("获取 GitHub 用户失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("获取 GitHub 用户失败: HTTP %d", resp.StatusCode)
	}

	var profile dto.GitHubProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("解析 GitHub 用户失败: %w", err)
	}
	if profile.ID == 0 || profile.Login == "" {
		return nil, fmt.Errorf("GitHub 用户资料不完整")
	}

	return &profile, nil
}
