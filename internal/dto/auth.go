package dto

// ── 认证模块 DTO ──

// OAuthCallbackRequest GitHub 回调查询参数
type OAuthCallbackRequest struct {
	Code  string `form:"code"`
	State string `form:"state"`
	Error string `form:"error"`
}

// GitHubProfile GitHub /user 接口返回的用户资料（仅取所需字段）
type GitHubProfile struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// SessionResult 登录成功后签发的会话
type SessionResult struct {
	Token   string
	Profile GitHubProfile
}
