package dto

// ── 系统接口响应 ──

// RootResponse GET / 服务状态
type RootResponse struct {
	Message   string `json:"message"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Session   string `json:"session"`
}

// HealthResponse GET /health
type HealthResponse struct {
	Status string `json:"status"`
}
