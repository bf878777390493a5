package services

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"maps"
	"strconv"
	"sync"

	"github.com/sagrop_cms/internal/config"
)

// ConfigService 保存可在运行时修改的客户端配置
type ConfigService struct {
	mu             sync.RWMutex
	values         map[string]any
	defaultMaxSize int64
	logger         *slog.Logger
}

// NewConfigService 根据启动配置生成 appName、apiVersion、maxUploadSize、apiUrl 与 configHash
func NewConfigService(cfg *config.Configuration, logger *slog.Logger) *ConfigService {
	apiURL := cfg.APIURL()
	logger.Info("Generated API URL", "apiUrl", apiURL)

	return &ConfigService{
		values: map[string]any{
			"appName":       cfg.AppName,
			"apiVersion":    cfg.APIVersion,
			"maxUploadSize": cfg.MaxUploadSize,
			"apiUrl":        apiURL,
			"configHash":    configHash(apiURL, cfg.MaxUploadSize),
		},
		defaultMaxSize: cfg.MaxUploadSize,
		logger:         logger,
	}
}

func configHash(apiURL string, maxUploadSize int64) string {
	data, _ := json.Marshal(struct {
		APIURL        string `json:"apiUrl"`
		MaxUploadSize int64  `json:"maxUploadSize"`
	}{apiURL, maxUploadSize})
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Get 返回当前配置的副本
func (s *ConfigService) Get() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.values)
}

// Update 把 JSON 对象浅合并进当前配置，返回合并后的副本
func (s *ConfigService) Update(raw []byte) (map[string]any, error) {
	const op = "config.update"

	var patch map[string]any
	if err := json.Unmarshal(raw, &patch); err != nil || patch == nil {
		return nil, newError(KindValidation, op, "Configuration must be a JSON object.", err)
	}

	s.mu.Lock()
	maps.Copy(s.values, patch)
	merged := maps.Clone(s.values)
	s.mu.Unlock()

	s.logger.Info("Configuration updated successfully", "keys", len(patch))
	return merged, nil
}

// MaxUploadSize 返回当前的上传大小上限；配置值不可用时回退到启动值
func (s *ConfigService) MaxUploadSize() int64 {
	s.mu.RLock()
	v := s.values["maxUploadSize"]
	s.mu.RUnlock()

	var size int64
	switch n := v.(type) {
	case int64:
		size = n
	case float64:
		size = int64(n)
	case string:
		size, _ = strconv.ParseInt(n, 10, 64)
	}
	if size <= 0 {
		return s.defaultMaxSize
	}
	return size
}
