package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	json "github.com/bytedance/sonic"
	"github.com/gtoxlili/evoTrade/logger"
	"github.com/joho/godotenv"
	"github.com/kaptinlin/jsonrepair"
)

// LoadEnvFile 在进程启动时把本地覆盖文件合并进环境变量，已存在的环境变量优先。
// 文件不存在不算错误。*.json 按快照格式读取，其余按 KEY=value 读取。
func LoadEnvFile(path string) error {
	if path == "" {
		path = DefaultEnvFile
	}
	log := logger.WithComponent("config")

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug().Str("path", path).Msg("no override file")
			return nil
		}
		return fmt.Errorf("failed to stat override file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		applied, err := loadJSONOverrides(path)
		if err != nil {
			return err
		}
		log.Info().Str("path", path).Int("applied", applied).Msg("override file merged")
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load override file %s: %w", path, err)
	}
	log.Info().Str("path", path).Msg("override file merged")
	return nil
}

func loadJSONOverrides(path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read override file %s: %w", path, err)
	}
	// 允许手工编辑留下的尾逗号、注释等
	repaired, err := jsonrepair.JSONRepair(string(raw))
	if err != nil {
		return 0, fmt.Errorf("failed to repair JSON in %s: %w", path, err)
	}

	var values map[string]any
	if err := json.Unmarshal([]byte(repaired), &values); err != nil {
		return 0, fmt.Errorf("failed to parse override file %s: %w", path, err)
	}

	// 先整体转换，任一项非法时不写入任何变量
	pending := make(map[string]string, len(values))
	for key, v := range values {
		value, ok := stringify(v)
		if !ok {
			return 0, fmt.Errorf("override file %s: %s must be a string, number or boolean", path, key)
		}
		pending[key] = value
	}

	applied := 0
	for key, value := range pending {
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return applied, fmt.Errorf("failed to set %s: %w", key, err)
		}
		applied++
	}
	return applied, nil
}

func stringify(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(val), true
	default:
		return "", false
	}
}
