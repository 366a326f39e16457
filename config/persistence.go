package config

import (
	"fmt"
	"os"
	"sync"

	json "github.com/bytedance/sonic"
)

var mu sync.Mutex

// SaveSnapshot 以环境变量的形式保存当前生效的配置，可再由 LoadEnvFile 读回
func SaveSnapshot(path string, s Settings) error {
	data, err := json.MarshalIndent(s.Environ(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if err := os.WriteFile(path, append(data, '\n'), snapshotFileMode); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", path, err)
	}
	return nil
}
