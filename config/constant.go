package config

import "os"

const (
	// DefaultEnvFile 进程启动时读取的本地覆盖文件
	DefaultEnvFile = ".env"
	// DefaultSnapshotPath 是 snapshot 命令的默认输出
	DefaultSnapshotPath = "config.snapshot.json"

	snapshotFileMode os.FileMode = 0644

	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// envTag 同时用于 envconfig 与校验错误中的字段名
const envTag = "envconfig"
