package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gtoxlili/evoTrade/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadEnvFileMissingIsIgnored(t *testing.T) {
	clearEnv(t)
	require.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), ".env")))

	settings, err := NewStore().Load()
	require.NoError(t, err)
	assert.Equal(t, entity.Binance, settings.Trading.Exchange)
}

func TestLoadEnvFileDotenv(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, ".env", `# local overrides
DEFAULT_EXCHANGE=kraken
DEFAULT_TIMEFRAME=4h
INITIAL_CAPITAL=5000
POPULATION_SIZE=80
`)
	// 进程环境变量优先于文件
	t.Setenv("INITIAL_CAPITAL", "1234")

	require.NoError(t, LoadEnvFile(path))

	settings, err := NewStore().Load()
	require.NoError(t, err)
	assert.Equal(t, entity.Kraken, settings.Trading.Exchange)
	assert.Equal(t, entity.FourHours, settings.Trading.Timeframe)
	assert.InDelta(t, 1234.0, settings.Trading.InitialCapital.Float64(), 1e-9)
	assert.Equal(t, 80, settings.Evolution.PopulationSize.Int())
	assert.Equal(t, 100, settings.Evolution.Generations.Int())
}

func TestLoadEnvFileEmptyValueIsNotDefault(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, ".env", "DEFAULT_EXCHANGE=\n")
	require.NoError(t, LoadEnvFile(path))

	_, err := NewStore().LoadTradingParameters()
	requireConfigError(t, err, KindInvalidValue, "DEFAULT_EXCHANGE")
}

func TestLoadEnvFileJSON(t *testing.T) {
	clearEnv(t)
	// 手工编辑的文件：尾逗号、数字和布尔值
	path := writeFile(t, "overrides.json", `{
  "DEFAULT_EXCHANGE": "coinbase",
  "MAX_POSITION_SIZE": 0.25,
  "GENERATIONS": 40,
  "MUTATION_RATE": "0.2",
}`)
	t.Setenv("GENERATIONS", "10")

	require.NoError(t, LoadEnvFile(path))

	settings, err := NewStore().Load()
	require.NoError(t, err)
	assert.Equal(t, entity.Coinbase, settings.Trading.Exchange)
	assert.InDelta(t, 0.25, settings.Trading.MaxPositionSize.Float64(), 1e-9)
	assert.Equal(t, 10, settings.Evolution.Generations.Int())
	assert.InDelta(t, 0.2, settings.Evolution.MutationRate.Float64(), 1e-9)
}

func TestLoadEnvFileJSONRejectsNestedValues(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "bad.json", `{"DEFAULT_EXCHANGE": {"name": "binance"}}`)
	err := LoadEnvFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEFAULT_EXCHANGE")
}

func TestLoadEnvFileJSONIsAllOrNothing(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "partial.json", `{
  "DEFAULT_TIMEFRAME": "4h",
  "POPULATION_SIZE": 20,
  "DEFAULT_EXCHANGE": ["binance"],
  "GENERATIONS": "7"
}`)

	require.Error(t, LoadEnvFile(path))
	for _, key := range []string{"DEFAULT_TIMEFRAME", "POPULATION_SIZE", "DEFAULT_EXCHANGE", "GENERATIONS"} {
		_, exists := os.LookupEnv(key)
		assert.False(t, exists, key)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEFAULT_EXCHANGE", "bybit")
	t.Setenv("DEFAULT_TIMEFRAME", "1d")
	t.Setenv("INITIAL_CAPITAL", "123456.789")
	t.Setenv("MAX_POSITION_SIZE", "0.05")
	t.Setenv("STOP_LOSS_PCT", "1.25")
	t.Setenv("POPULATION_SIZE", "64")
	t.Setenv("ELITISM_COUNT", "8")
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "warn")

	want, err := NewStore().Load()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), DefaultSnapshotPath)
	require.NoError(t, SaveSnapshot(path, want))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "DEFAULT_EXCHANGE")

	clearEnv(t)
	require.NoError(t, LoadEnvFile(path))

	got, err := NewStore().Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
