package config

import (
	"reflect"
	"strconv"

	"github.com/gtoxlili/evoTrade/entity"
	"github.com/samber/lo"
)

// TradingParameters 交易相关配置
type TradingParameters struct {
	Exchange        entity.Exchange  `json:"exchange" envconfig:"DEFAULT_EXCHANGE" default:"binance" validate:"exchange" desc:"exchange venue (binance, coinbase, kraken, bybit)"`
	Timeframe       entity.Timeframe `json:"timeframe" envconfig:"DEFAULT_TIMEFRAME" default:"1h" validate:"timeframe" desc:"candle interval (1m, 5m, 15m, 1h, 4h, 1d)"`
	InitialCapital  Decimal          `json:"initial_capital" envconfig:"INITIAL_CAPITAL" default:"10000" validate:"gt=0" desc:"starting capital in quote currency"`
	MaxPositionSize Decimal          `json:"max_position_size" envconfig:"MAX_POSITION_SIZE" default:"0.1" validate:"gt=0,lte=1" desc:"largest position as a fraction of capital"`
	MaxDrawdownPct  Decimal          `json:"max_drawdown_pct" envconfig:"MAX_DRAWDOWN_PCT" default:"20" validate:"gt=0" desc:"drawdown limit in percent"`
	StopLossPct     Decimal          `json:"stop_loss_pct" envconfig:"STOP_LOSS_PCT" default:"2" desc:"stop loss distance in percent"`
	TakeProfitPct   Decimal          `json:"take_profit_pct" envconfig:"TAKE_PROFIT_PCT" default:"4" desc:"take profit distance in percent"`
}

// EvolutionaryParameters 进化算法配置
type EvolutionaryParameters struct {
	PopulationSize Count   `json:"population_size" envconfig:"POPULATION_SIZE" default:"50" validate:"gt=0" desc:"individuals per generation"`
	Generations    Count   `json:"generations" envconfig:"GENERATIONS" default:"100" validate:"gt=0" desc:"number of generations"`
	MutationRate   Decimal `json:"mutation_rate" envconfig:"MUTATION_RATE" default:"0.1" validate:"gte=0,lte=1" desc:"per-gene mutation probability"`
	// ElitismCount 不能超过种群大小
	ElitismCount Count `json:"elitism_count" envconfig:"ELITISM_COUNT" default:"5" validate:"gte=0,ltefield=PopulationSize" desc:"individuals carried over unchanged"`
}

// RuntimeParameters 运行环境与日志
type RuntimeParameters struct {
	Environment string `json:"environment" envconfig:"APP_ENV" default:"development" validate:"oneof=development staging production" desc:"deployment environment"`
	LogLevel    string `json:"log_level" envconfig:"LOG_LEVEL" default:"info" validate:"oneof=trace debug info warn error" desc:"minimum log level"`
}

func (r RuntimeParameters) IsDevelopment() bool {
	return r.Environment == EnvDevelopment
}

// Settings 是全部配置组的聚合，只有全部合法时才会被构造出来
type Settings struct {
	Trading   TradingParameters      `json:"trading"`
	Evolution EvolutionaryParameters `json:"evolution"`
	Runtime   RuntimeParameters      `json:"runtime"`
}

func (s Settings) groups() []any {
	return []any{s.Trading, s.Evolution, s.Runtime}
}

// Environ 把配置还原为 环境变量名 -> 字符串值
func (s Settings) Environ() map[string]string {
	env := make(map[string]string)
	for _, group := range s.groups() {
		v := reflect.ValueOf(group)
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			key := t.Field(i).Tag.Get(envTag)
			if key == "" {
				continue
			}
			env[key] = formatValue(v.Field(i))
		}
	}
	return env
}

// Keys 返回所有配置组读取的环境变量名
func Keys() []string {
	return lo.Keys(Settings{}.Environ())
}

func formatValue(v reflect.Value) string {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	default:
		return v.String()
	}
}
