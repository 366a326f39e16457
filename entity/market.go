package entity

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
)

// ErrUnsupported 表示取值不在封闭集合内
var ErrUnsupported = errors.New("unsupported value")

// Exchange 是支持的交易所
type Exchange string

const (
	Binance  Exchange = "binance"
	Coinbase Exchange = "coinbase"
	Kraken   Exchange = "kraken"
	Bybit    Exchange = "bybit"
)

var exchanges = []Exchange{Binance, Coinbase, Kraken, Bybit}

// Exchanges 按声明顺序返回全部交易所
func Exchanges() []Exchange {
	return append([]Exchange(nil), exchanges...)
}

// ParseExchange 精确匹配（区分大小写），不做任何归一化
func ParseExchange(s string) (Exchange, error) {
	e := Exchange(s)
	if !e.IsValid() {
		return lo.Empty[Exchange](), unsupported("exchange", s, exchanges)
	}
	return e, nil
}

func (e Exchange) IsValid() bool {
	return lo.Contains(exchanges, e)
}

func (e Exchange) String() string {
	return string(e)
}

// Decode 供 envconfig 使用
func (e *Exchange) Decode(value string) error {
	parsed, err := ParseExchange(value)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// Timeframe 是K线周期
type Timeframe string

const (
	OneMinute      Timeframe = "1m"
	FiveMinutes    Timeframe = "5m"
	FifteenMinutes Timeframe = "15m"
	OneHour        Timeframe = "1h"
	FourHours      Timeframe = "4h"
	OneDay         Timeframe = "1d"
)

var timeframeDurations = map[Timeframe]time.Duration{
	OneMinute:      time.Minute,
	FiveMinutes:    5 * time.Minute,
	FifteenMinutes: 15 * time.Minute,
	OneHour:        time.Hour,
	FourHours:      4 * time.Hour,
	OneDay:         24 * time.Hour,
}

var timeframes = []Timeframe{OneMinute, FiveMinutes, FifteenMinutes, OneHour, FourHours, OneDay}

func Timeframes() []Timeframe {
	return append([]Timeframe(nil), timeframes...)
}

func ParseTimeframe(s string) (Timeframe, error) {
	tf := Timeframe(s)
	if !tf.IsValid() {
		return lo.Empty[Timeframe](), unsupported("timeframe", s, timeframes)
	}
	return tf, nil
}

func (tf Timeframe) IsValid() bool {
	_, ok := timeframeDurations[tf]
	return ok
}

func (tf Timeframe) String() string {
	return string(tf)
}

// Duration 返回单根K线的时长，非法周期返回 0
func (tf Timeframe) Duration() time.Duration {
	return timeframeDurations[tf]
}

func (tf *Timeframe) Decode(value string) error {
	parsed, err := ParseTimeframe(value)
	if err != nil {
		return err
	}
	*tf = parsed
	return nil
}

func unsupported[T ~string](kind, value string, members []T) error {
	names := lo.Map(members, func(m T, _ int) string { return string(m) })
	return fmt.Errorf("%w: %s %q, expected one of %s", ErrUnsupported, kind, value, strings.Join(names, ", "))
}
