package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var errNotDecimal = errors.New("not a decimal literal")

// Count 是十进制整数，envconfig 默认按 ParseInt(s, 0, …) 解析，"010" 会被当成八进制
type Count int

func (c *Count) Decode(value string) error {
	n, err := strconv.ParseInt(value, 10, 0)
	if err != nil {
		return err
	}
	*c = Count(n)
	return nil
}

func (c Count) Int() int {
	return int(c)
}

// Decimal 是十进制实数，拒绝 0x1p4 这类十六进制浮点写法
type Decimal float64

func (d *Decimal) Decode(value string) error {
	digits := strings.TrimLeft(value, "+-")
	if len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		return fmt.Errorf("%w: %q", errNotDecimal, value)
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return err
	}
	*d = Decimal(f)
	return nil
}

func (d Decimal) Float64() float64 {
	return float64(d)
}
