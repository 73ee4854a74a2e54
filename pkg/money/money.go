// Package money 金额类型
//
// 价格统一以"分"为单位用int64存储（避免浮点数精度问题），
// JSON中仍以十进制数字表示（如 12.5），超过两位小数的输入被拒绝。
package money

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrTooPrecise    = errors.New("amount has more than two fractional digits")
)

// Cents 金额（单位：分）
type Cents int64

// FromFloat 十进制金额 → 分（四舍五入，远离零）
func FromFloat(v float64) Cents {
	return Cents(math.Round(v * 100))
}

// Float 分 → 十进制金额
func (c Cents) Float() float64 {
	return float64(c) / 100
}

// Mul 单价 × 数量
func (c Cents) Mul(quantity int) Cents {
	return c * Cents(quantity)
}

// String 保留两位小数，仅用于展示
func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON 输出十进制数字（12.50 → 12.5）
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(c.Float(), 'f', -1, 64)), nil
}

// UnmarshalJSON 接受JSON数字或数字字符串
func (c *Cents) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		*c = 0
		return nil
	}
	v, err := Parse(string(data))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Parse 解析十进制金额文本，精确到分
// 只接受十进制字面量(可带指数)，小数超过两位时报错而不是四舍五入，
// 保证写入的值与读回的值一致
func Parse(s string) (Cents, error) {
	if !isDecimal(s) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	r.Mul(r, big.NewRat(100, 1))
	if !r.IsInt() {
		return 0, fmt.Errorf("%w: %q", ErrTooPrecise, s)
	}
	if !r.Num().IsInt64() {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidAmount, s)
	}
	return Cents(r.Num().Int64()), nil
}

// isDecimal [+-]digits[.digits][(e|E)[+-]digits]
// 排除big.Rat额外接受的分数(1/3)、十六进制等写法
func isDecimal(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	intDigits := digits(s[i:])
	i += intDigits
	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		i++
		fracDigits = digits(s[i:])
		i += fracDigits
	}
	if intDigits == 0 && fracDigits == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		// 指数最多两位，避免1e999999999这类输入让big.Rat分配巨大的整数
		n := digits(s[i:])
		if n == 0 || n > 2 {
			return false
		}
		i += n
	}
	return i == len(s)
}

func digits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}
