package money

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	assert.Equal(t, "25.00", Cents(2500).String())
	assert.Equal(t, "0.05", Cents(5).String())
	assert.Equal(t, "-1.20", Cents(-120).String())
}

func TestJSONNumber(t *testing.T) {
	out, err := json.Marshal(struct {
		Price Cents `json:"price"`
	}{Price: 1250})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":12.5}`, string(out))

	var in struct {
		Price Cents `json:"price"`
	}
	err = json.Unmarshal([]byte(`{"price":19.995}`), &in)
	assert.ErrorIs(t, err, ErrTooPrecise)

	require.NoError(t, json.Unmarshal([]byte(`{"price":"7.10"}`), &in))
	assert.Equal(t, Cents(710), in.Price)

	assert.Error(t, json.Unmarshal([]byte(`{"price":"abc"}`), &in))
}

func TestMul(t *testing.T) {
	assert.Equal(t, Cents(2000), Cents(1000).Mul(2))
}

func TestParse(t *testing.T) {
	valid := map[string]Cents{
		"0":      0,
		"12.5":   1250,
		"12.50":  1250,
		"19.99":  1999,
		"-3.01":  -301,
		"1e2":    10000,
		"125E-2": 125,
		"1.230":  123,
	}
	for in, want := range valid {
		got, err := Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	tooPrecise := []string{"9.999", "-0.004", "0.001", "1e-3"}
	for _, in := range tooPrecise {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrTooPrecise, in)
	}

	invalid := []string{"", "-", ".", "abc", "1/3", "0x10", "Inf", "NaN", "1e", "1e999999", "1_000", " 1", "1.2.3"}
	for _, in := range invalid {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrInvalidAmount, in)
	}
}

// 任意分值经JSON写出后再解析得到同一个值
func TestJSONExact(t *testing.T) {
	for _, c := range []Cents{0, 1, 10, 99, 100, 1999, 123456789, -250} {
		out, err := json.Marshal(c)
		require.NoError(t, err)
		var back Cents
		require.NoError(t, json.Unmarshal(out, &back), fmt.Sprint(c))
		assert.Equal(t, c, back)
	}
}
