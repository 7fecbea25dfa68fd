package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestReais_LineArithmetic(t *testing.T) {
	tests := []struct {
		price string
		qty   int
		want  string
	}{
		{"200.00", 2, "400.00"},
		{"0.335", 3, "1.01"},
		{"0.005", 1, "0.01"},
		{"19.99", 0, "0.00"},
		{"-0.005", 1, "-0.01"},
	}
	for _, tt := range tests {
		got := NewReais(dec(tt.price)).Times(tt.qty).Round().Decimal()
		assert.Equal(t, tt.want, got.StringFixed(2), "%s x %d", tt.price, tt.qty)
	}
}

func TestReais_Scale(t *testing.T) {
	tax := NewReais(dec("400.00")).Scale(dec("0.18")).Round()
	assert.Equal(t, "72,00", tax.Comma())

	tax = NewReais(dec("10.03")).Scale(dec("0.18")).Round()
	assert.Equal(t, "1,81", tax.Comma())
}

func TestSumReais(t *testing.T) {
	assert.True(t, SumReais().Decimal().IsZero())
	assert.Equal(t, "R$ 10,30", SumReais(dec("10.10"), dec("0.20")).String())
}

func TestDecimalComma(t *testing.T) {
	tests := map[string]string{
		"0":       "0,00",
		"5":       "5,00",
		"1234.5":  "1234,50",
		"1234.56": "1234,56",
		"-3.1":    "-3,10",
	}
	for in, want := range tests {
		assert.Equal(t, want, DecimalComma(dec(in)))
	}
}
