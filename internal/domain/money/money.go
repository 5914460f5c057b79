package money

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// ErrNegative é retornado quando um valor monetário negativo é informado
// onde apenas valores não negativos são aceitos
var ErrNegative = errors.New("valor monetário não pode ser negativo")

// Money representa um valor em centavos. Toda soma é feita em inteiros para
// evitar deriva de arredondamento entre muitos itens pequenos.
type Money int64

// Zero é o valor nulo
const Zero Money = 0

var hundred = decimal.NewFromInt(100)

// FromCents cria um Money a partir de centavos
func FromCents(cents int64) Money {
	return Money(cents)
}

// FromDecimal converte um decimal para centavos, arredondando meio para cima
// na segunda casa
func FromDecimal(d decimal.Decimal) Money {
	return Money(d.Mul(hundred).Round(0).IntPart())
}

// Parse interpreta textos como "15.90" ou "54,70"
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(normalize(s))
	if err != nil {
		return Zero, fmt.Errorf("valor monetário inválido %q: %w", s, err)
	}
	return FromDecimal(d), nil
}

// ParseNonNegative é como Parse mas rejeita valores negativos com ErrNegative
func ParseNonNegative(s string) (Money, error) {
	m, err := Parse(s)
	if err != nil {
		return Zero, err
	}
	if m.IsNegative() {
		return Zero, fmt.Errorf("%w: %s", ErrNegative, m)
	}
	return m, nil
}

// ParseDecimal interpreta quantidades decimais como peso ("0,350") ou preço por grama
func ParseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(normalize(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("número inválido %q: %w", s, err)
	}
	return d, nil
}

// MustParse é como Parse mas entra em pânico em caso de erro. Uso restrito a
// constantes conhecidas (dados de demonstração e testes).
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Cents retorna o valor em centavos
func (m Money) Cents() int64 {
	return int64(m)
}

// Decimal retorna o valor como decimal com duas casas
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// String formata com duas casas decimais, ex.: "54.70"
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// Add soma dois valores
func (m Money) Add(o Money) Money {
	return m + o
}

// Sub subtrai o, podendo resultar em negativo
func (m Money) Sub(o Money) Money {
	return m - o
}

// Mul multiplica por uma quantidade inteira
func (m Money) Mul(qty int) Money {
	return m * Money(qty)
}

// MulChecked multiplica por uma quantidade inteira e informa se o resultado
// coube em int64
func (m Money) MulChecked(qty int) (Money, bool) {
	r := m * Money(qty)
	if qty != 0 && (r/Money(qty) != m || (qty == -1 && m == math.MinInt64)) {
		return Zero, false
	}
	return r, true
}

// ClampZero retorna max(0, m)
func (m Money) ClampZero() Money {
	if m < 0 {
		return Zero
	}
	return m
}

// IsNegative informa se o valor é menor que zero
func (m Money) IsNegative() bool {
	return m < 0
}

// Sum soma uma lista de valores
func Sum(values ...Money) Money {
	var total Money
	for _, v := range values {
		total += v
	}
	return total
}

func normalize(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case ',':
			out = append(out, '.')
		case ' ':
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
