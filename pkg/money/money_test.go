package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRupeesAndTimes(t *testing.T) {
	assert.Equal(t, Money(30000), Rupees(300))
	assert.Equal(t, Rupees(600), Rupees(300).Times(2))
	assert.Equal(t, "₹260.00", Rupees(260).String())
}

func TestRepeatedAdditionDoesNotDrift(t *testing.T) {
	var total Money
	for i := 0; i < 1000; i++ {
		total += Money(10) // 0.10 rupees
	}
	assert.Equal(t, Rupees(100), total)
}

func TestJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Price Money `json:"price"`
	}{Price: Money(1250)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":12.50}`, string(b))

	var out struct {
		Price Money `json:"price"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"price":"499"}`), &out))
	assert.Equal(t, Rupees(499), out.Price)
}

func TestParse(t *testing.T) {
	m, err := Parse("12.5")
	require.NoError(t, err)
	assert.Equal(t, Money(1250), m)

	_, err = Parse("1.005")
	assert.Error(t, err)

	_, err = Parse("abc")
	assert.Error(t, err)
}

func TestPercentOff(t *testing.T) {
	cases := []struct {
		name            string
		original, price Money
		want            int
	}{
		{"vermicompost", Rupees(399), Rupees(60), 85},
		{"clay bottle", Rupees(549), Rupees(260), 53},
		{"rounds half up", Rupees(200), Rupees(199), 1},
		{"no original", 0, Rupees(23), 0},
		{"not cheaper", Rupees(100), Rupees(120), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PercentOff(tc.original, tc.price))
		})
	}
}

func TestScan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan(int64(5000)))
	assert.Equal(t, Rupees(50), m)
	require.NoError(t, m.Scan([]byte("700")))
	assert.Equal(t, Money(700), m)
	assert.Error(t, m.Scan(3.5))
}
