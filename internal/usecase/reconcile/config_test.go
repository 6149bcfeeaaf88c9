package reconcile

import (
	"testing"

	json "github.com/goccy/go-json"
	v1 "github.com/quantledger/pnl-engine/internal/domain/reconcile/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeConfig(t *testing.T, raw string) *v1.OrderConfiguration {
	var config v1.OrderConfiguration
	require.NoError(t, json.Unmarshal([]byte(raw), &config))
	return &config
}

func TestClassifyConfig(t *testing.T) {
	testCases := []struct {
		name         string
		config       *v1.OrderConfiguration
		expectedKind v1.ConfigKind
	}{
		{
			name:         "nil configuration",
			config:       nil,
			expectedKind: v1.ConfigUnknown,
		},
		{
			name:         "empty object",
			config:       decodeConfig(t, `{}`),
			expectedKind: v1.ConfigUnknown,
		},
		{
			name:         "limit gtd",
			config:       decodeConfig(t, `{"limit_limit_gtd": {"limit_price": "100"}}`),
			expectedKind: v1.ConfigLimit,
		},
		{
			name:         "limit gtc",
			config:       decodeConfig(t, `{"limit_limit_gtc": {"limit_price": "100"}}`),
			expectedKind: v1.ConfigLimit,
		},
		{
			name:         "stop limit gtc",
			config:       decodeConfig(t, `{"stop_limit_stop_limit_gtc": {"stop_price": "95"}}`),
			expectedKind: v1.ConfigStopLimit,
		},
		{
			name:         "trigger bracket gtd",
			config:       decodeConfig(t, `{"trigger_bracket_gtd": {"stop_trigger_price": "90"}}`),
			expectedKind: v1.ConfigTriggerBracket,
		},
		{
			name:         "market ioc",
			config:       decodeConfig(t, `{"market_market_ioc": {"base_size": "1"}}`),
			expectedKind: v1.ConfigMarket,
		},
		{
			name:         "market gtc",
			config:       decodeConfig(t, `{"market_market_gtc": {}}`),
			expectedKind: v1.ConfigMarket,
		},
		{
			name: "limit outranks market when both present",
			config: decodeConfig(t, `{
				"market_market_ioc": {"base_size": "1"},
				"limit_limit_gtc": {"limit_price": "100"}
			}`),
			expectedKind: v1.ConfigLimit,
		},
		{
			name: "gtd outranks gtc within a pair",
			config: decodeConfig(t, `{
				"limit_limit_gtc": {"limit_price": "1"},
				"limit_limit_gtd": {"limit_price": "2"}
			}`),
			expectedKind: v1.ConfigLimit,
		},
		{
			name:         "non-object variant value falls through",
			config:       decodeConfig(t, `{"limit_limit_gtd": "oops", "market_market_ioc": {"base_size": "1"}}`),
			expectedKind: v1.ConfigMarket,
		},
		{
			name:         "unrecognized key only",
			config:       decodeConfig(t, `{"twap_twap_gtc": {"base_size": "1"}}`),
			expectedKind: v1.ConfigUnknown,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			kind, fields := classifyConfig(tc.config)
			assert.Equal(t, tc.expectedKind, kind)
			if tc.expectedKind == v1.ConfigUnknown {
				assert.Nil(t, fields)
			} else {
				assert.True(t, fields.IsObject())
			}
		})
	}
}

func TestClassifyConfigPicksMatchingFields(t *testing.T) {
	config := decodeConfig(t, `{
		"limit_limit_gtd": {"limit_price": "2", "base_size": "10"},
		"limit_limit_gtc": {"limit_price": "1"}
	}`)

	_, fields := classifyConfig(config)
	require.NotNil(t, fields)
	price, ok := fields.LimitPrice.Decimal()
	require.True(t, ok)
	assert.Equal(t, "2", price.String())
}
