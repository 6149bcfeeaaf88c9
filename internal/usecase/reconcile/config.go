package reconcile

import (
	v1 "github.com/quantledger/pnl-engine/internal/domain/reconcile/v1"
)

// classifyConfig identifies which configuration shape an order uses. The
// variant keys are checked in fixed priority order: limit before stop-limit
// before trigger-bracket before market, GTD before GTC within each pair.
// The first variant whose value is an actual field map wins; a missing
// configuration or one matching no known key classifies as Unknown.
func classifyConfig(config *v1.OrderConfiguration) (v1.ConfigKind, *v1.ConfigFields) {
	if config == nil {
		return v1.ConfigUnknown, nil
	}

	candidates := []struct {
		kind   v1.ConfigKind
		fields *v1.ConfigFields
	}{
		{v1.ConfigLimit, config.LimitGTD},
		{v1.ConfigLimit, config.LimitGTC},
		{v1.ConfigStopLimit, config.StopLimitGTD},
		{v1.ConfigStopLimit, config.StopLimitGTC},
		{v1.ConfigTriggerBracket, config.TriggerBracketGTD},
		{v1.ConfigTriggerBracket, config.TriggerBracketGTC},
		{v1.ConfigMarket, config.MarketIOC},
		{v1.ConfigMarket, config.MarketGTC},
	}

	for _, candidate := range candidates {
		if candidate.fields.IsObject() {
			return candidate.kind, candidate.fields
		}
	}

	return v1.ConfigUnknown, nil
}
