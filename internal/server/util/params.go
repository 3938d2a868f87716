package util

import (
	"github.com/gridmind-ai/gridmind/backend/pkg/common"
)

// GenerateParams are the sampling parameters of one generation request,
// resolved to concrete values.
type GenerateParams struct {
	Temperature  float64 `json:"temperature"`
	TopP         float64 `json:"top_p"`
	MaxNewTokens int     `json:"max_new_tokens"`
	Seed         int     `json:"seed"`
}

// ResolveGenerateParams fills absent sampling parameters with the defaults
// and clamps the rest into their supported ranges. A negative seed means
// unseeded sampling and normalizes to -1.
func ResolveGenerateParams(temperature, topP *float64, maxNewTokens, seed *int) GenerateParams {
	params := GenerateParams{
		Temperature:  common.DefaultTemperature,
		TopP:         common.DefaultTopP,
		MaxNewTokens: common.DefaultMaxNewTokens,
		Seed:         common.DefaultSeed,
	}

	if temperature != nil {
		params.Temperature = clampFloat(*temperature, common.MinTemperature, common.MaxTemperature)
	}
	if topP != nil {
		params.TopP = clampFloat(*topP, common.MinTopP, common.MaxTopP)
	}
	if maxNewTokens != nil {
		params.MaxNewTokens = clampInt(*maxNewTokens, common.MinNewTokens, common.MaxNewTokens)
	}
	if seed != nil && *seed >= 0 {
		params.Seed = *seed
	}

	return params
}

func clampFloat(value, lower, upper float64) float64 {
	if value < lower {
		return lower
	}
	if value > upper {
		return upper
	}

	return value
}

func clampInt(value, lower, upper int) int {
	if value < lower {
		return lower
	}
	if value > upper {
		return upper
	}

	return value
}
