package llm

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v4"
)

// DefaultModel is used when neither config nor request names a model.
const DefaultModel = "gpt-4o-mini"

// Price is USD per one million tokens.
type Price struct {
	Input  float64 `yaml:"input"`
	Output float64 `yaml:"output"`
}

// Pricing maps model names to prices.
type Pricing map[string]Price

// DefaultPricing covers the default model.
func DefaultPricing() Pricing {
	return Pricing{DefaultModel: {Input: 0.15, Output: 0.60}}
}

// Cost returns the USD cost of a call. Unknown models are billed at the
// default model's price.
func (p Pricing) Cost(model string, inputTokens, outputTokens int) float64 {
	price, ok := p[strings.ToLower(strings.TrimSpace(model))]
	if !ok {
		price, ok = p[DefaultModel]
		if !ok {
			price = DefaultPricing()[DefaultModel]
		}
	}
	return (float64(inputTokens)*price.Input + float64(outputTokens)*price.Output) / 1_000_000
}

// LoadPricing reads a YAML pricing table of the form
//
//	models:
//	  gpt-4o-mini: {input: 0.15, output: 0.60}
//
// and merges it over DefaultPricing. An empty path returns the defaults.
func LoadPricing(path string) (Pricing, error) {
	out := DefaultPricing()
	if strings.TrimSpace(path) == "" {
		return out, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pricing file: %w", err)
	}
	return parsePricing(data, out)
}

func parsePricing(data []byte, base Pricing) (Pricing, error) {
	var doc struct {
		Models map[string]Price `yaml:"models"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse pricing file: %w", err)
	}
	for name, price := range doc.Models {
		if price.Input < 0 || price.Output < 0 {
			return nil, fmt.Errorf("pricing for %q must not be negative", name)
		}
		base[strings.ToLower(strings.TrimSpace(name))] = price
	}
	return base, nil
}
