package config

import (
	"fmt"
	"strings"

	"github.com/Jfdeev/reflora/models"
	"github.com/Jfdeev/reflora/utils"
)

// ThresholdRule is the config file form of utils.Threshold, e.g.
//
//	thresholds:
//	  ph:
//	    ideal: [6.0, 7.0]
//	    warning_low: [5.5, 6.0]
//	    warning_high: [7.0, 7.5]
type ThresholdRule struct {
	Ideal       []float64 `mapstructure:"ideal"`
	WarningLow  []float64 `mapstructure:"warning_low"`
	WarningHigh []float64 `mapstructure:"warning_high"`
}

// ThresholdTable builds the threshold table: the defaults, with any metric
// configured under "thresholds" replaced as a whole. Keys are matched case
// insensitively since viper lowercases them.
func (c *Config) ThresholdTable() (utils.ThresholdTable, error) {
	canonical := make(map[string]string, len(models.MetricNames))
	for _, name := range models.MetricNames {
		canonical[strings.ToLower(name)] = name
	}

	table := utils.DefaultThresholds()
	for key, rule := range c.Thresholds {
		metric, ok := canonical[strings.ToLower(key)]
		if !ok {
			return nil, fmt.Errorf("thresholds: unknown metric %q", key)
		}
		threshold, err := rule.threshold()
		if err != nil {
			return nil, fmt.Errorf("thresholds.%s: %w", metric, err)
		}
		table[metric] = threshold
	}
	return table, nil
}

func (r ThresholdRule) threshold() (utils.Threshold, error) {
	ideal, err := band("ideal", r.Ideal)
	if err != nil {
		return utils.Threshold{}, err
	}
	low, err := band("warning_low", r.WarningLow)
	if err != nil {
		return utils.Threshold{}, err
	}
	high, err := band("warning_high", r.WarningHigh)
	if err != nil {
		return utils.Threshold{}, err
	}
	if low.High > ideal.Low || high.Low < ideal.High {
		return utils.Threshold{}, fmt.Errorf("warning bands must lie outside the ideal range")
	}
	return utils.Threshold{Ideal: ideal, WarningLow: low, WarningHigh: high}, nil
}

func band(name string, bounds []float64) (utils.Band, error) {
	if len(bounds) != 2 {
		return utils.Band{}, fmt.Errorf("%s: want [low, high], got %v", name, bounds)
	}
	if bounds[0] > bounds[1] {
		return utils.Band{}, fmt.Errorf("%s: low %v is above high %v", name, bounds[0], bounds[1])
	}
	return utils.Band{Low: bounds[0], High: bounds[1]}, nil
}
