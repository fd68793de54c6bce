package utils

import (
	"fmt"
	"strconv"

	"github.com/Jfdeev/reflora/models"
)

// Band is an inclusive [Low, High] range.
type Band struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

func (b Band) Contains(v float64) bool {
	return v >= b.Low && v <= b.High
}

// Threshold describes the healthy range of one metric and the warning bands
// on either side of it.
type Threshold struct {
	Ideal       Band `json:"ideal"`
	WarningLow  Band `json:"warningLow"`
	WarningHigh Band `json:"warningHigh"`
}

// ThresholdTable maps metric name to its threshold. It is built once at
// start-up and never mutated afterwards.
type ThresholdTable map[string]Threshold

// DefaultThresholds returns the agronomic defaults.
func DefaultThresholds() ThresholdTable {
	return ThresholdTable{
		models.MetricSoilHumidity: {Ideal: Band{20, 60}, WarningLow: Band{15, 20}, WarningHigh: Band{60, 65}},
		models.MetricTemperature:  {Ideal: Band{18, 30}, WarningLow: Band{15, 18}, WarningHigh: Band{30, 33}},
		models.MetricCondutivity:  {Ideal: Band{0.2, 2.0}, WarningLow: Band{0.15, 0.2}, WarningHigh: Band{2.0, 2.5}},
		models.MetricPh:           {Ideal: Band{6.0, 7.0}, WarningLow: Band{5.5, 6.0}, WarningHigh: Band{7.0, 7.5}},
		models.MetricNitrogen:     {Ideal: Band{20, 50}, WarningLow: Band{15, 20}, WarningHigh: Band{50, 60}},
		models.MetricPhosphorus:   {Ideal: Band{15, 40}, WarningLow: Band{10, 15}, WarningHigh: Band{40, 50}},
		models.MetricPotassium:    {Ideal: Band{100, 300}, WarningLow: Band{80, 100}, WarningHigh: Band{300, 350}},
	}
}

// Classify returns the level of a single value. Ideal wins over warning and
// warning over critical, so a value on a shared boundary takes the healthier
// level.
func (t Threshold) Classify(v float64) string {
	switch {
	case t.Ideal.Contains(v):
		return models.LevelIdeal
	case t.WarningLow.Contains(v), t.WarningHigh.Contains(v):
		return models.LevelAlert
	default:
		return models.LevelCritical
	}
}

// AlertMessage formats the text stored on a generated alert.
func AlertMessage(metric string, value float64) string {
	return fmt.Sprintf("%s out of ideal range (%s)", metric, strconv.FormatFloat(value, 'g', -1, 64))
}

// Evaluate checks every metric of a reading independently and returns one
// candidate per metric outside its ideal range, in models.MetricNames order.
// Metrics without a threshold in the table are skipped.
func Evaluate(table ThresholdTable, m models.Metrics) []models.AlertCandidate {
	var candidates []models.AlertCandidate
	for _, name := range models.MetricNames {
		threshold, ok := table[name]
		if !ok {
			continue
		}
		value, _ := m.Value(name)
		level := threshold.Classify(value)
		if level == models.LevelIdeal {
			continue
		}
		candidates = append(candidates, models.AlertCandidate{
			Metric:  name,
			Value:   value,
			Level:   level,
			Message: AlertMessage(name, value),
		})
	}
	return candidates
}

// Levels returns the level of every metric in the table, the projection
// stored alongside a reading.
func Levels(table ThresholdTable, m models.Metrics) map[string]interface{} {
	levels := make(map[string]interface{}, len(table))
	for _, name := range models.MetricNames {
		threshold, ok := table[name]
		if !ok {
			continue
		}
		value, _ := m.Value(name)
		levels[name] = threshold.Classify(value)
	}
	return levels
}
