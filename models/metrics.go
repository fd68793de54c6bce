package models

// Metric names as they appear on the wire and in the threshold table.
const (
	MetricSoilHumidity = "soilHumidity"
	MetricTemperature  = "temperature"
	MetricCondutivity  = "condutivity"
	MetricPh           = "ph"
	MetricNitrogen     = "nitrogen"
	MetricPhosphorus   = "phosphorus"
	MetricPotassium    = "potassium"
)

// MetricNames fixes the evaluation and reporting order.
var MetricNames = []string{
	MetricSoilHumidity,
	MetricTemperature,
	MetricCondutivity,
	MetricPh,
	MetricNitrogen,
	MetricPhosphorus,
	MetricPotassium,
}

// Metrics holds one value per tracked metric.
type Metrics struct {
	SoilHumidity float64 `json:"soilHumidity"`
	Temperature  float64 `json:"temperature"`
	Condutivity  float64 `json:"condutivity"`
	Ph           float64 `json:"ph"`
	Nitrogen     float64 `json:"nitrogen"`
	Phosphorus   float64 `json:"phosphorus"`
	Potassium    float64 `json:"potassium"`
}

// Value returns the value of the named metric.
func (m Metrics) Value(name string) (float64, bool) {
	switch name {
	case MetricSoilHumidity:
		return m.SoilHumidity, true
	case MetricTemperature:
		return m.Temperature, true
	case MetricCondutivity:
		return m.Condutivity, true
	case MetricPh:
		return m.Ph, true
	case MetricNitrogen:
		return m.Nitrogen, true
	case MetricPhosphorus:
		return m.Phosphorus, true
	case MetricPotassium:
		return m.Potassium, true
	}
	return 0, false
}
