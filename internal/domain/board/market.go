package board

// Rival is one competing company from the caller's market data. Only the
// number of competitors shapes the board; the rest is carried for display.
type Rival struct {
	Name        string         `json:"name" bson:"name" yaml:"name"`
	MarketShare float64        `json:"market_share,omitempty" bson:"market_share,omitempty" yaml:"market_share,omitempty"`
	Attributes  map[string]any `json:"attributes,omitempty" bson:"attributes,omitempty" yaml:"attributes,omitempty"`
}

type MarketData struct {
	Competitors []Rival        `json:"competitors" bson:"competitors" yaml:"competitors"`
	Conditions  map[string]any `json:"conditions,omitempty" bson:"conditions,omitempty" yaml:"conditions,omitempty"`
	Landscape   map[string]any `json:"landscape,omitempty" bson:"landscape,omitempty" yaml:"landscape,omitempty"`
}
