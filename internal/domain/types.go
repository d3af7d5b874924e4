package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// OwnerName is a ledger account name (players, the game account, the token contract)
type OwnerName string

// String returns the string representation of the owner name
func (o OwnerName) String() string {
	return string(o)
}

// AssetID identifies a single NFT instance on the external asset ledger
type AssetID uint64

// TemplateID identifies the immutable blueprint an asset was minted from
type TemplateID int32

// AttributeMap holds an asset's mutable or a template's immutable attributes.
// Values are either numbers (stored as float64) or strings, matching the
// JSON shape the asset ledger serves.
type AttributeMap map[string]interface{}

// Well-known attribute keys on assets and templates.
const (
	AttrLevel             = "level"
	AttrLastClaim         = "lastClaim"
	AttrLastUpgrade       = "lastUpgrade"
	AttrMiningRate        = "miningRate"
	AttrMiningBoost       = "miningBoost"
	AttrFarmResource      = "farmResource"
	AttrUpgradePercentage = "upgradePercentage"
	AttrSlots             = "slots"
	AttrType              = "type"
)

// Stat names aggregated from equipped items.
const (
	StatStrength = "strength"
	StatLuck     = "luck"
	StatVitality = "vitality"
)

// StatNames lists every stat the aggregator sums over equipment
var StatNames = []string{StatStrength, StatLuck, StatVitality}

// Float reads a numeric attribute, tolerating JSON number decoding variants
func (m AttributeMap) Float(key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// Int reads a numeric attribute as int64
func (m AttributeMap) Int(key string) int64 {
	return int64(m.Float(key))
}

// String reads a string attribute
func (m AttributeMap) String(key string) string {
	s, _ := m[key].(string)
	return s
}

// Clone returns a shallow copy safe to mutate before an attribute update
func (m AttributeMap) Clone() AttributeMap {
	out := make(AttributeMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Asset is an NFT instance as reported by the external asset ledger
type Asset struct {
	ID            AssetID      `json:"asset_id"`
	Owner         OwnerName    `json:"owner"`
	TemplateID    TemplateID   `json:"template_id"`
	Collection    string       `json:"collection"`
	SchemaName    string       `json:"schema_name"`
	ImmutableData AttributeMap `json:"immutable_data"`
	MutableData   AttributeMap `json:"mutable_data"`
}

// Level returns the asset's current level, defaulting to 1 for fresh assets
func (a *Asset) Level() uint8 {
	if lvl := a.MutableData.Int(AttrLevel); lvl > 0 {
		return uint8(lvl)
	}
	if lvl := a.ImmutableData.Int(AttrLevel); lvl > 0 {
		return uint8(lvl)
	}
	return 1
}

// Template is an immutable asset blueprint as reported by the asset ledger
type Template struct {
	ID            TemplateID   `json:"template_id"`
	Collection    string       `json:"collection"`
	SchemaName    string       `json:"schema_name"`
	ImmutableData AttributeMap `json:"immutable_data"`
}

// Stats is an owner's derived aggregate stat set
type Stats map[string]uint32

// Get returns a stat value, zero when absent
func (s Stats) Get(name string) uint32 {
	return s[name]
}

// Token amount handling mirrors the fungible ledger's fixed-point assets.
const (
	// TokenSymbol is the in-game fungible token symbol
	TokenSymbol = "GAME"
	// TokenPrecision is the number of decimal places of the token
	TokenPrecision = 4
)

// tokenScale is 10^TokenPrecision
const tokenScale = 10000

// TokenAmount is a fixed-point token quantity in base units (1 GAME = 10^4 units)
type TokenAmount int64

// TokenFromFloat converts a token quantity to base units, rounding half away from zero
func TokenFromFloat(v float64) TokenAmount {
	return TokenAmount(math.Round(v * tokenScale))
}

// Float64 converts the amount back to whole tokens
func (t TokenAmount) Float64() float64 {
	return float64(t) / tokenScale
}

// String renders the ledger wire format, e.g. "4.0000 GAME"
func (t TokenAmount) String() string {
	whole := int64(t) / tokenScale
	frac := int64(t) % tokenScale
	if frac < 0 {
		frac = -frac
	}
	return fmt.Sprintf("%d.%04d %s", whole, frac, TokenSymbol)
}

// ParseTokenAmount parses the ledger wire format ("4.0000 GAME") into base units
func ParseTokenAmount(s string) (TokenAmount, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) != 2 {
		return 0, fmt.Errorf("malformed token quantity %q", s)
	}
	if fields[1] != TokenSymbol {
		return 0, fmt.Errorf("unexpected token symbol %q", fields[1])
	}

	value, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("malformed token quantity %q: %w", s, err)
	}

	return TokenFromFloat(value), nil
}
