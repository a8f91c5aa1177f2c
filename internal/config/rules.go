package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"

	"github.com/Veraticus/sweep/internal/common"
	"github.com/Veraticus/sweep/internal/extract"
	"github.com/Veraticus/sweep/internal/geo"
	"github.com/Veraticus/sweep/internal/model"
	"github.com/Veraticus/sweep/internal/translate"
)

// Gift rule errors.
var (
	ErrDuplicateGiftRule = errors.New("gift rule already exists")
	ErrDuplicateGiftKey  = errors.New("gift key already exists")
	ErrEmptyGiftRule     = errors.New("gift key and value are required")
)

// Columns names the source columns the pipeline reads.
type Columns struct {
	Product   string `yaml:"product" default:"Product Name"`
	Location  string `yaml:"location" default:"Province"`
	Warehouse string `yaml:"warehouse" default:"Warehouse Name"`
	Created   string `yaml:"created" default:"Created Time"`

	Quantity         string `yaml:"quantity" default:"Quantity"`
	SubtotalBefore   string `yaml:"subtotalBefore" default:"SKU Subtotal Before Discount"`
	SubtotalAfter    string `yaml:"subtotalAfter" default:"SKU Subtotal After Discount"`
	SellerDiscount   string `yaml:"sellerDiscount" default:"SKU Seller Discount"`
	PlatformDiscount string `yaml:"platformDiscount" default:"SKU Platform Discount"`

	// Numeric lists the columns coerced to numbers. Blank or unparseable
	// cells become 0.
	Numeric []string `yaml:"numeric"`
}

// Formats names the package-format labels.
type Formats struct {
	Liquid string `yaml:"liquid" default:"Liquid Milk"`
	Powder string `yaml:"powder" default:"Milk Powder"`
	None   string `yaml:"none" default:"No format"`
}

// Gift configures gift extraction.
type Gift struct {
	Token      string           `yaml:"token" default:"TẶNG"`
	CardMarker string           `yaml:"cardMarker" default:"THẺ QUÀ TẶNG"`
	Rules      []model.GiftRule `yaml:"rules"`
}

// Regions holds the warehouse alias tables.
type Regions struct {
	InBrackets []model.AliasRule `yaml:"inBrackets"`
	Outside    []model.AliasRule `yaml:"outside"`
}

// Geography configures province cleaning.
type Geography struct {
	CharMap      map[string]string `yaml:"charMap"`
	LookupPath   string            `yaml:"lookupPath"`
	Stopwords    []string          `yaml:"stopwords"`
	SpecialCases []string          `yaml:"specialCases"`
	Aliases      []model.AliasRule `yaml:"aliases"`
}

// Translation configures the foreign-text fallback.
type Translation struct {
	TargetLanguage string        `yaml:"targetLanguage" default:"vi"`
	Endpoint       string        `yaml:"endpoint"`
	Delay          time.Duration `yaml:"delay" default:"500ms"`
	Timeout        time.Duration `yaml:"timeout" default:"15s"`
	MaxAttempts    int           `yaml:"maxAttempts" default:"3"`
	Enabled        bool          `yaml:"enabled" default:"true"`
}

// Rules is the complete, immutable configuration of a cleaning run.
// Build it once with Load or Default and pass it to the pipeline.
type Rules struct {
	Columns     Columns     `yaml:"columns"`
	Geography   Geography   `yaml:"geography"`
	Translation Translation `yaml:"translation"`
	Gift        Gift        `yaml:"gift"`
	Formats     Formats     `yaml:"formats"`
	Regions     Regions     `yaml:"regions"`

	Brands         model.Vocabulary `yaml:"brands"`
	KOLs           model.Vocabulary `yaml:"kols"`
	DealExclusions model.Vocabulary `yaml:"dealExclusions"`
	SizeOutliers   model.Vocabulary `yaml:"sizeOutliers"`
	SizeExempt     string           `yaml:"sizeExempt" default:"5g"`
	DefaultSize    string           `yaml:"defaultSize" default:"220ml"`

	TimestampLayout string  `yaml:"timestampLayout" default:"02/01/2006 15:04:05"`
	USDRate         float64 `yaml:"usdRate" default:"25800"`
	ChunkSize       int     `yaml:"chunkSize" default:"20000"`
	Workers         int     `yaml:"workers" default:"4"`
}

// SetDefaults fills the vocabularies left empty by struct tags. It is
// called by defaults.Set.
func (r *Rules) SetDefaults() {
	if r.Brands == nil {
		r.Brands = model.Vocabulary{"Grow", "PediaSure", "Ensure", "Similac", "Glucerna"}
	}
	if r.KOLs == nil {
		r.KOLs = model.Vocabulary{"Quyền Leo", "Hằng Du Mục"}
	}
	if r.DealExclusions == nil {
		r.DealExclusions = model.Vocabulary{"Hot Deal", "Deal Hè", "Deal E2E"}
	}
	if r.SizeOutliers == nil {
		r.SizeOutliers = model.Vocabulary{
			"COMBO 4 LỐC (24 CHAI) SỮA NƯỚC GLUCERNA HƯƠNG VANI",
			"COMBO 5 LỐC (30 CHAI) SỮA NƯỚC GLUCERNA HƯƠNG VANI",
			"1 THÙNG 24 CHAI SỮA NƯỚC GLUCERNA HƯƠNG VANI",
			"[TẶNG BÌNH GIỮ NHIỆT] COMBO 24 CHAI SỮA NƯỚC GLUCERNA HƯƠNG VANI",
		}
	}
	if r.Gift.Rules == nil {
		r.Gift.Rules = defaultGiftRules()
	}
	if r.Columns.Numeric == nil {
		r.Columns.Numeric = []string{
			"Quantity",
			"SKU Subtotal Before Discount",
			"SKU Seller Discount",
			"SKU Platform Discount",
			"SKU Subtotal After Discount",
		}
	}

	region := extract.DefaultRegionOptions()
	if r.Regions.InBrackets == nil {
		r.Regions.InBrackets = region.InBrackets
	}
	if r.Regions.Outside == nil {
		r.Regions.Outside = region.Outside
	}

	geography := geo.DefaultNormalizerConfig()
	if r.Geography.CharMap == nil {
		r.Geography.CharMap = geography.CharMap
	}
	if r.Geography.Stopwords == nil {
		r.Geography.Stopwords = geography.Stopwords
	}
	if r.Geography.SpecialCases == nil {
		r.Geography.SpecialCases = geography.SpecialCases
	}
	if r.Geography.Aliases == nil {
		for _, a := range geography.Aliases {
			r.Geography.Aliases = append(r.Geography.Aliases, model.AliasRule{Match: a[0], Label: a[1]})
		}
	}
}

func defaultGiftRules() []model.GiftRule {
	return []model.GiftRule{
		{Key: "TĂNG KHĂN CHOÀNG TẮM", Value: "TẶNG KHĂN CHOÀNG TẮM"},
		{Key: "TẶNG GHÉ SOFA HƯƠU VÀNG", Value: "TẶNG GHẾ SOFA HƯƠU VÀNG"},
		{Key: "TẶNG LY THUỶ TINH ENSURE GOLD MỚI CẢI TIẾN DẠNG BỘT HƯƠNG VANI 400G", Value: "TẶNG LY THUỶ TINH"},
		{Key: "TẶNG ẤM ĐUN COMBO 3 LON SỮA ENSURE GOLD CẢI TIẾN MỚI DẠNG BỘT HƯƠNG VANI 850G", Value: "TẶNG ẤM ĐUN"},
		{Key: "TẶNG LY THỦY TINH LON ENSURE GOLD CẢI TIẾN MỚI DẠNG BỘT HƯƠNG VANI 400G", Value: "TẶNG LY THỦY TINH"},
		{Key: "TẶNG CÂN COMBO 2 LON SỮA ENSURE GOLD CẢI TIẾN MỚI DẠNG BỘT HƯƠNG VANI 850G", Value: "TẶNG CÂN"},
		{Key: "TẶNG BÌNH GIỮ NHIỆT LON ENSURE GOLD CẢI TIẾN MỚI DẠNG BỘT HƯƠNG VANI 850G", Value: "TẶNG BÌNH GIỮ NHIỆT"},
		{Key: "[DEAL HÈ] [DATE TỪ 01.01.2025 TRỞ ĐI] 1 Lon Thực phẩm Dinh Dưỡng Sữa Bột PediaSure 400g, Túi Đeo Chéo", Value: "TÚI ĐEO CHÉO"},
		{Key: "THẺ QUÀ TẶNG", Value: "THẺ QUÀ TẶNG"},
	}
}

// Default returns the built-in rules.
func Default() (*Rules, error) {
	rules := &Rules{}
	if err := defaults.Set(rules); err != nil {
		return nil, fmt.Errorf("failed to apply rule defaults: %w", err)
	}
	return rules, nil
}

// Load reads rules from a YAML file on top of the defaults. An empty path
// returns the defaults.
func Load(path string) (*Rules, error) {
	rules, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(ExpandPath(path)) //nolint:gosec // User-provided config file path
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	if err := Parse(data, rules); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rules, nil
}

// Parse decodes YAML into rules and validates the result. Fields absent
// from data keep their current values.
func Parse(data []byte, rules *Rules) error {
	if err := yaml.Unmarshal(data, rules); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
	}
	return rules.Validate()
}

// Validate checks the rules for values no run can use.
func (r *Rules) Validate() error {
	switch {
	case r.ChunkSize <= 0:
		return fmt.Errorf("%w: chunkSize must be positive, got %d", common.ErrInvalidConfig, r.ChunkSize)
	case r.Workers <= 0:
		return fmt.Errorf("%w: workers must be positive, got %d", common.ErrInvalidConfig, r.Workers)
	case r.USDRate <= 0:
		return fmt.Errorf("%w: usdRate must be positive", common.ErrInvalidConfig)
	case r.TimestampLayout == "":
		return fmt.Errorf("%w: timestampLayout is required", common.ErrInvalidConfig)
	case r.Columns.Product == "" || r.Columns.Location == "" || r.Columns.Created == "":
		return fmt.Errorf("%w: product, location and created columns are required", common.ErrInvalidConfig)
	case r.Translation.Enabled && r.Translation.MaxAttempts <= 0:
		return fmt.Errorf("%w: translation.maxAttempts must be positive", common.ErrInvalidConfig)
	}

	seen := make(map[string]struct{}, len(r.Gift.Rules))
	for _, rule := range r.Gift.Rules {
		if _, dup := seen[rule.Key]; dup {
			return fmt.Errorf("%w: %w: %q", common.ErrInvalidConfig, ErrDuplicateGiftKey, rule.Key)
		}
		seen[rule.Key] = struct{}{}
	}

	return nil
}

// AddGift appends a gift rule. A rule identical to an existing one, or one
// whose key is already mapped, is rejected.
func (r *Rules) AddGift(key, value string) error {
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if key == "" || value == "" {
		return ErrEmptyGiftRule
	}

	for _, rule := range r.Gift.Rules {
		if rule.Key == key && rule.Value == value {
			return fmt.Errorf("%w: %q", ErrDuplicateGiftRule, key)
		}
	}
	for _, rule := range r.Gift.Rules {
		if rule.Key == key {
			return fmt.Errorf("%w: %q", ErrDuplicateGiftKey, key)
		}
	}

	r.Gift.Rules = append(r.Gift.Rules, model.GiftRule{Key: key, Value: value})
	return nil
}

// ExtractOptions converts the rules into extractor options.
func (r *Rules) ExtractOptions() extract.Options {
	return extract.Options{
		Brands:         r.Brands,
		KOLs:           r.KOLs,
		DealExclusions: r.DealExclusions,
		SizeOutliers:   r.SizeOutliers,
		SizeExempt:     r.SizeExempt,
		DefaultSize:    r.DefaultSize,
		Formats: extract.FormatLabels{
			Liquid: r.Formats.Liquid,
			Powder: r.Formats.Powder,
			None:   r.Formats.None,
		},
		Gift: extract.GiftOptions{
			Token:      r.Gift.Token,
			CardMarker: r.Gift.CardMarker,
			Rules:      r.Gift.Rules,
		},
		Region: extract.RegionOptions{
			InBrackets: r.Regions.InBrackets,
			Outside:    r.Regions.Outside,
		},
	}
}

// NormalizerConfig converts the geography rules into normalizer tables.
func (r *Rules) NormalizerConfig() geo.NormalizerConfig {
	aliases := make([][2]string, 0, len(r.Geography.Aliases))
	for _, a := range r.Geography.Aliases {
		aliases = append(aliases, [2]string{a.Match, a.Label})
	}

	return geo.NormalizerConfig{
		CharMap:      r.Geography.CharMap,
		Stopwords:    r.Geography.Stopwords,
		SpecialCases: r.Geography.SpecialCases,
		Aliases:      aliases,
	}
}

// FallbackOptions converts the translation rules into fallback options.
func (r *Rules) FallbackOptions() translate.FallbackOptions {
	return translate.FallbackOptions{
		TargetLanguage: r.Translation.TargetLanguage,
		Delay:          r.Translation.Delay,
		Retry: common.RetryOptions{
			MaxAttempts:  r.Translation.MaxAttempts,
			InitialDelay: time.Second,
			MaxDelay:     10 * time.Second,
			Multiplier:   2,
		},
	}
}

// GoogleConfig converts the translation rules into client settings.
func (r *Rules) GoogleConfig() translate.GoogleConfig {
	return translate.GoogleConfig{
		Endpoint: r.Translation.Endpoint,
		Timeout:  r.Translation.Timeout,
	}
}
