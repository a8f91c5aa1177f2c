// Package extract derives product attributes from free-text product names.
//
// Every rule is a pure function of the product name and its vocabularies:
// no rule performs I/O or fails on well-formed input, and absence of a
// match yields an empty value or a sentinel.
package extract

import (
	"github.com/Veraticus/sweep/internal/model"
)

// Options holds the vocabularies of every rule. It is treated as immutable
// once handed to New.
type Options struct {
	Brands         model.Vocabulary
	KOLs           model.Vocabulary
	DealExclusions model.Vocabulary
	SizeOutliers   model.Vocabulary // exact product names forced to DefaultSize
	SizeExempt     string
	DefaultSize    string
	Formats        FormatLabels
	Gift           GiftOptions
	Region         RegionOptions
}

// Extractor applies the rule set with pre-compiled vocabularies.
// It is safe for concurrent use.
type Extractor struct {
	brands   *BrandMatcher
	outliers map[string]struct{}
	opts     Options
}

// New compiles an extractor. The vocabularies are copied.
func New(opts Options) *Extractor {
	opts.Brands = opts.Brands.Clone()
	opts.KOLs = opts.KOLs.Clone()
	opts.DealExclusions = opts.DealExclusions.Clone()
	opts.SizeOutliers = opts.SizeOutliers.Clone()
	opts.Gift.Rules = append([]model.GiftRule(nil), opts.Gift.Rules...)

	outliers := make(map[string]struct{}, len(opts.SizeOutliers))
	for _, name := range opts.SizeOutliers {
		outliers[name] = struct{}{}
	}

	return &Extractor{
		opts:     opts,
		brands:   NewBrandMatcher(opts.Brands),
		outliers: outliers,
	}
}

// Brand returns the brand named in productName, or "".
func (e *Extractor) Brand(productName string) string {
	brand, _ := e.brands.Match(productName)
	return brand
}

// Size returns the package size of productName, or "". Known outliers
// without a recognizable size get the default size.
func (e *Extractor) Size(productName string) string {
	if size, ok := Size(productName, e.opts.SizeExempt); ok {
		return size
	}
	if _, ok := e.outliers[productName]; ok {
		return e.opts.DefaultSize
	}
	return ""
}

// Format returns the package format for an extracted size.
func (e *Extractor) Format(size string) string {
	return Format(size, e.opts.Formats)
}

// KOL returns the influencer or deal tag of productName.
func (e *Extractor) KOL(productName string) string {
	return Deal(productName, e.opts.DealExclusions, e.opts.KOLs)
}

// Gift returns the gift attached to productName.
func (e *Extractor) Gift(productName string) string {
	return Gift(productName, e.opts.Gift)
}

// Region returns the region of a warehouse name.
func (e *Extractor) Region(warehouse string) string {
	return Region(warehouse, e.opts.Region)
}
