package pipeline

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/Veraticus/sweep/internal/config"
	"github.com/Veraticus/sweep/internal/extract"
	"github.com/Veraticus/sweep/internal/geo"
	"github.com/Veraticus/sweep/internal/model"
	"github.com/Veraticus/sweep/internal/period"
)

// runEnv is the read-only state shared by every chunk of a run.
type runEnv struct {
	rules     *config.Rules
	extractor *extract.Extractor
	cleaner   *geo.Cleaner
	registry  *period.Registry
	numeric   []string // numeric columns present in the input
}

type transform func(ctx context.Context, env *runEnv, rec *model.Record)

var transforms = map[Stage]transform{
	StageCoerce:    coerce,
	StageGeography: cleanGeography,
	StageBrand: func(_ context.Context, env *runEnv, rec *model.Record) {
		rec.Attributes.Brand = env.extractor.Brand(rec.ProductName)
	},
	StageSize: func(_ context.Context, env *runEnv, rec *model.Record) {
		rec.Attributes.Size = env.extractor.Size(rec.ProductName)
	},
	StageFormat: func(_ context.Context, env *runEnv, rec *model.Record) {
		rec.Attributes.Format = env.extractor.Format(rec.Attributes.Size)
	},
	StageKOL: func(_ context.Context, env *runEnv, rec *model.Record) {
		rec.Attributes.KOL = env.extractor.KOL(rec.ProductName)
	},
	StageGift: func(_ context.Context, env *runEnv, rec *model.Record) {
		rec.Attributes.Gift = env.extractor.Gift(rec.ProductName)
	},
	StageRegion: func(_ context.Context, env *runEnv, rec *model.Record) {
		if rec.WarehouseName != "" {
			rec.Attributes.WarehouseRegion = env.extractor.Region(rec.WarehouseName)
		}
	},
	StageDatetime: splitCreated,
	StagePeriod: func(_ context.Context, env *runEnv, rec *model.Record) {
		rec.Attributes.Period = env.registry.Assign(rec.CreatedTime)
	},
	StageFSP:     fsp,
	StageUSD:     subtotalUSD,
	StageVoucher: voucher,
}

// coerce parses numeric columns, filling blanks and garbage with 0, and
// strips tabs from every string value.
func coerce(_ context.Context, env *runEnv, rec *model.Record) {
	for col, v := range rec.Values {
		if strings.ContainsRune(v, '\t') {
			rec.Values[col] = strings.ReplaceAll(v, "\t", "")
		}
	}
	rec.ProductName = strings.ReplaceAll(rec.ProductName, "\t", "")
	rec.LocationName = strings.ReplaceAll(rec.LocationName, "\t", "")
	rec.WarehouseName = strings.ReplaceAll(rec.WarehouseName, "\t", "")

	if len(env.numeric) == 0 {
		return
	}
	if rec.Values == nil {
		rec.Values = make(map[string]string, len(env.numeric))
	}
	if rec.Numeric == nil {
		rec.Numeric = make(map[string]float64, len(env.numeric))
	}
	for _, col := range env.numeric {
		n := parseNumber(rec.Values[col])
		rec.Numeric[col] = n
		rec.Values[col] = strconv.FormatFloat(n, 'f', -1, 64)
	}
}

func parseNumber(s string) float64 {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

func cleanGeography(ctx context.Context, env *runEnv, rec *model.Record) {
	rec.Attributes.CleanProvince = env.cleaner.Clean(ctx, rec.LocationName)
}

func splitCreated(_ context.Context, _ *runEnv, rec *model.Record) {
	if rec.CreatedTime.IsZero() {
		return
	}
	rec.Attributes.CreatedDate = rec.CreatedTime.Format("2006-01-02")
	rec.Attributes.CreatedYearMonth = rec.CreatedTime.Format("2006-01")
}

// fsp is the final selling price per unit: (before - seller discount) / quantity.
func fsp(_ context.Context, env *runEnv, rec *model.Record) {
	cols := env.rules.Columns
	before, ok1 := rec.Numeric[cols.SubtotalBefore]
	seller, ok2 := rec.Numeric[cols.SellerDiscount]
	qty, ok3 := rec.Numeric[cols.Quantity]
	if !ok1 || !ok2 || !ok3 || qty == 0 {
		return
	}
	v := (before - seller) / qty
	rec.Attributes.FSP = &v
}

func subtotalUSD(_ context.Context, env *runEnv, rec *model.Record) {
	after, ok := rec.Numeric[env.rules.Columns.SubtotalAfter]
	if !ok {
		return
	}
	v := math.Round(after/env.rules.USDRate*100) / 100
	rec.Attributes.SubtotalUSD = &v
}

// voucher is the platform-funded share of the post-seller-discount subtotal.
func voucher(_ context.Context, env *runEnv, rec *model.Record) {
	cols := env.rules.Columns
	before, ok1 := rec.Numeric[cols.SubtotalBefore]
	seller, ok2 := rec.Numeric[cols.SellerDiscount]
	platform, ok3 := rec.Numeric[cols.PlatformDiscount]
	if !ok1 || !ok2 || !ok3 || before == seller {
		return
	}
	v := platform / (before - seller)
	rec.Attributes.Voucher = &v
}
