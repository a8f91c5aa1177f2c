package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/sweep/internal/common"
	"github.com/Veraticus/sweep/internal/model"
)

func TestDefault(t *testing.T) {
	rules, err := Default()
	require.NoError(t, err)

	assert.Equal(t, 20000, rules.ChunkSize)
	assert.Equal(t, "5g", rules.SizeExempt)
	assert.Equal(t, "220ml", rules.DefaultSize)
	assert.InDelta(t, 25800.0, rules.USDRate, 0.001)
	assert.Equal(t, 500*time.Millisecond, rules.Translation.Delay)
	assert.True(t, rules.Translation.Enabled)
	assert.Equal(t, "Product Name", rules.Columns.Product)
	assert.Equal(t, model.Vocabulary{"Grow", "PediaSure", "Ensure", "Similac", "Glucerna"}, rules.Brands)
	assert.Len(t, rules.SizeOutliers, 4)
	assert.Len(t, rules.Gift.Rules, 9)
	assert.Equal(t, "Milk Powder", rules.Formats.Powder)
	assert.NotEmpty(t, rules.Geography.Aliases)
	require.NoError(t, rules.Validate())
}

func TestParse_OverridesDefaults(t *testing.T) {
	rules, err := Default()
	require.NoError(t, err)

	data := []byte(`
chunkSize: 500
brands: [Similac, Ensure]
translation:
  enabled: false
gift:
  rules:
    - key: QUÀ
      value: TẶNG QUÀ
`)
	require.NoError(t, Parse(data, rules))

	assert.Equal(t, 500, rules.ChunkSize)
	assert.Equal(t, model.Vocabulary{"Similac", "Ensure"}, rules.Brands)
	assert.False(t, rules.Translation.Enabled)
	assert.Equal(t, []model.GiftRule{{Key: "QUÀ", Value: "TẶNG QUÀ"}}, rules.Gift.Rules)
	// Untouched fields keep their defaults.
	assert.Equal(t, "220ml", rules.DefaultSize)
	assert.Equal(t, model.Vocabulary{"Quyền Leo", "Hằng Du Mục"}, rules.KOLs)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "malformed yaml", data: "chunkSize: [1"},
		{name: "zero chunk size", data: "chunkSize: 0"},
		{name: "negative workers", data: "workers: -1"},
		{name: "missing product column", data: "columns:\n  product: \"\""},
		{name: "duplicate gift key", data: "gift:\n  rules:\n    - {key: A, value: X}\n    - {key: A, value: Y}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules, err := Default()
			require.NoError(t, err)
			assert.ErrorIs(t, Parse([]byte(tt.data), rules), common.ErrInvalidConfig)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 2\nsizeExempt: 4g\n"), 0o600))

	rules, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, rules.Workers)
	assert.Equal(t, "4g", rules.SizeExempt)

	rules, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 4, rules.Workers)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestRules_AddGift(t *testing.T) {
	rules, err := Default()
	require.NoError(t, err)
	before := len(rules.Gift.Rules)

	require.NoError(t, rules.AddGift("TẶNG NỒI CƠM", "TẶNG NỒI CƠM ĐIỆN"))
	assert.Len(t, rules.Gift.Rules, before+1)

	assert.ErrorIs(t, rules.AddGift("TẶNG NỒI CƠM", "TẶNG NỒI CƠM ĐIỆN"), ErrDuplicateGiftRule)
	assert.ErrorIs(t, rules.AddGift("TẶNG NỒI CƠM", "KHÁC"), ErrDuplicateGiftKey)
	assert.ErrorIs(t, rules.AddGift(" ", "X"), ErrEmptyGiftRule)
	assert.Len(t, rules.Gift.Rules, before+1)
}

func TestRules_Conversions(t *testing.T) {
	rules, err := Default()
	require.NoError(t, err)

	opts := rules.ExtractOptions()
	assert.Equal(t, rules.Brands, opts.Brands)
	assert.Equal(t, "Liquid Milk", opts.Formats.Liquid)
	assert.Equal(t, "TẶNG", opts.Gift.Token)

	norm := rules.NormalizerConfig()
	assert.Equal(t, [2]string{"dac lak", "dak lak"}, norm.Aliases[0])

	fb := rules.FallbackOptions()
	assert.Equal(t, "vi", fb.TargetLanguage)
	assert.Equal(t, 3, fb.Retry.MaxAttempts)
}

func TestExpandPath(t *testing.T) {
	t.Setenv("SWEEP_TEST_DIR", "/data")
	assert.Equal(t, "/data/rules.yaml", ExpandPath("$SWEEP_TEST_DIR/rules.yaml"))
	assert.Equal(t, "", ExpandPath(""))

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "x.yaml"), ExpandPath("~/x.yaml"))
}

func TestFindRules(t *testing.T) {
	xdg := t.TempDir()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("HOME", home)

	path, err := FindRules()
	require.NoError(t, err)
	assert.Empty(t, path, "built-in rules when no file exists")

	homeRules := filepath.Join(home, ".config", "sweep", RulesFileName)
	require.NoError(t, os.MkdirAll(filepath.Dir(homeRules), 0o750))
	require.NoError(t, os.WriteFile(homeRules, []byte("chunkSize: 10\n"), 0o600))

	path, err = FindRules()
	require.NoError(t, err)
	assert.Equal(t, homeRules, path)

	xdgRules := filepath.Join(xdg, "sweep", RulesFileName)
	require.NoError(t, os.MkdirAll(filepath.Dir(xdgRules), 0o750))
	require.NoError(t, os.WriteFile(xdgRules, []byte("chunkSize: 20\n"), 0o600))

	path, err = FindRules()
	require.NoError(t, err)
	assert.Equal(t, xdgRules, path, "XDG config wins over the home fallback")
}
