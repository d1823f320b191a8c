package catalog_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yasharm4x/CarbonSense-v5/internal/catalog"
)

func TestDefault_Contents(t *testing.T) {
	c := catalog.Default()

	assert.Equal(t, "1.0.0", c.Version())
	assert.Len(t, c.Categories(), 4)
	assert.Len(t, c.Models("llm"), 15)
	assert.Len(t, c.Models("generative"), 10)
	assert.Len(t, c.Models("ml"), 15)
	assert.Len(t, c.Models("quantized"), 11)
	assert.Len(t, c.DatasetTypes(), 3)
	assert.Len(t, c.Tasks(), 12)
	assert.Len(t, c.Regions(), 5)
	assert.Len(t, c.HardwareProfiles(), 6)
}

func TestDefault_WorkloadKinds(t *testing.T) {
	c := catalog.Default()

	for _, cat := range c.Categories() {
		want := catalog.WorkloadDataPoints
		if cat.Key == "llm" {
			want = catalog.WorkloadTokens
		}
		assert.Equal(t, want, cat.Workload, "category %s", cat.Key)
	}
}

func TestDefault_Lookups(t *testing.T) {
	c := catalog.Default()

	tests := []struct {
		name  string
		found func() bool
		want  bool
	}{
		{"category hit", func() bool { _, ok := c.Category("llm"); return ok }, true},
		{"category miss", func() bool { _, ok := c.Category("nope"); return ok }, false},
		{"model hit", func() bool { _, ok := c.Model("llm", "gpt-4o"); return ok }, true},
		{"model in wrong category", func() bool { _, ok := c.Model("ml", "gpt-4o"); return ok }, false},
		{"model unknown category", func() bool { _, ok := c.Model("nope", "gpt-4o"); return ok }, false},
		{"model blank", func() bool { _, ok := c.Model("llm", ""); return ok }, false},
		{"dataset hit", func() bool { _, ok := c.DatasetType("unstructured"); return ok }, true},
		{"dataset miss", func() bool { _, ok := c.DatasetType("graph"); return ok }, false},
		{"task hit", func() bool { _, ok := c.Task("translation"); return ok }, true},
		{"task miss", func() bool { _, ok := c.Task(""); return ok }, false},
		{"region hit", func() bool { _, ok := c.Region("eu-west"); return ok }, true},
		{"region miss", func() bool { _, ok := c.Region("mars"); return ok }, false},
		{"hardware hit", func() bool { _, ok := c.Hardware("tpu"); return ok }, true},
		{"hardware miss", func() bool { _, ok := c.Hardware("fpga"); return ok }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.found())
		})
	}
}

func TestDefault_RecordValues(t *testing.T) {
	c := catalog.Default()

	m, ok := c.Model("llm", "gpt-4o")
	require.True(t, ok)
	assert.Equal(t, "GPT-4o", m.Name)
	assert.InDelta(t, 175, m.ParamsBillions, 1e-9)
	assert.Equal(t, "OpenAI", m.Company)
	assert.InDelta(t, 1.0, m.EnergyMultiplier, 1e-9)

	r, ok := c.Region("us-west")
	require.True(t, ok)
	assert.InDelta(t, 350, r.CarbonIntensity, 1e-9)
	assert.InDelta(t, 1.2, r.PUE, 1e-9)

	h, ok := c.Hardware("gpu")
	require.True(t, ok)
	assert.InDelta(t, 0.32, h.Factor(), 1e-9)

	d, ok := c.DatasetType("combined")
	require.True(t, ok)
	assert.InDelta(t, 1.6, d.EnergyMultiplier, 1e-9)
}

func TestCatalog_AccessorsReturnCopies(t *testing.T) {
	c := catalog.Default()

	models := c.Models("llm")
	models[0].Name = "mutated"
	cat, ok := c.Category("llm")
	require.True(t, ok)
	cat.Models[0].Name = "mutated too"

	m, ok := c.Model("llm", models[0].Key)
	require.True(t, ok)
	assert.Equal(t, "GPT-4o", m.Name)
}

func TestNew_NormalizesBlankWorkload(t *testing.T) {
	c, err := catalog.New(catalog.Document{
		Categories: []catalog.Category{{Key: "misc", Name: "Misc"}},
	})
	require.NoError(t, err)

	cat, ok := c.Category("misc")
	require.True(t, ok)
	assert.Equal(t, catalog.WorkloadDataPoints, cat.Workload)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		doc     catalog.Document
		wantErr []error
	}{
		{
			name: "valid empty",
			doc:  catalog.Document{},
		},
		{
			name: "empty key",
			doc: catalog.Document{
				Regions: []catalog.Region{{Name: "x", CarbonIntensity: 1, PUE: 1}},
			},
			wantErr: []error{catalog.ErrEmptyKey},
		},
		{
			name: "duplicate task",
			doc: catalog.Document{
				Tasks: []catalog.Task{{Key: "a", EnergyMultiplier: 1}, {Key: "a", EnergyMultiplier: 2}},
			},
			wantErr: []error{catalog.ErrDuplicateKey},
		},
		{
			name: "bad workload",
			doc: catalog.Document{
				Categories: []catalog.Category{{Key: "c", Workload: "pixels"}},
			},
			wantErr: []error{catalog.ErrInvalidWorkload},
		},
		{
			name: "negative model multiplier and params",
			doc: catalog.Document{
				Categories: []catalog.Category{{
					Key:      "c",
					Workload: catalog.WorkloadTokens,
					Models:   []catalog.Model{{Key: "m", ParamsBillions: -1, EnergyMultiplier: -0.5}},
				}},
			},
			wantErr: []error{catalog.ErrInvalidParams, catalog.ErrNegativeMultiplier},
		},
		{
			name: "region intensity and pue",
			doc: catalog.Document{
				Regions: []catalog.Region{{Key: "r", CarbonIntensity: 0, PUE: 0.9}},
			},
			wantErr: []error{catalog.ErrInvalidCarbonIntensity, catalog.ErrInvalidPUE},
		},
		{
			name: "hardware power and utilization",
			doc: catalog.Document{
				Hardware: []catalog.Hardware{{Key: "h", PowerKW: 0, Utilization: 1.5}},
			},
			wantErr: []error{catalog.ErrInvalidPower, catalog.ErrInvalidUtilization},
		},
		{
			name:    "malformed version",
			doc:     catalog.Document{Version: "one"},
			wantErr: []error{catalog.ErrInvalidVersion},
		},
		{
			name:    "unsupported version",
			doc:     catalog.Document{Version: "2.1.0"},
			wantErr: []error{catalog.ErrUnsupportedVersion},
		},
		{
			name: "supported minor version",
			doc:  catalog.Document{Version: "1.4.2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := catalog.Validate(tt.doc)
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	_, err := catalog.Parse([]byte("regions:\n  - key: r\n    carbon_intensty: 10\n    pue: 1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding catalog")
}

func TestParse_Empty(t *testing.T) {
	c, err := catalog.Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, c.Categories())
}

func TestMerge(t *testing.T) {
	overlay := catalog.Document{
		Categories: []catalog.Category{
			{
				Key: "llm",
				Models: []catalog.Model{
					{Key: "gpt-4o", Name: "GPT-4o (tuned)", ParamsBillions: 200, Company: "OpenAI", EnergyMultiplier: 1.1},
					{Key: "in-house-7b", Name: "In-house 7B", ParamsBillions: 7, Company: "Acme", EnergyMultiplier: 0.5},
				},
			},
			{Key: "speech", Name: "Speech Models", Workload: catalog.WorkloadDataPoints},
		},
		Regions: []catalog.Region{
			{Key: "us-west", Name: "US West (2026)", CarbonIntensity: 250, PUE: 1.1},
			{Key: "nordics", Name: "Nordics", CarbonIntensity: 30, PUE: 1.08},
		},
	}

	c, err := catalog.Merge(catalog.Default(), overlay)
	require.NoError(t, err)

	llm, ok := c.Category("llm")
	require.True(t, ok)
	assert.Equal(t, "Large Language Models", llm.Name, "blank overlay name inherits base")
	assert.Equal(t, catalog.WorkloadTokens, llm.Workload)
	assert.Len(t, llm.Models, 16)

	m, ok := c.Model("llm", "gpt-4o")
	require.True(t, ok)
	assert.InDelta(t, 200, m.ParamsBillions, 1e-9)

	_, ok = c.Model("llm", "in-house-7b")
	assert.True(t, ok)

	_, ok = c.Category("speech")
	assert.True(t, ok)

	regions := c.Regions()
	require.Len(t, regions, 6)
	assert.Equal(t, "us-west", regions[0].Key, "replaced entries keep their position")
	assert.InDelta(t, 250, regions[0].CarbonIntensity, 1e-9)
	assert.Equal(t, "nordics", regions[5].Key)

	// The default catalog is untouched.
	r, ok := catalog.Default().Region("us-west")
	require.True(t, ok)
	assert.InDelta(t, 350, r.CarbonIntensity, 1e-9)
}

func TestMerge_InvalidOverlay(t *testing.T) {
	_, err := catalog.Merge(catalog.Default(), catalog.Document{
		Regions: []catalog.Region{{Key: "bad", CarbonIntensity: -5, PUE: 1}},
	})
	assert.ErrorIs(t, err, catalog.ErrInvalidCarbonIntensity)
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	overlay := filepath.Join(dir, "overlay.yaml")
	require.NoError(t, os.WriteFile(overlay, []byte(strings.Join([]string{
		"hardware:",
		"  - { key: fpga, name: FPGA, power_kw: 0.05, utilization: 0.7 }",
		"",
	}, "\n")), 0o600))

	t.Run("empty path uses default", func(t *testing.T) {
		c, err := catalog.Resolve("", false)
		require.NoError(t, err)
		assert.Same(t, catalog.Default(), c)
	})

	t.Run("overlay merges", func(t *testing.T) {
		c, err := catalog.Resolve(overlay, false)
		require.NoError(t, err)
		_, ok := c.Hardware("fpga")
		assert.True(t, ok)
		_, ok = c.Hardware("gpu")
		assert.True(t, ok)
	})

	t.Run("replace drops defaults", func(t *testing.T) {
		c, err := catalog.Resolve(overlay, true)
		require.NoError(t, err)
		_, ok := c.Hardware("fpga")
		assert.True(t, ok)
		assert.Empty(t, c.Regions())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := catalog.Resolve(filepath.Join(dir, "missing.yaml"), false)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestEncode_RoundTripsDefault(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, catalog.Encode(&buf, catalog.Default().Document()))

	c, err := catalog.Parse(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, catalog.Default().Document(), c.Document())
}

func TestParseKind(t *testing.T) {
	k, err := catalog.ParseKind("regions")
	require.NoError(t, err)
	assert.Equal(t, catalog.KindRegions, k)
	assert.Equal(t, "regions", k.String())

	_, err = catalog.ParseKind("planets")
	assert.ErrorIs(t, err, catalog.ErrUnknownKind)
}
