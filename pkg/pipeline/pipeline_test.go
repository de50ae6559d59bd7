package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/geoquick/pkg/binning"
	"github.com/matzehuels/geoquick/pkg/dataset"
	"github.com/matzehuels/geoquick/pkg/errors"
	"github.com/matzehuels/geoquick/pkg/io"
	"github.com/matzehuels/geoquick/pkg/style"
)

const samplesCSV = `type,Location,SiO2,MgO
MORB,Pacific,49.1,8.2
OIB,Hawaii,47.3,7.0
MORB,Atlantic,50.2,7.9
,Iceland,48.0,9.1
arc,Andes,56.4,3.3
`

const userCSV = `rock,SiO2
basalt,49.1
andesite,58.0
basalt,48.2
dacite,65.3
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	return path
}

func run(t *testing.T, opts Options) *Result {
	t.Helper()
	res, err := NewRunner(nil, nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	return res
}

func TestOptions_ValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"minimal", Options{Source: "a.csv"}, false},
		{"no source", Options{}, true},
		{"manual mode", Options{Source: "a.csv", BinMode: binning.Manual}, false},
		{"unknown mode", Options{Source: "a.csv", BinMode: "quantile"}, true},
		{"sub-bin without group", Options{Source: "a.csv", SubBin: "SiO2"}, true},
		{"bad group name", Options{Source: "a.csv", Group: "a\x00b"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			err := opts.ValidateAndSetDefaults()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateAndSetDefaults() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if opts.Bins != binning.DefaultBins {
				t.Errorf("Bins = %d, want %d", opts.Bins, binning.DefaultBins)
			}
			if opts.BinMode == "" {
				t.Error("BinMode not defaulted")
			}
			if opts.Logger == nil {
				t.Error("Logger not defaulted")
			}
		})
	}
}

func TestOptions_BinModeAliases(t *testing.T) {
	for _, in := range []binning.Mode{"equal", "equal_width", "EQUAL-WIDTH"} {
		opts := Options{Source: "a.csv", BinMode: in}
		if err := opts.ValidateAndSetDefaults(); err != nil {
			t.Fatalf("ValidateAndSetDefaults(%q) error: %v", in, err)
		}
		if opts.BinMode != binning.EqualWidth {
			t.Errorf("BinMode %q normalized to %q, want %q", in, opts.BinMode, binning.EqualWidth)
		}
	}
}

func TestExecute_BinModeAlias(t *testing.T) {
	res := run(t, Options{
		Source:  writeFile(t, "samples.csv", samplesCSV),
		Group:   "SiO2",
		BinMode: "Manual",
		Edges:   "45,50,60",
	})

	if len(res.Warnings) != 0 {
		t.Errorf("Warnings = %q, want none", res.Warnings)
	}
	if res.GroupColumn != "SiO2_bin" {
		t.Errorf("GroupColumn = %q, want SiO2_bin", res.GroupColumn)
	}
}

func TestExecute_ReferenceCompound(t *testing.T) {
	res := run(t, Options{
		Source: writeFile(t, "samples.csv", samplesCSV),
		Group:  style.CompoundColumn,
	})

	if !res.Reference || !res.Compound {
		t.Fatalf("Reference = %v, Compound = %v, want both true", res.Reference, res.Compound)
	}
	want := []string{"MORB|Atlantic", "MORB|Pacific", "OIB|Hawaii", "arc|Andes"}
	if diff := cmp.Diff(want, res.Groups); diff != "" {
		t.Errorf("Groups mismatch (-want +got):\n%s", diff)
	}
	if !res.Maps.Equal(res.Base) {
		t.Error("compound grouping should reuse the base maps")
	}
	if res.Dataset.Len() != 4 {
		t.Errorf("Dataset.Len() = %d, want 4 (row without type dropped)", res.Dataset.Len())
	}

	got := res.Style("MORB|Pacific")
	if got.Symbol != "circle" || got.Size != 15 {
		t.Errorf("MORB|Pacific symbol/size = %q/%d, want circle/15", got.Symbol, got.Size)
	}
	if got.Opacity != style.DefaultOpacity {
		t.Errorf("Opacity = %v, want default %v", got.Opacity, style.DefaultOpacity)
	}
}

func TestExecute_ReferenceByType(t *testing.T) {
	res := run(t, Options{
		Source: writeFile(t, "samples.csv", samplesCSV),
		Group:  "type",
	})

	if res.Compound {
		t.Error("Compound should only be set for the compound column")
	}
	if res.Maps.Colors["MORB"] != res.Base.Colors["MORB|Pacific"] {
		t.Errorf("MORB color = %q, want first row's compound color %q",
			res.Maps.Colors["MORB"], res.Base.Colors["MORB|Pacific"])
	}
	if res.Maps.Symbols["OIB"] != "square" || res.Maps.Sizes["OIB"] != 20 {
		t.Errorf("OIB symbol/size = %q/%d", res.Maps.Symbols["OIB"], res.Maps.Sizes["OIB"])
	}
}

func TestExecute_NumericGroup(t *testing.T) {
	res := run(t, Options{
		Source: writeFile(t, "samples.csv", samplesCSV),
		Group:  "SiO2",
		Bins:   2,
	})

	if res.GroupColumn != "SiO2_bin" {
		t.Fatalf("GroupColumn = %q, want SiO2_bin", res.GroupColumn)
	}
	if res.Bins == nil || len(res.Bins.Labels) != 2 {
		t.Fatalf("Bins = %+v, want 2 labels", res.Bins)
	}
	if diff := cmp.Diff(res.Bins.Labels, res.Groups); diff != "" {
		t.Errorf("Groups should follow label order (-want +got):\n%s", diff)
	}
	for _, g := range res.Groups {
		if _, ok := res.Maps.Colors[g]; !ok {
			t.Errorf("no color for bin %q", g)
		}
	}
}

func TestExecute_SubBin(t *testing.T) {
	res := run(t, Options{
		Source:  writeFile(t, "samples.csv", samplesCSV),
		Group:   "type",
		SubBin:  "SiO2",
		BinMode: binning.Manual,
		Edges:   "45,50,60",
	})

	if res.GroupColumn != binning.NestedColumn {
		t.Fatalf("GroupColumn = %q, want %q", res.GroupColumn, binning.NestedColumn)
	}
	want := []string{
		"MORB|45.0–50.0",
		"MORB|50.0–60.0",
		"OIB|45.0–50.0",
		"arc|50.0–60.0",
	}
	if diff := cmp.Diff(want, res.Groups); diff != "" {
		t.Errorf("Groups mismatch (-want +got):\n%s", diff)
	}
	if res.Maps.Symbols["MORB|45.0–50.0"] != "circle" {
		t.Errorf("nested MORB group symbol = %q, want circle", res.Maps.Symbols["MORB|45.0–50.0"])
	}
}

func TestExecute_BadEdgesWarns(t *testing.T) {
	res := run(t, Options{
		Source:  writeFile(t, "samples.csv", samplesCSV),
		Group:   "SiO2",
		BinMode: binning.Manual,
		Edges:   "50,45",
	})

	if len(res.Warnings) != 1 {
		t.Fatalf("Warnings = %q, want one", res.Warnings)
	}
	if res.GroupColumn != "" || !res.Maps.Empty() {
		t.Errorf("failed binning should disable grouping, got %q", res.GroupColumn)
	}
}

func TestExecute_SubBinFallsBack(t *testing.T) {
	res := run(t, Options{
		Source:  writeFile(t, "samples.csv", samplesCSV),
		Group:   "type",
		SubBin:  "SiO2",
		BinMode: binning.Manual,
		Edges:   "60",
	})

	if res.GroupColumn != "type" {
		t.Errorf("GroupColumn = %q, want type", res.GroupColumn)
	}
	if len(res.Warnings) != 1 {
		t.Errorf("Warnings = %q, want one", res.Warnings)
	}
}

func TestExecute_Filters(t *testing.T) {
	f, err := dataset.ParseFilter("SiO2 >= 49")
	if err != nil {
		t.Fatal(err)
	}
	res := run(t, Options{
		Source:  writeFile(t, "samples.csv", samplesCSV),
		Group:   "type",
		Filters: []dataset.Filter{f},
	})

	if res.Stats.Filtered != 2 {
		t.Errorf("Stats.Filtered = %d, want 2", res.Stats.Filtered)
	}
	if diff := cmp.Diff([]string{"MORB", "arc"}, res.Groups); diff != "" {
		t.Errorf("Groups mismatch (-want +got):\n%s", diff)
	}
}

func TestExecute_UserDataset(t *testing.T) {
	res := run(t, Options{
		Source: writeFile(t, "rocks.csv", userCSV),
		Group:  "rock",
	})

	if res.Reference {
		t.Fatal("dataset without type/location should not be a reference")
	}
	if !res.Base.Empty() {
		t.Error("Base should be empty for user datasets")
	}
	for _, g := range []string{"andesite", "basalt", "dacite"} {
		if res.Maps.Sizes[g] != style.DefaultFreshSize {
			t.Errorf("size of %q = %d, want %d", g, res.Maps.Sizes[g], style.DefaultFreshSize)
		}
	}
	again := run(t, Options{Source: writeFile(t, "rocks.csv", userCSV), Group: "rock"})
	if !res.Maps.Equal(again.Maps) {
		t.Error("two runs over the same input produced different maps")
	}
}

func TestExecute_NoGroup(t *testing.T) {
	res := run(t, Options{Source: writeFile(t, "samples.csv", samplesCSV)})

	if res.GroupColumn != "" || len(res.Groups) != 0 {
		t.Errorf("GroupColumn = %q, Groups = %q, want none", res.GroupColumn, res.Groups)
	}
	if !res.Maps.Empty() {
		t.Error("Maps should be empty without a grouping")
	}
	if res.Base.Empty() {
		t.Error("Base should still be built for a reference dataset")
	}
}

func TestExecute_MissingGroupColumn(t *testing.T) {
	_, err := NewRunner(nil, nil).Execute(context.Background(), Options{
		Source: writeFile(t, "samples.csv", samplesCSV),
		Group:  "FeO",
	})
	if !errors.Is(err, errors.ErrCodeColumnNotFound) {
		t.Errorf("Execute() error = %v, want COLUMN_NOT_FOUND", err)
	}
}

func TestExecute_ImportExport(t *testing.T) {
	src := writeFile(t, "samples.csv", samplesCSV)
	out := filepath.Join(t.TempDir(), "style.json")

	first := run(t, Options{Source: src, Group: style.CompoundColumn, OutputPath: out})
	doc, err := io.ImportJSON(out)
	if err != nil {
		t.Fatalf("ImportJSON() error: %v", err)
	}
	for _, g := range first.Groups {
		if doc[g].Color == nil || *doc[g].Color != first.Maps.Colors[g] {
			t.Errorf("exported color of %q = %v, want %q", g, doc[g].Color, first.Maps.Colors[g])
		}
	}

	patch := writeFile(t, "patch.json", `{"OIB|Hawaii": {"color": "#123456", "symbol": "star"}}`)
	second := run(t, Options{Source: src, Group: style.CompoundColumn, StylePath: patch})

	if got := second.Maps.Colors["OIB|Hawaii"]; got != "#123456" {
		t.Errorf("imported color = %q, want #123456", got)
	}
	if got := second.Maps.Symbols["OIB"]; got != "star" {
		t.Errorf("imported symbol = %q, want star under the type key", got)
	}
	if second.Maps.Colors["MORB|Pacific"] != first.Maps.Colors["MORB|Pacific"] {
		t.Error("import changed a group it did not name")
	}
}

func TestExecute_BadStyleDocumentWarns(t *testing.T) {
	src := writeFile(t, "samples.csv", samplesCSV)
	patch := writeFile(t, "bad.json", `["not", "an", "object"]`)

	base := run(t, Options{Source: src, Group: "type"})
	res := run(t, Options{Source: src, Group: "type", StylePath: patch})

	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "style document") {
		t.Errorf("Warnings = %q, want one style document warning", res.Warnings)
	}
	if !res.Maps.Equal(base.Maps) {
		t.Error("a rejected document must leave the maps unchanged")
	}
}
