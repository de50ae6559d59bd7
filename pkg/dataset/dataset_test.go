package dataset

import (
	"math"
	"strings"
	"testing"

	"github.com/aclements/go-gg/table"
	"github.com/google/go-cmp/cmp"
)

const samplesCSV = `type,Location,SiO2,MgO
MORB,Pacific,49.1,8.2
OIB,Hawaii,47.3,
MORB,Atlantic,50.2,7.9
,Iceland,48.0,9.1
arc,Andes,56.4,3.3
`

func mustRead(t *testing.T, text string) *Dataset {
	t.Helper()
	ds, err := ReadCSV(strings.NewReader(text), ',')
	if err != nil {
		t.Fatalf("ReadCSV() error: %v", err)
	}
	return ds
}

func TestDataset_Shape(t *testing.T) {
	ds := mustRead(t, samplesCSV)

	if ds.Len() != 5 {
		t.Errorf("Len() = %d, want 5", ds.Len())
	}
	if diff := cmp.Diff([]string{"type", "Location", "SiO2", "MgO"}, ds.Columns()); diff != "" {
		t.Errorf("Columns() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"SiO2", "MgO"}, ds.NumericColumns()); diff != "" {
		t.Errorf("NumericColumns() mismatch (-want +got):\n%s", diff)
	}
	if !ds.HasAll("type", "Location") || ds.Has("FeO") {
		t.Error("Has/HasAll report wrong columns")
	}
	if got := ds.String(); got != "5 rows × 4 columns" {
		t.Errorf("String() = %q", got)
	}
}

func TestDataset_Floats(t *testing.T) {
	ds := mustRead(t, samplesCSV)

	mgo, err := ds.Floats("MgO")
	if err != nil {
		t.Fatalf("Floats() error: %v", err)
	}
	if !math.IsNaN(mgo[1]) {
		t.Errorf("MgO[1] = %v, want NaN", mgo[1])
	}
	if mgo[0] != 8.2 {
		t.Errorf("MgO[0] = %v, want 8.2", mgo[0])
	}

	if _, err := ds.Floats("type"); err == nil {
		t.Error("Floats() on categorical column should fail")
	}
	if _, err := ds.Floats("missing"); err == nil {
		t.Error("Floats() on unknown column should fail")
	}
}

func TestDataset_FloatsConvertsIntColumns(t *testing.T) {
	ds := New(new(table.Builder).Add("n", []int{1, 2, 3}).Done())
	fs, err := ds.Floats("n")
	if err != nil {
		t.Fatalf("Floats() error: %v", err)
	}
	if diff := cmp.Diff([]float64{1, 2, 3}, fs); diff != "" {
		t.Errorf("Floats() mismatch (-want +got):\n%s", diff)
	}
	if got := ds.Value("n", 2); got != "3" {
		t.Errorf("Value() = %q, want %q", got, "3")
	}
}

func TestDataset_Distinct(t *testing.T) {
	ds := mustRead(t, samplesCSV)
	got, err := ds.Distinct("type")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"MORB", "OIB", "arc"}, got); diff != "" {
		t.Errorf("Distinct() mismatch (-want +got):\n%s", diff)
	}
}

func TestDataset_Value(t *testing.T) {
	ds := mustRead(t, samplesCSV)
	tests := []struct {
		col  string
		row  int
		want string
	}{
		{"type", 0, "MORB"},
		{"type", 3, ""},
		{"SiO2", 2, "50.2"},
		{"MgO", 1, ""},
		{"SiO2", 99, ""},
		{"nope", 0, ""},
	}
	for _, tt := range tests {
		if got := ds.Value(tt.col, tt.row); got != tt.want {
			t.Errorf("Value(%q, %d) = %q, want %q", tt.col, tt.row, got, tt.want)
		}
	}
}

func TestDataset_FirstRow(t *testing.T) {
	ds := mustRead(t, samplesCSV)
	if got := ds.FirstRow("type", "MORB"); got != 0 {
		t.Errorf("FirstRow(MORB) = %d, want 0", got)
	}
	if got := ds.FirstRow("Location", "Andes"); got != 4 {
		t.Errorf("FirstRow(Andes) = %d, want 4", got)
	}
	if got := ds.FirstRow("type", "Deccan"); got != -1 {
		t.Errorf("FirstRow(Deccan) = %d, want -1", got)
	}
}

func TestDataset_SortKeys(t *testing.T) {
	ds := mustRead(t, "n,s\n10,b\n9,a\n100,c\n")

	nums := []string{"10", "9", "100"}
	ds.SortKeys("n", nums)
	if diff := cmp.Diff([]string{"9", "10", "100"}, nums); diff != "" {
		t.Errorf("numeric SortKeys mismatch (-want +got):\n%s", diff)
	}

	strs := []string{"c", "a", "b"}
	ds.SortKeys("s", strs)
	if diff := cmp.Diff([]string{"a", "b", "c"}, strs); diff != "" {
		t.Errorf("lexical SortKeys mismatch (-want +got):\n%s", diff)
	}
}

func TestDataset_WithColumn(t *testing.T) {
	ds := mustRead(t, samplesCSV)

	added, err := ds.WithColumn("type_loc", []string{"a", "b", "c", "d", "e"})
	if err != nil {
		t.Fatal(err)
	}
	if len(added.Columns()) != 5 || added.Value("type_loc", 4) != "e" {
		t.Errorf("WithColumn did not append: %v", added.Columns())
	}

	replaced, err := added.WithColumn("type_loc", []string{"v", "w", "x", "y", "z"})
	if err != nil {
		t.Fatal(err)
	}
	if len(replaced.Columns()) != 5 {
		t.Errorf("replacing should not add a column: %v", replaced.Columns())
	}
	if replaced.Value("type_loc", 0) != "v" {
		t.Errorf("Value = %q, want v", replaced.Value("type_loc", 0))
	}
	if ds.Has("type_loc") {
		t.Error("WithColumn mutated the receiver")
	}

	if _, err := ds.WithColumn("short", []string{"a"}); err == nil {
		t.Error("WithColumn with wrong length should fail")
	}
}

func TestDataset_DropMissing(t *testing.T) {
	ds := mustRead(t, samplesCSV)
	got, err := ds.DropMissing("type")
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 4 {
		t.Errorf("Len() = %d, want 4", got.Len())
	}
	for i := range got.Len() {
		if got.Value("type", i) == "" {
			t.Errorf("row %d still has a missing type", i)
		}
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{49.1, "49.1"},
		{3, "3"},
		{math.NaN(), ""},
		{-0.25, "-0.25"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.in); got != tt.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
