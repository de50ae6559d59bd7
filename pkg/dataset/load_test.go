package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tealeg/xlsx/v3"

	"github.com/matzehuels/geoquick/pkg/errors"
)

func TestColumnNames(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   []string
	}{
		{"plain", []string{"a", "b"}, []string{"a", "b"}},
		{"bom", []string{"\ufefftype", "SiO2"}, []string{"type", "SiO2"}},
		{"blank", []string{"a", "", " "}, []string{"a", "Unnamed: 1", "Unnamed: 2"}},
		{"duplicates", []string{"x", "x", "x", "y"}, []string{"x", "x.1", "x.2", "y"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, columnNames(tt.header)); diff != "" {
				t.Errorf("columnNames() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFromRecords_ColumnKinds(t *testing.T) {
	ds, err := FromRecords(
		[]string{"type", "SiO2", "note", "empty"},
		[][]string{
			{"MORB", "49.1", "NA", ""},
			{"OIB", "nan", "fresh"},
			{"arc", "N/A", "altered", "", "extra"},
		},
	)
	if err != nil {
		t.Fatal(err)
	}
	if !ds.IsNumeric("SiO2") {
		t.Error("SiO2 should be numeric")
	}
	if ds.IsNumeric("type") || ds.IsNumeric("note") {
		t.Error("type and note should be categorical")
	}
	if ds.IsNumeric("empty") {
		t.Error("an all-missing column should not be numeric")
	}
	if got := ds.Value("note", 0); got != "" {
		t.Errorf("NA should read as missing, got %q", got)
	}
	if len(ds.Columns()) != 4 {
		t.Errorf("extra cells should be truncated: %v", ds.Columns())
	}
}

func TestFromRecords_NoHeader(t *testing.T) {
	if _, err := FromRecords(nil, nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("FromRecords(nil) error = %v, want ErrCodeInvalidInput", err)
	}
}

func TestReadCSV_Tab(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader("type\tSiO2\nMORB\t49.5\n"), '\t')
	if err != nil {
		t.Fatal(err)
	}
	if got := ds.Value("SiO2", 0); got != "49.5" {
		t.Errorf("SiO2 = %q, want 49.5", got)
	}
}

func TestReadCSV_Empty(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader(""), ','); err == nil {
		t.Error("ReadCSV(\"\") should fail")
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}

	tests := []struct {
		name     string
		path     string
		wantCode errors.Code
		wantRows int
	}{
		{"csv", write("a.csv", "type,SiO2\nMORB,49\nOIB,47\n"), "", 2},
		{"txt is tab separated", write("b.txt", "type\tSiO2\nMORB\t49\n"), "", 1},
		{"tsv", write("c.tsv", "type\tSiO2\nMORB\t49\n"), "", 1},
		{"unsupported", write("d.json", "{}"), errors.ErrCodeInvalidFormat, 0},
		{"missing", filepath.Join(dir, "nope.csv"), errors.ErrCodeFileNotFound, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := Open(tt.path)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("Open() error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Open() error: %v", err)
			}
			if ds.Len() != tt.wantRows {
				t.Errorf("Len() = %d, want %d", ds.Len(), tt.wantRows)
			}
			if !ds.Has("SiO2") {
				t.Errorf("columns = %v, want SiO2", ds.Columns())
			}
		})
	}
}

func TestOpen_XLSX(t *testing.T) {
	wb := xlsx.NewFile()
	sh, err := wb.AddSheet("samples")
	if err != nil {
		t.Fatal(err)
	}
	for _, rec := range [][]string{{"type", "SiO2"}, {"MORB", "49.5"}, {"OIB", "47"}} {
		row := sh.AddRow()
		for _, v := range rec {
			row.AddCell().SetString(v)
		}
	}
	path := filepath.Join(t.TempDir(), "samples.xlsx")
	if err := wb.Save(path); err != nil {
		t.Fatal(err)
	}

	ds, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if ds.Len() != 2 {
		t.Errorf("Len() = %d, want 2", ds.Len())
	}
	if !ds.IsNumeric("SiO2") {
		t.Error("SiO2 should be numeric")
	}
	if got := ds.Value("type", 1); got != "OIB" {
		t.Errorf("type[1] = %q, want OIB", got)
	}
}
