package spreadsheet

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestReadCSVWithHeader(t *testing.T) {
	in := "Back,Front,Notes\nhello,hola,greeting\n,adios,\n\nthanks,gracias,\n"
	res, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(res.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %+v", res.Rows)
	}
	first := res.Rows[0]
	if first.Front != "hola" || first.Back != "hello" || first.Line != 2 {
		t.Fatalf("unexpected first row: %+v", first)
	}
	if first.Explanation == nil || *first.Explanation != "greeting" || first.Hint != nil {
		t.Fatalf("unexpected optional fields: %+v", first)
	}
	if res.Rows[1].Explanation != nil {
		t.Fatalf("blank explanation should be nil: %+v", res.Rows[1])
	}
	if len(res.Skipped) != 1 || !strings.HasPrefix(res.Skipped[0], "row 3") {
		t.Fatalf("unexpected skipped: %v", res.Skipped)
	}
}

func TestReadCSVWithoutHeader(t *testing.T) {
	res, err := ReadCSV(strings.NewReader("uno,one,number\ndos,two\n"))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(res.Rows) != 2 || res.Rows[0].Line != 1 {
		t.Fatalf("unexpected rows: %+v", res.Rows)
	}
	if res.Rows[0].Hint == nil || *res.Rows[0].Hint != "number" {
		t.Fatalf("expected third column as hint: %+v", res.Rows[0])
	}
}

func TestReadWorkbook(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Front", "Back", "Hint"},
		{"chat", "cat", "animal"},
		{"chien", "dog"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	data := buf.Bytes()

	res, err := ReadWorkbook(bytes.NewReader(data), "")
	if err != nil {
		t.Fatalf("ReadWorkbook: %v", err)
	}
	if len(res.Rows) != 2 || res.Rows[1].Front != "chien" || res.Rows[1].Hint != nil {
		t.Fatalf("unexpected rows: %+v", res.Rows)
	}
	if res.Rows[0].Hint == nil || *res.Rows[0].Hint != "animal" {
		t.Fatalf("unexpected hint: %+v", res.Rows[0])
	}

	if _, err := ReadWorkbook(bytes.NewReader(data), "Missing"); err == nil {
		t.Fatal("expected error for missing sheet")
	}
}

func TestReadFileUnsupported(t *testing.T) {
	if _, err := ReadFile("cards.txt", ""); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}
