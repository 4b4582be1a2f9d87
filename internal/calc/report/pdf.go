package report

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"
)

type Row struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type Section struct {
	Heading string `json:"heading"`
	Rows    []Row  `json:"rows"`
}

type Document struct {
	Title    string
	Project  string
	Author   string
	Date     time.Time
	Notes    string
	Sections []Section
	// Chart is a PNG placed after the tables.
	Chart []byte
}

func WritePDF(w io.Writer, doc Document) error {
	if doc.Title == "" {
		doc.Title = "Engineering Report"
	}
	if doc.Date.IsZero() {
		doc.Date = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, doc.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", doc.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", doc.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", doc.Date.Format("2006-01-02")))
	pdf.Ln(10)
	if doc.Notes != "" {
		pdf.MultiCell(0, 6, doc.Notes, "", "L", false)
		pdf.Ln(4)
	}

	for _, s := range doc.Sections {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, s.Heading)
		pdf.Ln(9)
		pdf.SetFont("Helvetica", "", 10)
		for _, r := range s.Rows {
			pdf.CellFormat(90, 6, r.Key, "1", 0, "L", false, 0, "")
			pdf.CellFormat(90, 6, r.Value, "1", 1, "R", false, 0, "")
		}
		pdf.Ln(6)
	}

	if len(doc.Chart) > 0 {
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("chart", opts, bytes.NewReader(doc.Chart))
		pdf.ImageOptions("chart", 15, pdf.GetY(), 180, 0, true, opts, 0, "")
	}
	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}
