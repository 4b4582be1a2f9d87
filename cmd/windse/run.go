package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"WindSE/internal/calc/bos"
	"WindSE/internal/calc/install"
	"WindSE/internal/calc/premium/autodesign"
	"WindSE/internal/calc/premium/batch"
	"WindSE/internal/calc/premium/importer"
	"WindSE/internal/calc/report"
	"WindSE/internal/calc/servo"
	"WindSE/internal/calc/tower"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

func loadYAML(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func saveBook(dir, name string, f *excelize.File, err error) error {
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(filepath.Join(dir, name))
}

func savePDF(dir, name string, doc report.Document) error {
	out, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	if err := report.WritePDF(out, doc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func runTower(w io.Writer, path, outDir string) error {
	var c tower.Case
	if err := loadYAML(path, &c); err != nil {
		return err
	}
	res, err := tower.Analyze(c)
	if err != nil {
		return err
	}
	sections := report.Tower(res)
	printSections(w, sections)
	fmt.Fprintln(w, res.Notes)
	if outDir == "" {
		return nil
	}
	f, err := report.TowerXLSX(res)
	if err := saveBook(outDir, "tower.xlsx", f, err); err != nil {
		return err
	}
	return savePDF(outDir, "tower.pdf", report.Document{Title: "Tower analysis", Project: path, Sections: sections, Notes: res.Notes})
}

func runSize(w io.Writer, path string) error {
	var in autodesign.TowerAutoInput
	if err := loadYAML(path, &in); err != nil {
		return err
	}
	res, err := autodesign.Tower(in)
	if err != nil {
		return err
	}
	printSections(w, []report.Section{{Heading: "Wall sizing", Rows: []report.Row{
		{Key: "Thickness scale", Value: fmt.Sprintf("%.4f", res.Scale)},
		{Key: "Tower mass [kg]", Value: fmt.Sprintf("%.0f", res.TowerMassKg)},
		{Key: "Max utilization", Value: fmt.Sprintf("%.3f", res.MaxUtilization)},
		{Key: "Min weldability", Value: fmt.Sprintf("%.3f", res.MinWeldability)},
	}}})
	return nil
}

func runPowerCurve(w io.Writer, path, outDir string) error {
	var req servo.Request
	if err := loadYAML(path, &req); err != nil {
		return err
	}
	res, err := servo.Run(req)
	if err != nil {
		return err
	}
	sections := report.PowerCurve(res)
	printSections(w, sections)
	printSamples(w, res.Samples)
	if outDir == "" {
		return nil
	}
	f, err := report.PowerCurveXLSX(res.Result)
	if err := saveBook(outDir, "power_curve.xlsx", f, err); err != nil {
		return err
	}
	png, err := report.PowerCurvePNG(res.Result, report.DefaultChartSize[0], report.DefaultChartSize[1])
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outDir, "power_curve.png"), png, 0o644); err != nil {
		return err
	}
	return savePDF(outDir, "power_curve.pdf", report.Document{Title: "Power curve", Project: path, Sections: sections, Chart: png, Notes: res.Notes})
}

func runCollection(w io.Writer, path, workbook, outDir string) error {
	var in bos.CollectionInput
	switch {
	case workbook != "":
		f, err := excelize.OpenFile(workbook)
		if err != nil {
			return err
		}
		in, err = importer.ReadCollection(f)
		f.Close()
		if err != nil {
			return err
		}
	case path != "":
		if err := loadYAML(path, &in); err != nil {
			return err
		}
	default:
		return fmt.Errorf("a plant file or --xlsx workbook is required")
	}
	res, err := bos.Collection{Verbose: true, Out: w}.Compute(in)
	if err != nil {
		return err
	}
	if outDir == "" {
		return nil
	}
	f, err := report.CollectionXLSX(res)
	return saveBook(outDir, "collection.xlsx", f, err)
}

func runInstall(w io.Writer, path string) error {
	var req install.Request
	if err := loadYAML(path, &req); err != nil {
		return err
	}
	res, err := install.Plan(req)
	if err != nil {
		return err
	}
	printSchedule(w, res)
	return nil
}

func runBatch(w io.Writer, path string) error {
	var in batch.Input
	if err := loadYAML(path, &in); err != nil {
		return err
	}
	res, err := batch.Run(in)
	if err != nil {
		return err
	}
	for i, t := range res.Towers {
		fmt.Fprintf(w, "tower %d: mass %.0f kg, max utilization %.3f\n", i, t.Mass.TowerMassKg, t.MaxUtilization)
	}
	for i, p := range res.PowerCurves {
		fmt.Fprintf(w, "power curve %d: rated %.2f m/s (%s)\n", i, p.RatedVMS, p.Binding)
	}
	for i, c := range res.Collections {
		var total float64
		for _, r := range c.ModuleTypeOperation {
			total += r.CostPerProject
		}
		fmt.Fprintf(w, "collection %d: %.2f USD\n", i, total)
	}
	return nil
}
