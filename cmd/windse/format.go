package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"WindSE/internal/calc/install"
	"WindSE/internal/calc/report"
	"WindSE/internal/calc/servo"
)

func printSections(w io.Writer, sections []report.Section) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, s := range sections {
		fmt.Fprintf(tw, "%s\n", s.Heading)
		for _, r := range s.Rows {
			fmt.Fprintf(tw, "  %s\t%s\n", r.Key, r.Value)
		}
	}
	tw.Flush()
}

func printSamples(w io.Writer, samples []servo.Sample) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "V [m/s]\tOmega [rpm]\tPitch [deg]\tP [kW]\tT [kN]\tCp\tRegion\t")
	for _, s := range samples {
		fmt.Fprintf(tw, "%.2f\t%.2f\t%.2f\t%.1f\t%.1f\t%.3f\t%s\t\n", s.VMS, s.OmegaRPM, s.PitchDeg, s.PowerW/1e3, s.ThrustN/1e3, s.Cp, s.Region)
	}
	tw.Flush()
}

func printSchedule(w io.Writer, s install.Schedule) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, st := range s.Steps {
		fmt.Fprintf(tw, "%s\t%.2f h\n", st.Name, st.Hours)
	}
	fmt.Fprintf(tw, "total\t%.2f h\n", s.TotalHours)
	tw.Flush()
	if s.Notes != "" {
		fmt.Fprintln(w, s.Notes)
	}
}

func printProcessTimes(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "process\tvalue\tunit")
	for _, e := range install.Default().Entries() {
		fmt.Fprintf(tw, "%s\t%g\t%s\n", e.Name, e.Value, e.Unit)
	}
	return tw.Flush()
}
