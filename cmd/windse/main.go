package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "windse",
		Short:        "Wind plant systems engineering calculators",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(towerCmd())
	rootCmd.AddCommand(sizeCmd())
	rootCmd.AddCommand(powerCurveCmd())
	rootCmd.AddCommand(collectionCmd())
	rootCmd.AddCommand(installCmd())
	rootCmd.AddCommand(processTimesCmd())
	rootCmd.AddCommand(batchCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func towerCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "tower [case.yaml]",
		Short: "Discretize a tower, aggregate its mass and run its load cases",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runTower(os.Stdout, args[0], out)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "directory for tower.xlsx and tower.pdf")
	return cmd
}

func sizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "size [sizing.yaml]",
		Short: "Scale tower wall thickness until every check passes",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runSize(os.Stdout, args[0])
		},
	}
}

func powerCurveCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "powercurve [curve.yaml]",
		Short: "Regulate a rotor over a wind speed sweep",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runPowerCurve(os.Stdout, args[0], out)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "directory for power_curve.xlsx, .png and .pdf")
	return cmd
}

func collectionCmd() *cobra.Command {
	var out, workbook string
	cmd := &cobra.Command{
		Use:   "collection [plant.yaml]",
		Short: "Price the array cable collection system",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runCollection(os.Stdout, path, workbook, out)
		},
	}
	cmd.Flags().StringVarP(&workbook, "xlsx", "x", "", "read cable_specs, rsmeans and inputs sheets from a workbook")
	cmd.Flags().StringVarP(&out, "out", "o", "", "directory for collection.xlsx")
	return cmd
}

func installCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install [request.yaml]",
		Short: "Estimate an installation schedule from the process-time table",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runInstall(os.Stdout, args[0])
		},
	}
}

func processTimesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "process-times",
		Short: "Print the default process-time table",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return printProcessTimes(os.Stdout)
		},
	}
}

func batchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch [batch.yaml]",
		Short: "Run many towers, power curves and collection systems",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runBatch(os.Stdout, args[0])
		},
	}
}
