package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turtacn/ChemDesc-Engine/internal/domain/descriptor/whim"
	moltypes "github.com/turtacn/ChemDesc-Engine/pkg/types/molecule"
)

func newWhimCommand() *cobra.Command {
	var input string
	var schemeNames []string

	cmd := &cobra.Command{
		Use:   "whim",
		Short: "Compute WHIM 3D shape descriptors",
		Long:  "Compute WHIM descriptors under one or more atomic weighting schemes (unity, mass, polarizability, vdw, electronegativity). Every atom needs 3D coordinates.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cliCtx, err := getCLIContext(cmd)
			if err != nil {
				return err
			}
			m, err := readMoleculeFile(input)
			if err != nil {
				return err
			}
			schemes, err := whim.ParseSchemes(schemeNames)
			if err != nil {
				return err
			}
			results, err := cliCtx.Service.Whim(cmd.Context(), m, schemes)
			if err != nil {
				return err
			}

			out := make([]moltypes.WhimResultDTO, 0, len(schemes))
			for _, scheme := range schemes {
				r := results[scheme]
				out = append(out, moltypes.WhimResultDTO{
					Scheme: string(r.Scheme),
					L1:     r.L1, L2: r.L2, L3: r.L3,
					Nu1: r.Nu1, Nu2: r.Nu2,
					T: r.T, A: r.A, V: r.V, K: r.K,
				})
			}

			if cliCtx.Output == OutputJSON {
				return printJSON(cmd.OutOrStdout(), out)
			}
			rows := [][]string{{"SCHEME", "L1", "L2", "L3", "NU1", "NU2", "T", "A", "V", "K"}}
			for _, r := range out {
				rows = append(rows, []string{
					r.Scheme,
					fmt.Sprintf("%.4f", r.L1), fmt.Sprintf("%.4f", r.L2), fmt.Sprintf("%.4f", r.L3),
					fmt.Sprintf("%.4f", r.Nu1), fmt.Sprintf("%.4f", r.Nu2),
					fmt.Sprintf("%.4f", r.T), fmt.Sprintf("%.4f", r.A),
					fmt.Sprintf("%.4f", r.V), fmt.Sprintf("%.4f", r.K),
				})
			}
			return printTable(cmd.OutOrStdout(), rows)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "molecule JSON file")
	cmd.Flags().StringSliceVar(&schemeNames, "schemes", nil, "weighting schemes (default unity)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
