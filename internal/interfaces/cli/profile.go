package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	moltypes "github.com/turtacn/ChemDesc-Engine/pkg/types/molecule"
)

func newProfileCommand() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Compute the full descriptor profile of a molecule",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cliCtx, err := getCLIContext(cmd)
			if err != nil {
				return err
			}
			m, err := readMoleculeFile(input)
			if err != nil {
				return err
			}
			profile, err := cliCtx.Service.Profile(cmd.Context(), m)
			if err != nil {
				return err
			}

			dto := moltypes.FromProfile(m.Name(), profile)
			if cliCtx.Output == OutputJSON {
				return printJSON(cmd.OutOrStdout(), dto)
			}
			return printTable(cmd.OutOrStdout(), [][]string{
				{"Name", dto.Name},
				{"Formula", dto.Formula},
				{"Molecular weight", fmt.Sprintf("%.3f", dto.MolecularWeight)},
				{"Atoms", strconv.Itoa(dto.AtomCount)},
				{"Bonds", strconv.Itoa(dto.BondCount)},
				{"Heavy atoms", strconv.Itoa(dto.HeavyAtoms)},
				{"H-bond acceptors", strconv.Itoa(dto.Acceptors)},
				{"H-bond donors", strconv.Itoa(dto.Donors)},
				{"Rotatable bonds", strconv.Itoa(dto.RotatableBonds)},
				{"Rings", strconv.Itoa(dto.Rings)},
				{"Aromatic rings", strconv.Itoa(dto.AromaticRings)},
			})
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "molecule JSON file")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func newAcceptorsCommand() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "acceptors",
		Short: "Count hydrogen-bond acceptors of a molecule",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cliCtx, err := getCLIContext(cmd)
			if err != nil {
				return err
			}
			m, err := readMoleculeFile(input)
			if err != nil {
				return err
			}
			count, err := cliCtx.Service.Acceptors(cmd.Context(), m)
			if err != nil {
				return err
			}

			if cliCtx.Output == OutputJSON {
				return printJSON(cmd.OutOrStdout(), moltypes.AcceptorCountDTO{Name: m.Name(), Count: count})
			}
			return printTable(cmd.OutOrStdout(), [][]string{
				{"Name", m.Name()},
				{"H-bond acceptors", strconv.Itoa(count)},
			})
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "molecule JSON file")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
