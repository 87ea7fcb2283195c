package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turtacn/ChemDesc-Engine/internal/application/compute"
	"github.com/turtacn/ChemDesc-Engine/internal/domain/fingerprint"
	moltypes "github.com/turtacn/ChemDesc-Engine/pkg/types/molecule"
)

func newSimilarityCommand() *cobra.Command {
	var pathA, pathB, metricName, kindName string
	var size, depth int

	cmd := &cobra.Command{
		Use:   "similarity",
		Short: "Compute fingerprint similarity of two molecules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cliCtx, err := getCLIContext(cmd)
			if err != nil {
				return err
			}
			a, err := readMoleculeFile(pathA)
			if err != nil {
				return err
			}
			b, err := readMoleculeFile(pathB)
			if err != nil {
				return err
			}

			params := compute.SimilarityParams{Size: size, Extent: depth}
			if kindName != "" {
				params.Kind, err = fingerprint.ParseKind(kindName)
				if err != nil {
					return err
				}
			}
			params.Metric, err = fingerprint.ParseMetric(metricName)
			if err != nil {
				return err
			}

			score, err := cliCtx.Service.Similarity(cmd.Context(), a, b, params)
			if err != nil {
				return err
			}

			kind := params.Kind
			if kind == "" {
				kind = fingerprint.KindPath
			}
			if cliCtx.Output == OutputJSON {
				return printJSON(cmd.OutOrStdout(), moltypes.SimilarityResponse{
					Metric:          params.Metric.String(),
					FingerprintKind: kind.String(),
					Score:           score,
				})
			}
			return printTable(cmd.OutOrStdout(), [][]string{
				{"Metric", params.Metric.String()},
				{"Fingerprint", kind.String()},
				{"Score", fmt.Sprintf("%.4f", score)},
			})
		},
	}

	cmd.Flags().StringVarP(&pathA, "a", "a", "", "first molecule JSON file")
	cmd.Flags().StringVarP(&pathB, "b", "b", "", "second molecule JSON file")
	cmd.Flags().StringVar(&metricName, "metric", "tanimoto", "similarity metric: tanimoto|dice|cosine")
	cmd.Flags().StringVar(&kindName, "kind", "", "fingerprint kind: path|environment (default path)")
	cmd.Flags().IntVar(&size, "size", 0, "fingerprint bit length (default from config)")
	cmd.Flags().IntVar(&depth, "depth", 0, "path depth or environment radius (default from config)")
	_ = cmd.MarkFlagRequired("a")
	_ = cmd.MarkFlagRequired("b")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printTable(cmd.OutOrStdout(), [][]string{
				{"Version", Version},
				{"Commit", GitCommit},
				{"Built", BuildDate},
			})
		},
	}
}
