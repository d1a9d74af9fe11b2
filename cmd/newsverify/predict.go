package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"newsverify/internal/prediction"
)

func predictCmd() *cobra.Command {
	var showConfidence bool

	cmd := &cobra.Command{
		Use:   "predict <headline>",
		Short: "Classify a headline and print the result as JSON",
		Example: `  newsverify predict "Senate passes budget with bipartisan support"
  newsverify predict --confidence "Miracle cure discovered in backyard"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd)
			// Keep stdout clean for the JSON result
			log := zap.NewNop()
			if cmd.Flags().Changed("log-level") {
				log = newLogger(cfg)
			}

			svc, _, err := loadService(cfg, log)
			if err != nil {
				return err
			}

			result, err := svc.Predict(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("prediction failed: %w", err)
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))

			if showConfidence {
				fmt.Fprintln(cmd.OutOrStdout(), prediction.Summary(result.Prediction, result.BinaryPrediction))
				fmt.Fprintf(cmd.OutOrStdout(), "confidence: %d%% (raw decision margin, not a probability)\n",
					prediction.Confidence(result.Scores))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showConfidence, "confidence", false, "also print the verdict and display confidence")
	return cmd
}
