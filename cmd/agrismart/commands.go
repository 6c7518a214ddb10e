package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"agrismart/app"
	"agrismart/domain/artifacts"
	"agrismart/internal/config"
	"agrismart/internal/container"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

const noInputMessage = "Error: No input data provided"

// cli builds the container lazily so usage errors never touch config or disk
type cli struct {
	c *container.Container
}

func (a *cli) container(ctx context.Context) (*container.Container, error) {
	if a.c != nil {
		return a.c, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	c, err := container.New(cfg, nil)
	if err != nil {
		return nil, err
	}
	if err := c.InitHistory(ctx); err != nil {
		return nil, err
	}
	a.c = c
	return c, nil
}

func (a *cli) close() {
	if a.c != nil {
		_ = a.c.Close()
		a.c = nil
	}
}

func newRootCmd() *cobra.Command {
	a := &cli{}

	root := &cobra.Command{
		Use:   "agrismart <command> [json]",
		Short: "Crop yield prediction and crop recommendation",
		Long: `AgriSmart trains random forest models on synthetic agronomic data and
answers yield and crop recommendation queries. Every command prints one JSON document.

Commands: train, predict_yield, recommend_crops, status, export_dataset, history`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unknown command: %s\n", args[0])
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	root.AddCommand(
		newTrainCmd(a),
		newPredictYieldCmd(a),
		newRecommendCropsCmd(a),
		newStatusCmd(a),
		newExportDatasetCmd(a),
		newHistoryCmd(a),
	)
	return root
}

func newTrainCmd(a *cli) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Generate data, train both models and persist them",
		Long: `Train both forests and persist them to the model directory.

With --from the records are read back from an xlsx workbook written by
export_dataset instead of being generated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := a.container(ctx)
			if err != nil {
				return writeError(cmd.OutOrStdout(), err)
			}

			var bundle *artifacts.Bundle
			if from != "" {
				ds, rerr := c.Reader.Read(ctx, from)
				if rerr != nil {
					return writeError(cmd.OutOrStdout(), rerr)
				}
				bundle, err = c.Trainer.TrainOn(ctx, ds, c.TrainingOptions())
			} else {
				bundle, err = c.Trainer.Train(ctx, c.TrainingOptions())
			}
			if err != nil {
				return writeError(cmd.OutOrStdout(), err)
			}
			return writeJSON(cmd.OutOrStdout(), bundle.Stats)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Train on records from a workbook written by export_dataset")
	return cmd
}

func newPredictYieldCmd(a *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "predict_yield <json>",
		Short: "Predict the yield of a crop under given conditions",
		Long: `Predict the yield of a crop. Missing fields default to crop=Rice, state=Punjab,
district=Ludhiana, temperature=25, humidity=65, rainfall=800, ph=6.8,
nitrogen=120, phosphorus=60, potassium=80.

Example: agrismart predict_yield '{"crop":"Wheat","state":"Punjab","temperature":22}'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrediction(cmd, a, args, func(ctx context.Context, p *app.Predictor, raw string) (interface{}, error) {
				in, err := app.ParseInput(raw)
				if err != nil {
					return nil, err
				}
				return p.PredictYield(ctx, in)
			})
		},
	}
}

func newRecommendCropsCmd(a *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "recommend_crops <json>",
		Short: "Rank the most suitable crops for a location and conditions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrediction(cmd, a, args, func(ctx context.Context, p *app.Predictor, raw string) (interface{}, error) {
				in, err := app.ParseInput(raw)
				if err != nil {
					return nil, err
				}
				return p.RecommendCrops(ctx, in)
			})
		},
	}
}

// runPrediction validates the argument before any model is loaded or trained
func runPrediction(cmd *cobra.Command, a *cli, args []string, predict func(context.Context, *app.Predictor, string) (interface{}, error)) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		fmt.Fprintln(out, noInputMessage)
		return nil
	}
	if _, err := app.ParseInput(args[0]); err != nil {
		return writeError(out, err)
	}

	ctx := cmd.Context()
	c, err := a.container(ctx)
	if err != nil {
		return writeError(out, err)
	}
	p, err := c.Predictor(ctx)
	if err != nil {
		return writeError(out, err)
	}
	result, err := predict(ctx, p, args[0])
	if err != nil {
		return writeError(out, err)
	}
	return writeJSON(out, result)
}

type statusReport struct {
	ModelDir  string          `json:"model_dir"`
	Trained   bool            `json:"trained"`
	Artifacts map[string]bool `json:"artifacts"`
	Stats     interface{}     `json:"stats"`
}

func newStatusCmd(a *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which artifacts exist and the stored training statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := a.container(ctx)
			if err != nil {
				return writeError(cmd.OutOrStdout(), err)
			}
			present, err := c.Store.Exists(ctx)
			if err != nil {
				return writeError(cmd.OutOrStdout(), err)
			}

			report := statusReport{ModelDir: c.Store.Dir(), Trained: true, Artifacts: present}
			for _, ok := range present {
				report.Trained = report.Trained && ok
			}
			if stats, err := c.Store.LoadStats(ctx); err == nil {
				report.Stats = stats
			}
			return writeJSON(cmd.OutOrStdout(), report)
		},
	}
}

func newExportDatasetCmd(a *cli) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export_dataset",
		Short: "Write the seeded synthetic training dataset to an Excel workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := a.container(ctx)
			if err != nil {
				return writeError(cmd.OutOrStdout(), err)
			}
			opts := c.TrainingOptions()
			ds, err := c.Generator.Generate(ctx, opts.Samples, opts.Seed)
			if err != nil {
				return writeError(cmd.OutOrStdout(), err)
			}
			if err := c.Exporter.Export(ctx, ds, out); err != nil {
				return writeError(cmd.OutOrStdout(), err)
			}
			return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
				"path":    out,
				"records": ds.Len(),
				"seed":    ds.Seed,
			})
		},
	}

	cmd.Flags().StringVar(&out, "out", "agrismart_dataset.xlsx", "Output workbook path")
	return cmd
}

func newHistoryCmd(a *cli) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent predictions from the history database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := a.container(ctx)
			if err != nil {
				return writeError(cmd.OutOrStdout(), err)
			}
			if c.History == nil {
				return writeError(cmd.OutOrStdout(), fmt.Errorf("prediction history is not configured; set %sHISTORY_DSN", config.EnvPrefix))
			}
			records, err := c.History.ListRecent(ctx, limit)
			if err != nil {
				return writeError(cmd.OutOrStdout(), err)
			}
			total, err := c.History.Count(ctx)
			if err != nil {
				return writeError(cmd.OutOrStdout(), err)
			}
			return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
				"predictions": records,
				"total":       total,
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of predictions to list")
	return cmd
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// writeError renders err as {"error": message}; the command itself succeeds
func writeError(w io.Writer, err error) error {
	return writeJSON(w, map[string]string{"error": strings.TrimSpace(err.Error())})
}
