package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"endpointd/internal/params"
	"endpointd/pkg/client"
	"endpointd/pkg/compare"
	"endpointd/pkg/types"
)

// cliConfig carries the explicit context every subcommand runs with: one
// client, one parameter store, no ambient globals.
type cliConfig struct {
	baseURL    string
	paramsFile string
	paramsRed  string
	redisHash  string
	timeout    time.Duration
	log        zerolog.Logger
}

func (c *cliConfig) client() *client.Client {
	return client.New(c.baseURL, client.WithTimeout(c.timeout), client.WithLogger(c.log))
}

func (c *cliConfig) store() (params.Store, error) {
	if c.paramsRed != "" {
		return params.DialRedis(c.paramsRed, c.redisHash), nil
	}
	if c.paramsFile != "" {
		return params.LoadFile(c.paramsFile)
	}
	return nil, fmt.Errorf("no parameter store configured (use --params or --params-redis)")
}

// ctx returns the per-invocation context bounded by the configured timeout.
func (c *cliConfig) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.timeout)
}

func buildRootCmd(log zerolog.Logger) *cobra.Command {
	cfg := &cliConfig{log: log}

	root := &cobra.Command{
		Use:           "endpointctl",
		Short:         "Deploy, invoke, compare, and tear down model endpoints",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfg.baseURL, "base-url", "http://localhost:8080", "Platform base URL")
	root.PersistentFlags().StringVar(&cfg.paramsFile, "params", "", "Parameter store file (.json/.yaml/.toml)")
	root.PersistentFlags().StringVar(&cfg.paramsRed, "params-redis", "", "Parameter store redis address (host:port)")
	root.PersistentFlags().StringVar(&cfg.redisHash, "params-redis-hash", "", "Redis hash key holding the parameters")
	root.PersistentFlags().DurationVar(&cfg.timeout, "timeout", 5*time.Minute, "Overall timeout per command")

	root.AddCommand(
		newDeployCmd(cfg),
		newInvokeCmd(cfg),
		newCompareCmd(cfg),
		newDeleteCmd(cfg),
		newStatusCmd(cfg),
	)
	return root
}

func newDeployCmd(cfg *cliConfig) *cobra.Command {
	var (
		name       string
		modelData  string
		modelKey   string
		jobKey     string
		instType   string
		instCount  int
		encodingIn string
	)
	cmd := &cobra.Command{
		Use:     "deploy",
		Short:   "Deploy a trained model to an endpoint and wait until it is running",
		Example: "  endpointctl deploy --params params.json --model-data-key local_model_data --name xgb-local",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cfg.ctx()
			defer cancel()

			spec := types.EndpointSpec{
				Name:          name,
				ModelData:     modelData,
				InstanceType:  instType,
				InstanceCount: instCount,
			}
			// Pull artifact location / job name from the parameter store
			// when the caller gave keys instead of literals.
			if modelKey != "" || jobKey != "" {
				store, err := cfg.store()
				if err != nil {
					return err
				}
				if modelKey != "" {
					if spec.ModelData, err = store.Get(ctx, modelKey); err != nil {
						return err
					}
				}
				if jobKey != "" {
					if spec.JobName, err = store.Get(ctx, jobKey); err != nil {
						return err
					}
				}
			}
			enc, err := client.ParseEncoding(encodingIn)
			if err != nil {
				return err
			}

			cfg.log.Info().Str("name", spec.Name).Str("model_data", spec.ModelData).Msg("deploying")
			p, err := cfg.client().Deploy(ctx, spec, enc)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p.EndpointName())
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Endpoint name (empty lets the platform generate one)")
	cmd.Flags().StringVar(&modelData, "model-data", "", "Model artifact location (path or URI)")
	cmd.Flags().StringVar(&modelKey, "model-data-key", "", "Parameter store key holding the artifact location, e.g. local_model_data")
	cmd.Flags().StringVar(&jobKey, "job-name-key", "", "Parameter store key holding the training/tuning job name")
	cmd.Flags().StringVar(&instType, "instance-type", "local", "Instance type")
	cmd.Flags().IntVar(&instCount, "instance-count", 1, "Instance count (>= 1)")
	cmd.Flags().StringVar(&encodingIn, "encoding", "csv", "Invocation encoding: csv|json")
	return cmd
}

func newInvokeCmd(cfg *cliConfig) *cobra.Command {
	var (
		name       string
		rowIn      string
		raw        bool
		contentTy  string
		encodingIn string
	)
	cmd := &cobra.Command{
		Use:     "invoke",
		Short:   "Send one feature row to an endpoint and print the prediction",
		Example: "  endpointctl invoke --name xgb-local --row 1.5,2,3",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name is required")
			}
			ctx, cancel := cfg.ctx()
			defer cancel()

			if raw {
				// Low-level path: ship the payload as-is, print the body as-is.
				body, err := cfg.client().InvokeEndpoint(ctx, name, contentTy, "", []byte(rowIn))
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(string(body), "\n"))
				return nil
			}

			row, err := parseRow(rowIn)
			if err != nil {
				return err
			}
			enc, err := client.ParseEncoding(encodingIn)
			if err != nil {
				return err
			}
			v, err := cfg.client().AttachPredictor(name, enc).Predict(ctx, row)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(v, 'g', -1, 64))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Endpoint name")
	cmd.Flags().StringVar(&rowIn, "row", "", "Comma-joined feature values (or raw payload with --raw)")
	cmd.Flags().BoolVar(&raw, "raw", false, "Bypass the predictor: send the payload verbatim")
	cmd.Flags().StringVar(&contentTy, "content-type", "text/csv", "Content type for --raw payloads")
	cmd.Flags().StringVar(&encodingIn, "encoding", "csv", "Invocation encoding: csv|json")
	return cmd
}

func newCompareCmd(cfg *cliConfig) *cobra.Command {
	var (
		namesIn    string
		inputFile  string
		encodingIn string
		tolerance  float64
	)
	cmd := &cobra.Command{
		Use:     "compare",
		Short:   "Run labeled rows through several endpoints and tabulate predictions",
		Example: "  endpointctl compare --names xgb-local,xgb-hosted --input test.csv",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := strings.Split(namesIn, ",")
			if namesIn == "" || len(names) == 0 {
				return fmt.Errorf("--names is required")
			}
			rows, truth, err := readLabeledCSV(inputFile)
			if err != nil {
				return err
			}
			enc, err := client.ParseEncoding(encodingIn)
			if err != nil {
				return err
			}
			ctx, cancel := cfg.ctx()
			defer cancel()

			c := cfg.client()
			predictors := make([]compare.Predictor, 0, len(names))
			for _, n := range names {
				predictors = append(predictors, c.AttachPredictor(strings.TrimSpace(n), enc))
			}
			rep, err := compare.Run(ctx, rows, truth, predictors...)
			if err != nil {
				return err
			}
			if err := rep.Render(cmd.OutOrStdout()); err != nil {
				return err
			}
			if len(names) > 1 {
				if rep.Agree(tolerance) {
					fmt.Fprintf(cmd.OutOrStdout(), "endpoints agree within %g\n", tolerance)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "endpoints disagree beyond %g\n", tolerance)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&namesIn, "names", "", "Comma-separated endpoint names")
	cmd.Flags().StringVar(&inputFile, "input", "", "CSV file, label in the first column")
	cmd.Flags().StringVar(&encodingIn, "encoding", "csv", "Invocation encoding: csv|json")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 1e-6, "Agreement tolerance between endpoints")
	return cmd
}

func newDeleteCmd(cfg *cliConfig) *cobra.Command {
	var (
		name      string
		deleteCfg bool
	)
	cmd := &cobra.Command{
		Use:     "delete",
		Short:   "Tear down an endpoint (safe to repeat)",
		Example: "  endpointctl delete --name xgb-local --delete-config",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name is required")
			}
			ctx, cancel := cfg.ctx()
			defer cancel()
			if err := cfg.client().DeleteEndpoint(ctx, name, deleteCfg); err != nil {
				return err
			}
			cfg.log.Info().Str("name", name).Bool("delete_config", deleteCfg).Msg("endpoint deleted")
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Endpoint name")
	cmd.Flags().BoolVar(&deleteCfg, "delete-config", false, "Also remove the reusable endpoint definition")
	return cmd
}

func newStatusCmd(cfg *cliConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List endpoints known to the platform",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cfg.ctx()
			defer cancel()
			eps, err := cfg.client().ListEndpoints(ctx)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(eps)
		},
	}
}
