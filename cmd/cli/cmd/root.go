package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ledgerpilot/go-gl-recon/cmd/setup"
	"github.com/ledgerpilot/go-gl-recon/internal/common/validation"
	"github.com/ledgerpilot/go-gl-recon/internal/engine"
	"github.com/ledgerpilot/go-gl-recon/internal/models"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cli",
	Short: "Reconciliation engine command line tools",
	Long:  ``,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP(runCmdFile, "f", "", "canonical payload json file")
	runCmd.MarkFlagRequired(runCmdFile)
}

var (
	runCmd = &cobra.Command{
		Use:     "run",
		Short:   "Run the deterministic reconciliation over a payload file",
		Long:    ``,
		Example: "cli run -f={payload-file}",
		RunE:    runRecon,
	}
	runCmdFile = "file"
)

func runRecon(ccmd *cobra.Command, args []string) error {
	ctx := context.Background()

	s, _, err := setup.Init("cli")
	if err != nil {
		return fmt.Errorf("failed to setup app: %w", err)
	}

	fileName, err := ccmd.Flags().GetString(runCmdFile)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(fileName)
	if err != nil {
		return fmt.Errorf("failed to read payload file: %w", err)
	}

	var payload models.CanonicalPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("failed to decode payload file: %w", err)
	}

	if err := validation.ValidateStruct(payload); err != nil {
		return fmt.Errorf("payload is not valid: %w", err)
	}

	toolOutput := engine.New(s.Config.ReconEngine).Run(ctx, payload)

	out, err := json.MarshalIndent(toolOutput, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(out))

	return nil
}
