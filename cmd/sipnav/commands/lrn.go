package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewLRNCommand creates the lrn command group.
func NewLRNCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lrn",
		Short: "Local routing number lookups",
	}

	cmd.AddCommand(newLRNLookupCommand())

	return cmd
}

func newLRNLookupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup PHONE_NUMBER",
		Short: "Dip a phone number for its LRN",
		Long:  "Look up the local routing number and porting data for a phone number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLRNLookupCommand(args[0])
		},
	}
}

func runLRNLookupCommand(phoneNumber string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	result, err := client.LRN().Lookup(context.Background(), phoneNumber)
	if err != nil {
		return fmt.Errorf("failed to look up %s: %w", phoneNumber, err)
	}

	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(result)
	case OutputFormatYAML:
		return StandardYAMLRenderer(result)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")
		_ = table.Append("Phone Number", result.PhoneNumber)
		_ = table.Append("LRN", result.LRN)
		_ = table.Append("SPID", orDefault(result.SPID))
		_ = table.Append("OCN", orDefault(result.OCN))
		_ = table.Append("LATA", orDefault(result.LATA))
		_ = table.Append("City", orDefault(result.City))
		_ = table.Append("State", orDefault(result.State))
		_ = table.Append("Jurisdiction", orDefault(result.Jurisdiction))
		_ = table.Render()
	}

	return nil
}
