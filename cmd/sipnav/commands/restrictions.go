package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/bluedragon-network/sipnav-go/internal/constants"
	"github.com/bluedragon-network/sipnav-go/pkg/sipnav"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRestrictionsCommand creates the call restrictions command group.
func NewRestrictionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "restrictions",
		Aliases: []string{"restriction", "call-restrictions"},
		Short:   "Inspect number-level call restrictions",
	}

	cmd.AddCommand(newRestrictionsListCommand())
	cmd.AddCommand(newRestrictionsGetCommand())

	return cmd
}

func newRestrictionsListCommand() *cobra.Command {
	var (
		allPages  bool
		perPage   int
		accountID int
		carrierID int
		srcNumber string
		dstNumber string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List call restrictions",
		Long:  "List number-level call restrictions, following the endpoint's page tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &sipnav.RestrictionListOptions{
				PerPage:   perPage,
				AccountID: accountID,
				CarrierID: carrierID,
				SrcNumber: srcNumber,
				DstNumber: dstNumber,
			}

			return runRestrictionsListCommand(opts, allPages)
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&perPage, "per-page", constants.LargePerPage, "results per page")
	cmd.Flags().IntVar(&accountID, "account", 0, "filter by account ID")
	cmd.Flags().IntVar(&carrierID, "carrier", 0, "filter by carrier ID")
	cmd.Flags().StringVar(&srcNumber, "src", "", "filter by source number")
	cmd.Flags().StringVar(&dstNumber, "dst", "", "filter by destination number")

	return cmd
}

func runRestrictionsListCommand(opts *sipnav.RestrictionListOptions, allPages bool) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	ctx := context.Background()

	page, err := client.CallRestrictions().List(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to list call restrictions: %w", err)
	}

	allRestrictions := page.Data
	if allPages {
		for page.NextPageToken != "" {
			opts.PageToken = page.NextPageToken

			page, err = client.CallRestrictions().List(ctx, opts)
			if err != nil {
				return fmt.Errorf("failed to fetch next page: %w", err)
			}

			allRestrictions = append(allRestrictions, page.Data...)
		}
	}

	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(allRestrictions)
	case OutputFormatYAML:
		return StandardYAMLRenderer(allRestrictions)
	default:
		return renderRestrictionTable(allRestrictions, page, allPages)
	}
}

func renderRestrictionTable(restrictions []sipnav.CallRestriction, page *sipnav.RestrictionPage, allPages bool) error {
	if len(restrictions) == 0 {
		_, _ = os.Stdout.WriteString("No call restrictions found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Src", "Dst", "Direction", "Account", "Carrier", "Reason")

	for _, restriction := range restrictions {
		_ = table.Append(strconv.Itoa(restriction.ID),
			orDefault(restriction.SrcNumber), orDefault(restriction.DstNumber),
			orDefault(restriction.Direction), strconv.Itoa(restriction.AccountID),
			strconv.Itoa(restriction.CarrierID), orDefault(restriction.Reason))
	}

	_ = table.Render()

	if !allPages && page.NextPageToken != "" {
		_, _ = os.Stdout.WriteString("\nMore results available. Use --all to fetch all pages.\n")
	}

	return nil
}

func newRestrictionsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get RESTRICTION_ID",
		Short: "Get call restriction details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			restrictionID, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			restriction, err := client.CallRestrictions().Get(context.Background(), restrictionID)
			if err != nil {
				return fmt.Errorf("failed to get call restriction: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return StandardJSONRenderer(restriction)
			case OutputFormatYAML:
				return StandardYAMLRenderer(restriction)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("ID", strconv.Itoa(restriction.ID))
				_ = table.Append("Source", orDefault(restriction.SrcNumber))
				_ = table.Append("Destination", orDefault(restriction.DstNumber))
				_ = table.Append("Direction", orDefault(restriction.Direction))
				_ = table.Append("Account", strconv.Itoa(restriction.AccountID))
				_ = table.Append("Carrier", strconv.Itoa(restriction.CarrierID))
				_ = table.Append("Reason", orDefault(restriction.Reason))
				_ = table.Append("Created", orDefault(restriction.CreatedAt))
				_ = table.Render()
			}

			return nil
		},
	}
}
