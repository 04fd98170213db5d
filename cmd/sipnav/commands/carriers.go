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

// NewCarriersCommand creates the carriers command group.
func NewCarriersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "carriers",
		Aliases: []string{"carrier", "vendors"},
		Short:   "Manage switch carriers",
		Long:    "List, inspect, create and update switch carriers (vendors)",
	}

	cmd.AddCommand(newCarriersListCommand())
	cmd.AddCommand(newCarriersGetCommand())
	cmd.AddCommand(newCarriersCreateCommand())
	cmd.AddCommand(newCarriersUpdateCommand())
	cmd.AddCommand(newCarriersAccountsCommand())

	return cmd
}

func newCarriersListCommand() *cobra.Command {
	var (
		allPages bool
		perPage  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List switch carriers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCarriersListCommand(allPages, perPage)
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&perPage, "per-page", constants.LargePerPage, "results per page")

	return cmd
}

func runCarriersListCommand(allPages bool, perPage int) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	ctx := context.Background()

	opts := &sipnav.ListOptions{PerPage: perPage}

	page, err := client.Carriers().List(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to list carriers: %w", err)
	}

	allCarriers := page.Data
	if allPages {
		for page.HasMore() {
			opts.Page = page.CurrentPage + 1

			page, err = client.Carriers().List(ctx, opts)
			if err != nil {
				return fmt.Errorf("failed to fetch page %d: %w", opts.Page, err)
			}

			allCarriers = append(allCarriers, page.Data...)
		}
	}

	return outputCarriers(allCarriers, page, allPages)
}

func outputCarriers(carriers []sipnav.Carrier, page *sipnav.Page[sipnav.Carrier], allPages bool) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(carriers)
	case OutputFormatYAML:
		return StandardYAMLRenderer(carriers)
	default:
		return renderCarrierTable(carriers, page, allPages)
	}
}

func renderCarrierTable(carriers []sipnav.Carrier, page *sipnav.Page[sipnav.Carrier], allPages bool) error {
	if len(carriers) == 0 {
		_, _ = os.Stdout.WriteString("No carriers found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "Company", "Status", "Type", "Tech Prefix")

	for _, carrier := range carriers {
		_ = table.Append(strconv.Itoa(carrier.ID), carrier.Name,
			strconv.Itoa(carrier.CompanyID), orDefault(carrier.Status),
			orDefault(carrier.Type), orDefault(carrier.TechPrefix))
	}

	_ = table.Render()

	if !allPages && page.HasMore() {
		_, _ = fmt.Fprintf(os.Stdout, "\nShowing page %d of %d. Use --all to fetch all pages.\n",
			page.CurrentPage, page.LastPage)
	}

	return nil
}

func newCarriersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get CARRIER_ID",
		Short: "Get carrier details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			carrierID, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			carrier, err := client.Carriers().Get(context.Background(), carrierID, nil)
			if err != nil {
				return fmt.Errorf("failed to get carrier: %w", err)
			}

			return outputCarrierDetails(carrier)
		},
	}
}

func outputCarrierDetails(carrier *sipnav.Carrier) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(carrier)
	case OutputFormatYAML:
		return StandardYAMLRenderer(carrier)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")
		_ = table.Append("ID", strconv.Itoa(carrier.ID))
		_ = table.Append("Name", carrier.Name)
		_ = table.Append("Company", strconv.Itoa(carrier.CompanyID))
		_ = table.Append("Platform", strconv.Itoa(carrier.PlatformID))
		_ = table.Append("Status", orDefault(carrier.Status))
		_ = table.Append("Type", orDefault(carrier.Type))
		_ = table.Append("Tech Prefix", orDefault(carrier.TechPrefix))
		_ = table.Append("IP Address", orDefault(carrier.IPAddress))
		_ = table.Append("Created", orDefault(carrier.CreatedAt))
		_ = table.Append("Updated", orDefault(carrier.UpdatedAt))
		_ = table.Render()
	}

	return nil
}

func carrierRequestFlags(cmd *cobra.Command, request *sipnav.CarrierRequest) {
	cmd.Flags().StringVar(&request.Name, "name", "", "carrier name")
	cmd.Flags().IntVar(&request.CompanyID, "company", 0, "owning company ID")
	cmd.Flags().StringVar(&request.Status, "status", "", "carrier status")
	cmd.Flags().StringVar(&request.Type, "type", "", "carrier type")
	cmd.Flags().StringVar(&request.TechPrefix, "tech-prefix", "", "tech prefix")
	cmd.Flags().StringVar(&request.IPAddress, "ip", "", "signaling IP address")
}

func newCarriersCreateCommand() *cobra.Command {
	var request sipnav.CarrierRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a switch carrier",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			carrier, err := client.Carriers().Create(context.Background(), &request, nil)
			if err != nil {
				return fmt.Errorf("failed to create carrier: %w", err)
			}

			fmt.Printf("Created carrier '%s' (ID %d)\n", carrier.Name, carrier.ID)

			return nil
		},
	}

	carrierRequestFlags(cmd, &request)
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newCarriersUpdateCommand() *cobra.Command {
	var request sipnav.CarrierRequest

	cmd := &cobra.Command{
		Use:   "update CARRIER_ID",
		Short: "Update a switch carrier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			carrierID, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			carrier, err := client.Carriers().Update(context.Background(), carrierID, &request, nil)
			if err != nil {
				return fmt.Errorf("failed to update carrier: %w", err)
			}

			fmt.Printf("Updated carrier '%s' (ID %d)\n", carrier.Name, carrier.ID)

			return nil
		},
	}

	carrierRequestFlags(cmd, &request)

	return cmd
}

func newCarriersAccountsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts CARRIER_ID",
		Short: "List accounts assigned to a carrier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			carrierID, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			page, err := client.Carriers().GetAccounts(context.Background(), carrierID, nil)
			if err != nil {
				return fmt.Errorf("failed to list carrier accounts: %w", err)
			}

			return outputAccounts(page.Data, page, true)
		},
	}
}
