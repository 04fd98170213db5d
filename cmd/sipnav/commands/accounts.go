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

// NewAccountsCommand creates the accounts command group.
func NewAccountsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "accounts",
		Aliases: []string{"account", "acc"},
		Short:   "Manage switch accounts",
		Long:    "List, inspect, create and update switch accounts (customer endpoints)",
	}

	cmd.AddCommand(newAccountsListCommand())
	cmd.AddCommand(newAccountsGetCommand())
	cmd.AddCommand(newAccountsCreateCommand())
	cmd.AddCommand(newAccountsUpdateCommand())
	cmd.AddCommand(newAccountsCarriersCommand())

	return cmd
}

func newAccountsListCommand() *cobra.Command {
	var (
		allPages  bool
		perPage   int
		companyID int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List switch accounts",
		Long:  "List all switch accounts visible to the authenticated user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAccountsListCommand(allPages, perPage, companyID)
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&perPage, "per-page", constants.LargePerPage, "results per page")
	cmd.Flags().IntVar(&companyID, "company", 0, "filter by company ID")

	return cmd
}

func runAccountsListCommand(allPages bool, perPage, companyID int) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	ctx := context.Background()

	opts := &sipnav.ListOptions{
		PerPage:   perPage,
		CompanyID: companyID,
	}

	page, err := client.Accounts().List(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to list accounts: %w", err)
	}

	allAccounts := page.Data
	if allPages {
		for page.HasMore() {
			opts.Page = page.CurrentPage + 1

			page, err = client.Accounts().List(ctx, opts)
			if err != nil {
				return fmt.Errorf("failed to fetch page %d: %w", opts.Page, err)
			}

			allAccounts = append(allAccounts, page.Data...)
		}
	}

	return outputAccounts(allAccounts, page, allPages)
}

func outputAccounts(accounts []sipnav.Account, page *sipnav.Page[sipnav.Account], allPages bool) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(accounts)
	case OutputFormatYAML:
		return StandardYAMLRenderer(accounts)
	default:
		return renderAccountTable(accounts, page, allPages)
	}
}

func renderAccountTable(accounts []sipnav.Account, page *sipnav.Page[sipnav.Account], allPages bool) error {
	if len(accounts) == 0 {
		_, _ = os.Stdout.WriteString("No accounts found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "Company", "Status", "Type", "Tech Prefix")

	for _, account := range accounts {
		_ = table.Append(strconv.Itoa(account.ID), account.Name,
			strconv.Itoa(account.CompanyID), orDefault(account.Status),
			orDefault(account.Type), orDefault(account.TechPrefix))
	}

	_ = table.Render()

	if !allPages && page.HasMore() {
		_, _ = fmt.Fprintf(os.Stdout, "\nShowing page %d of %d. Use --all to fetch all pages.\n",
			page.CurrentPage, page.LastPage)
	}

	return nil
}

func newAccountsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ACCOUNT_ID",
		Short: "Get account details",
		Long:  "Display detailed information about a specific switch account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAccountsGetCommand(args[0])
		},
	}
}

func runAccountsGetCommand(arg string) error {
	accountID, err := parseID(arg)
	if err != nil {
		return err
	}

	client, err := CreateClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	account, err := client.Accounts().Get(context.Background(), accountID, nil)
	if err != nil {
		return fmt.Errorf("failed to get account: %w", err)
	}

	return outputAccountDetails(account)
}

func outputAccountDetails(account *sipnav.Account) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(account)
	case OutputFormatYAML:
		return StandardYAMLRenderer(account)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")
		_ = table.Append("ID", strconv.Itoa(account.ID))
		_ = table.Append("Name", account.Name)
		_ = table.Append("Company", strconv.Itoa(account.CompanyID))
		_ = table.Append("Platform", strconv.Itoa(account.PlatformID))
		_ = table.Append("Status", orDefault(account.Status))
		_ = table.Append("Type", orDefault(account.Type))
		_ = table.Append("Tech Prefix", orDefault(account.TechPrefix))
		_ = table.Append("IP Address", orDefault(account.IPAddress))
		_ = table.Append("Created", orDefault(account.CreatedAt))
		_ = table.Append("Updated", orDefault(account.UpdatedAt))
		_ = table.Render()
	}

	return nil
}

func accountRequestFlags(cmd *cobra.Command, request *sipnav.AccountRequest) {
	cmd.Flags().StringVar(&request.Name, "name", "", "account name")
	cmd.Flags().IntVar(&request.CompanyID, "company", 0, "owning company ID")
	cmd.Flags().StringVar(&request.Status, "status", "", "account status")
	cmd.Flags().StringVar(&request.Type, "type", "", "account type")
	cmd.Flags().StringVar(&request.TechPrefix, "tech-prefix", "", "tech prefix")
	cmd.Flags().StringVar(&request.IPAddress, "ip", "", "signaling IP address")
}

func newAccountsCreateCommand() *cobra.Command {
	var request sipnav.AccountRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a switch account",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			account, err := client.Accounts().Create(context.Background(), &request, nil)
			if err != nil {
				return fmt.Errorf("failed to create account: %w", err)
			}

			fmt.Printf("Created account '%s' (ID %d)\n", account.Name, account.ID)

			return nil
		},
	}

	accountRequestFlags(cmd, &request)
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newAccountsUpdateCommand() *cobra.Command {
	var request sipnav.AccountRequest

	cmd := &cobra.Command{
		Use:   "update ACCOUNT_ID",
		Short: "Update a switch account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			account, err := client.Accounts().Update(context.Background(), accountID, &request, nil)
			if err != nil {
				return fmt.Errorf("failed to update account: %w", err)
			}

			fmt.Printf("Updated account '%s' (ID %d)\n", account.Name, account.ID)

			return nil
		},
	}

	accountRequestFlags(cmd, &request)

	return cmd
}

func newAccountsCarriersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "carriers ACCOUNT_ID",
		Short: "List carriers assigned to an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			page, err := client.Accounts().GetCarriers(context.Background(), accountID, nil)
			if err != nil {
				return fmt.Errorf("failed to list account carriers: %w", err)
			}

			return outputCarriers(page.Data, page, true)
		},
	}
}
