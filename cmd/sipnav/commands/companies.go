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

// NewCompaniesCommand creates the companies command group.
func NewCompaniesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "companies",
		Aliases: []string{"company"},
		Short:   "Manage billing companies",
		Long:    "List, inspect, create and update the billing companies that own accounts and carriers",
	}

	cmd.AddCommand(newCompaniesListCommand())
	cmd.AddCommand(newCompaniesGetCommand())
	cmd.AddCommand(newCompaniesCreateCommand())
	cmd.AddCommand(newCompaniesUpdateCommand())

	return cmd
}

func newCompaniesListCommand() *cobra.Command {
	var (
		allPages bool
		perPage  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List billing companies",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompaniesListCommand(allPages, perPage)
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&perPage, "per-page", constants.LargePerPage, "results per page")

	return cmd
}

func runCompaniesListCommand(allPages bool, perPage int) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	ctx := context.Background()

	opts := &sipnav.ListOptions{PerPage: perPage}

	page, err := client.Companies().List(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}

	allCompanies := page.Data
	if allPages {
		for page.HasMore() {
			opts.Page = page.CurrentPage + 1

			page, err = client.Companies().List(ctx, opts)
			if err != nil {
				return fmt.Errorf("failed to fetch page %d: %w", opts.Page, err)
			}

			allCompanies = append(allCompanies, page.Data...)
		}
	}

	return outputCompanies(allCompanies, page, allPages)
}

func outputCompanies(companies []sipnav.Company, page *sipnav.Page[sipnav.Company], allPages bool) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(companies)
	case OutputFormatYAML:
		return StandardYAMLRenderer(companies)
	default:
		return renderCompanyTable(companies, page, allPages)
	}
}

func renderCompanyTable(companies []sipnav.Company, page *sipnav.Page[sipnav.Company], allPages bool) error {
	if len(companies) == 0 {
		_, _ = os.Stdout.WriteString("No companies found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Customer Name", "Status", "Balance", "Credit Limit")

	for _, company := range companies {
		_ = table.Append(strconv.Itoa(company.ID), company.CustomerName,
			orDefault(company.Status), orDefault(company.Balance),
			orDefault(company.CreditLimit))
	}

	_ = table.Render()

	if !allPages && page.HasMore() {
		_, _ = fmt.Fprintf(os.Stdout, "\nShowing page %d of %d. Use --all to fetch all pages.\n",
			page.CurrentPage, page.LastPage)
	}

	return nil
}

func newCompaniesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get COMPANY_ID",
		Short: "Get company details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			companyID, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			company, err := client.Companies().Get(context.Background(), companyID, nil)
			if err != nil {
				return fmt.Errorf("failed to get company: %w", err)
			}

			return outputCompanyDetails(company)
		},
	}
}

func outputCompanyDetails(company *sipnav.Company) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(company)
	case OutputFormatYAML:
		return StandardYAMLRenderer(company)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")
		_ = table.Append("ID", strconv.Itoa(company.ID))
		_ = table.Append("Customer Name", company.CustomerName)
		_ = table.Append("Platform", strconv.Itoa(company.PlatformID))
		_ = table.Append("Status", orDefault(company.Status))
		_ = table.Append("Email", orDefault(company.Email))
		_ = table.Append("Balance", orDefault(company.Balance))
		_ = table.Append("Credit Limit", orDefault(company.CreditLimit))
		_ = table.Append("Created", orDefault(company.CreatedAt))
		_ = table.Render()
	}

	return nil
}

func companyRequestFlags(cmd *cobra.Command, request *sipnav.CompanyRequest) {
	cmd.Flags().StringVar(&request.CustomerName, "name", "", "customer name")
	cmd.Flags().StringVar(&request.Email, "email", "", "billing email")
	cmd.Flags().StringVar(&request.Status, "status", "", "company status")
	cmd.Flags().StringVar(&request.CreditLimit, "credit-limit", "", "credit limit")
}

func newCompaniesCreateCommand() *cobra.Command {
	var request sipnav.CompanyRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a billing company",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			company, err := client.Companies().Create(context.Background(), &request, nil)
			if err != nil {
				return fmt.Errorf("failed to create company: %w", err)
			}

			fmt.Printf("Created company '%s' (ID %d)\n", company.CustomerName, company.ID)

			return nil
		},
	}

	companyRequestFlags(cmd, &request)
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newCompaniesUpdateCommand() *cobra.Command {
	var request sipnav.CompanyRequest

	cmd := &cobra.Command{
		Use:   "update COMPANY_ID",
		Short: "Update a billing company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			companyID, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			company, err := client.Companies().Update(context.Background(), companyID, &request, nil)
			if err != nil {
				return fmt.Errorf("failed to update company: %w", err)
			}

			fmt.Printf("Updated company '%s' (ID %d)\n", company.CustomerName, company.ID)

			return nil
		},
	}

	companyRequestFlags(cmd, &request)

	return cmd
}
