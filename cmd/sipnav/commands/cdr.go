package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/bluedragon-network/sipnav-go/pkg/sipnav"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultCDRLimit = 100

// NewCDRCommand creates the cdr command group.
func NewCDRCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cdr",
		Short: "Search call detail records",
		Long:  "Search the platform's call detail records by number, account, carrier and time window",
	}

	cmd.AddCommand(newCDRSearchCommand())

	return cmd
}

//nolint:funlen
func newCDRSearchCommand() *cobra.Command {
	var (
		accountID   string
		carrierID   string
		srcNumber   string
		dstNumber   string
		lrnNumber   string
		startDate   string
		endTime     string
		minDuration int
		maxDuration int
		limit       int
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search call detail records",
		Long: `Search CDRs with optional filters. Dates use the platform's
"YYYY-MM-DD HH:MM:SS" format.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &sipnav.CDRSearchOptions{
				AccountID: accountID,
				CarrierID: carrierID,
				SrcNumber: srcNumber,
				DstNumber: dstNumber,
				LRNNumber: lrnNumber,
				StartDate: startDate,
				EndTime:   endTime,
				Limit:     limit,
			}

			if cmd.Flags().Changed("min-duration") {
				opts.MinDuration = &minDuration
			}

			if cmd.Flags().Changed("max-duration") {
				opts.MaxDuration = &maxDuration
			}

			return runCDRSearchCommand(opts)
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "filter by account ID")
	cmd.Flags().StringVar(&carrierID, "carrier", "", "filter by carrier ID")
	cmd.Flags().StringVar(&srcNumber, "src", "", "source number")
	cmd.Flags().StringVar(&dstNumber, "dst", "", "destination number")
	cmd.Flags().StringVar(&lrnNumber, "lrn", "", "LRN number")
	cmd.Flags().StringVar(&startDate, "start", "", "start of the search window")
	cmd.Flags().StringVar(&endTime, "end", "", "end of the search window")
	cmd.Flags().IntVar(&minDuration, "min-duration", 0, "minimum duration in seconds")
	cmd.Flags().IntVar(&maxDuration, "max-duration", 0, "maximum duration in seconds")
	cmd.Flags().IntVar(&limit, "limit", defaultCDRLimit, "maximum records to return")

	return cmd
}

func runCDRSearchCommand(opts *sipnav.CDRSearchOptions) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	records, err := client.CDR().Search(context.Background(), opts)
	if err != nil {
		return fmt.Errorf("failed to search CDRs: %w", err)
	}

	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(records)
	case OutputFormatYAML:
		return StandardYAMLRenderer(records)
	default:
		return renderCDRTable(records)
	}
}

func renderCDRTable(records []sipnav.CDRRecord) error {
	if len(records) == 0 {
		_, _ = os.Stdout.WriteString("No records found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Start", "Src", "Dst", "Duration", "Disposition", "Account", "Carrier")

	for _, record := range records {
		_ = table.Append(record.StartTime, record.SrcNumber, record.DstNumber,
			strconv.Itoa(record.Duration), orDefault(record.Disposition),
			orDefault(record.AccountID), orDefault(record.CarrierID))
	}

	_ = table.Render()

	_, _ = fmt.Fprintf(os.Stdout, "\n%d record(s)\n", len(records))

	return nil
}
