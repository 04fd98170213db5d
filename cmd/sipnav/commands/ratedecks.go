package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bluedragon-network/sipnav-go/pkg/sipnav"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	deckKindAccount = "account"
	deckKindCarrier = "carrier"
)

// NewRateDecksCommand creates the ratedecks command group. Every subcommand
// takes the deck kind (account or carrier) as its first argument.
func NewRateDecksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ratedecks",
		Aliases: []string{"ratedeck", "decks"},
		Short:   "Manage rate decks",
		Long:    "List, upload, process and delete account and carrier rate decks",
	}

	cmd.AddCommand(newRateDecksListCommand())
	cmd.AddCommand(newRateDecksUploadCommand())
	cmd.AddCommand(newRateDecksProcessCommand())
	cmd.AddCommand(newRateDecksRowsCommand())
	cmd.AddCommand(newRateDecksDeleteCommand())

	return cmd
}

func parseDeckKind(arg string) (string, error) {
	kind := strings.ToLower(arg)
	if kind != deckKindAccount && kind != deckKindCarrier {
		return "", fmt.Errorf("%w: %q", ErrDeckKindRequired, arg)
	}

	return kind, nil
}

func newRateDecksListCommand() *cobra.Command {
	var (
		ownerID int
		local   int
	)

	cmd := &cobra.Command{
		Use:   "list KIND",
		Short: "List rate decks",
		Long:  "List account or carrier rate decks, optionally filtered by owner and deck type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseDeckKind(args[0])
			if err != nil {
				return err
			}

			opts := &sipnav.RateDeckListOptions{}
			if kind == deckKindAccount {
				opts.AccountID = ownerID
			} else {
				opts.CarrierID = ownerID
			}

			if cmd.Flags().Changed("local") {
				opts.Local = &local
			}

			return runRateDecksListCommand(kind, opts)
		},
	}

	cmd.Flags().IntVar(&ownerID, "owner", 0, "filter by account or carrier ID")
	cmd.Flags().IntVar(&local, "local", 0, "filter by deck type (0 international, 1 local)")

	return cmd
}

func runRateDecksListCommand(kind string, opts *sipnav.RateDeckListOptions) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	ctx := context.Background()

	var decks []sipnav.RateDeck
	if kind == deckKindAccount {
		decks, err = client.RateDecks().ListAccountDecks(ctx, opts)
	} else {
		decks, err = client.RateDecks().ListCarrierDecks(ctx, opts)
	}

	if err != nil {
		return fmt.Errorf("failed to list %s rate decks: %w", kind, err)
	}

	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(decks)
	case OutputFormatYAML:
		return StandardYAMLRenderer(decks)
	default:
		return renderDeckTable(kind, decks)
	}
}

func renderDeckTable(kind string, decks []sipnav.RateDeck) error {
	if len(decks) == 0 {
		_, _ = os.Stdout.WriteString("No rate decks found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Owner", "Filename", "Local", "Enabled", "Status", "Rows")

	for _, deck := range decks {
		ownerID := deck.AccountID
		if kind == deckKindCarrier {
			ownerID = deck.CarrierID
		}

		_ = table.Append(strconv.Itoa(deck.ID), strconv.Itoa(ownerID), deck.Filename,
			strconv.Itoa(deck.Local), strconv.Itoa(deck.Enabled),
			orDefault(deck.Status), strconv.Itoa(deck.RowCount))
	}

	_ = table.Render()

	return nil
}

func newRateDecksUploadCommand() *cobra.Command {
	var (
		ownerID int
		local   int
	)

	cmd := &cobra.Command{
		Use:   "upload KIND CSV_FILE",
		Short: "Upload a rate deck CSV",
		Long: `Upload a CSV rate deck for an account or carrier. The deck is stored
unprocessed; run 'ratedecks process' to map its columns and activate it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseDeckKind(args[0])
			if err != nil {
				return err
			}

			return runRateDecksUploadCommand(kind, args[1], ownerID, local)
		},
	}

	cmd.Flags().IntVar(&ownerID, "owner", 0, "account or carrier ID owning the deck")
	cmd.Flags().IntVar(&local, "local", 0, "deck type (0 international, 1 local)")
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}

func runRateDecksUploadCommand(kind, path string, ownerID, local int) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	client, err := CreateClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	upload := &sipnav.RateDeckUpload{
		Local:    local,
		Filename: filepath.Base(path),
		Content:  file,
	}

	ctx := context.Background()

	var deck *sipnav.RateDeck
	if kind == deckKindAccount {
		upload.AccountID = ownerID
		deck, err = client.RateDecks().UploadAccountDeck(ctx, upload)
	} else {
		upload.CarrierID = ownerID
		deck, err = client.RateDecks().UploadCarrierDeck(ctx, upload)
	}

	if err != nil {
		return fmt.Errorf("failed to upload %s rate deck: %w", kind, err)
	}

	fmt.Printf("Uploaded deck '%s' (ID %d)\n", deck.Filename, deck.ID)

	return nil
}

func newRateDecksProcessCommand() *cobra.Command {
	var (
		ownerID   int
		filename  string
		fieldsMap []string
	)

	cmd := &cobra.Command{
		Use:   "process KIND DECK_ID",
		Short: "Process an uploaded rate deck",
		Long: `Map an uploaded deck's CSV columns to rate fields and start processing.
Column mappings use column=field form, e.g. --map 0=prefix --map 1=rate.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseDeckKind(args[0])
			if err != nil {
				return err
			}

			deckID, err := parseID(args[1])
			if err != nil {
				return err
			}

			mapping, err := parseFieldsMap(fieldsMap)
			if err != nil {
				return err
			}

			return runRateDecksProcessCommand(kind, ownerID, deckID, filename, mapping)
		},
	}

	cmd.Flags().IntVar(&ownerID, "owner", 0, "account or carrier ID owning the deck")
	cmd.Flags().StringVar(&filename, "filename", "", "stored filename of the deck")
	cmd.Flags().StringArrayVar(&fieldsMap, "map", nil, "CSV column mapping (column=field), repeatable")
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}

func parseFieldsMap(entries []string) (map[string]string, error) {
	mapping := make(map[string]string, len(entries))

	for _, entry := range entries {
		column, field, found := strings.Cut(entry, "=")
		if !found || column == "" || field == "" {
			return nil, fmt.Errorf("%w: %q", ErrFieldsMapFormat, entry)
		}

		mapping[column] = field
	}

	return mapping, nil
}

func runRateDecksProcessCommand(kind string, ownerID, deckID int, filename string, mapping map[string]string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	ctx := context.Background()

	var deck *sipnav.RateDeck
	if kind == deckKindAccount {
		deck, err = client.RateDecks().ProcessAccountDeck(ctx, ownerID, deckID, filename, mapping)
	} else {
		deck, err = client.RateDecks().ProcessCarrierDeck(ctx, ownerID, deckID, filename, mapping)
	}

	if err != nil {
		return fmt.Errorf("failed to process %s rate deck: %w", kind, err)
	}

	fmt.Printf("Processing deck %d (%s)\n", deck.ID, orDefault(deck.Status))

	return nil
}

func newRateDecksRowsCommand() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "rows KIND DECK_ID",
		Short: "Show the rows of a processed deck",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseDeckKind(args[0])
			if err != nil {
				return err
			}

			deckID, err := parseID(args[1])
			if err != nil {
				return err
			}

			return runRateDecksRowsCommand(kind, deckID, page)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page of rows to fetch")

	return cmd
}

func runRateDecksRowsCommand(kind string, deckID, pageNum int) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	ctx := context.Background()

	var page *sipnav.Page[sipnav.RateDeckRow]
	if kind == deckKindAccount {
		page, err = client.RateDecks().AccountDeckRows(ctx, deckID, pageNum)
	} else {
		page, err = client.RateDecks().CarrierDeckRows(ctx, deckID, pageNum)
	}

	if err != nil {
		return fmt.Errorf("failed to fetch deck rows: %w", err)
	}

	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(page.Data)
	case OutputFormatYAML:
		return StandardYAMLRenderer(page.Data)
	default:
		return renderDeckRowTable(page)
	}
}

func renderDeckRowTable(page *sipnav.Page[sipnav.RateDeckRow]) error {
	if len(page.Data) == 0 {
		_, _ = os.Stdout.WriteString("No rows found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Prefix", "Destination", "Rate", "Effective")

	for _, row := range page.Data {
		_ = table.Append(row.Prefix, orDefault(row.Destination), row.Rate,
			orDefault(row.EffectiveDate))
	}

	_ = table.Render()

	_, _ = fmt.Fprintf(os.Stdout, "\nPage %d of %d (%d rows total)\n",
		page.CurrentPage, page.LastPage, page.Total)

	return nil
}

func newRateDecksDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete KIND DECK_ID",
		Short: "Delete a rate deck",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseDeckKind(args[0])
			if err != nil {
				return err
			}

			deckID, err := parseID(args[1])
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			ctx := context.Background()

			if kind == deckKindAccount {
				err = client.RateDecks().DeleteAccountDeck(ctx, deckID)
			} else {
				err = client.RateDecks().DeleteCarrierDeck(ctx, deckID)
			}

			if err != nil {
				return fmt.Errorf("failed to delete %s rate deck: %w", kind, err)
			}

			fmt.Printf("Deleted %s deck %d\n", kind, deckID)

			return nil
		},
	}
}
