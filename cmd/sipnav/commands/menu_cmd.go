package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/bluedragon-network/sipnav-go/internal/constants"
	"github.com/bluedragon-network/sipnav-go/pkg/sipnav"
	"github.com/bluedragon-network/sipnav-go/pkg/sipnavclient"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewMenuCommand creates the interactive menu command.
func NewMenuCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Interactive menu",
		Long: `Run an interactive menu over the SIPNAV API.

Credentials come from the config file or the SIPNAV_API_KEY /
SIPNAV_USERNAME / SIPNAV_PASSWORD environment variables; the menu prompts
for a login when neither is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenuCommand()
		},
	}
}

func runMenuCommand() error {
	fmt.Println("SIPNAV Client")
	fmt.Println("Terminal interface for the SIPNAV API")

	client, err := menuClient()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	runner := NewMenuRunner(os.Stdin, os.Stdout)
	menu := buildMainMenu(client, runner, os.Stdout)

	err = runner.Run(menu)
	if err != nil && !errors.Is(err, ErrQuitRequested) {
		return err
	}

	fmt.Println("Goodbye!")

	return nil
}

// menuClient resolves a client from configured credentials, falling back to
// an interactive login prompt.
func menuClient() (sipnav.Client, error) {
	client, err := CreateClient()
	if err == nil {
		return client, nil
	}

	if !errors.Is(err, ErrNoCredentialsInEnv) {
		return nil, err
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Username: ")

	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)

	if username == "" {
		return nil, ErrUsernameRequired
	}

	fmt.Print("Password: ")

	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Println()

	return sipnavclient.NewWithPassword("", username, string(bytePassword))
}

// buildMainMenu assembles the menu tree.
func buildMainMenu(client sipnav.Client, runner *MenuRunner, out io.Writer) *Menu {
	main := NewMenu("SIPNAV Main Menu")

	carriers := NewMenu("Carriers / Vendors")
	carriers.AddAction("List Switch Carriers", "L", func() error {
		return menuListCarriers(client, out)
	})

	main.AddSubmenu("Carriers / Vendors", "C", carriers)

	lrn := NewMenu("LRN Lookup")
	lrn.AddAction("Dip a Phone Number", "D", func() error {
		return menuLRNLookup(client, runner, out)
	})

	main.AddSubmenu("LRN Lookup", "L", lrn)

	return main
}

func menuListCarriers(client sipnav.Client, out io.Writer) error {
	fmt.Fprintln(out, "\nFetching carriers...")

	page, err := client.Carriers().List(context.Background(), &sipnav.ListOptions{
		PerPage: constants.LargePerPage,
	})
	if err != nil {
		return fmt.Errorf("failed to fetch carriers: %w", err)
	}

	if len(page.Data) == 0 {
		fmt.Fprintln(out, "No carriers found.")

		return nil
	}

	table := tablewriter.NewWriter(out)
	table.Header("ID", "Name", "Status", "Type")

	for _, carrier := range page.Data {
		_ = table.Append(fmt.Sprint(carrier.ID), carrier.Name,
			orDefault(carrier.Status), orDefault(carrier.Type))
	}

	_ = table.Render()

	fmt.Fprintf(out, "\nTotal: %d carrier(s)\n", len(page.Data))

	return nil
}

func menuLRNLookup(client sipnav.Client, runner *MenuRunner, out io.Writer) error {
	number, err := runner.Prompt("Phone number: ")
	if err != nil || number == "" {
		return nil
	}

	result, err := client.LRN().Lookup(context.Background(), number)
	if err != nil {
		return fmt.Errorf("failed to look up %s: %w", number, err)
	}

	fmt.Fprintf(out, "LRN for %s: %s (SPID %s, LATA %s)\n",
		result.PhoneNumber, result.LRN, orDefault(result.SPID), orDefault(result.LATA))

	return nil
}
