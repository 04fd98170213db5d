package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAccountsCommand(t *testing.T) {
	cmd := NewAccountsCommand()
	assert.Equal(t, "accounts", cmd.Use)
	assert.Equal(t, []string{"account", "acc"}, cmd.Aliases)
	assert.Equal(t, "Manage switch accounts", cmd.Short)

	var commandNames []string
	for _, subcmd := range cmd.Commands() {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "get")
	assert.Contains(t, commandNames, "create")
	assert.Contains(t, commandNames, "update")
	assert.Contains(t, commandNames, "carriers")
}

func TestNewCarriersCommand(t *testing.T) {
	cmd := NewCarriersCommand()
	assert.Equal(t, "carriers", cmd.Use)
	assert.Equal(t, []string{"carrier", "vendors"}, cmd.Aliases)

	var commandNames []string
	for _, subcmd := range cmd.Commands() {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "get")
	assert.Contains(t, commandNames, "create")
	assert.Contains(t, commandNames, "update")
	assert.Contains(t, commandNames, "accounts")
}

func TestNewCompaniesCommand(t *testing.T) {
	cmd := NewCompaniesCommand()
	assert.Equal(t, "companies", cmd.Use)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 4)
}

func TestNewCDRCommand(t *testing.T) {
	cmd := NewCDRCommand()
	assert.Equal(t, "cdr", cmd.Use)

	search := cmd.Commands()[0]
	assert.Equal(t, "search", search.Name())
	assert.NotNil(t, search.Flags().Lookup("dst"))
	assert.NotNil(t, search.Flags().Lookup("start"))
	assert.NotNil(t, search.Flags().Lookup("min-duration"))
	assert.NotNil(t, search.Flags().Lookup("limit"))
}

func TestNewRestrictionsCommand(t *testing.T) {
	cmd := NewRestrictionsCommand()
	assert.Equal(t, "restrictions", cmd.Use)
	assert.Equal(t, []string{"restriction", "call-restrictions"}, cmd.Aliases)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 2)
}

func TestNewLRNCommand(t *testing.T) {
	cmd := NewLRNCommand()
	assert.Equal(t, "lrn", cmd.Use)

	lookup := cmd.Commands()[0]
	assert.Equal(t, "lookup PHONE_NUMBER", lookup.Use)
	assert.NotNil(t, lookup.Args)
	assert.NotNil(t, lookup.RunE)
}

func TestNewRateDecksCommand(t *testing.T) {
	cmd := NewRateDecksCommand()
	assert.Equal(t, "ratedecks", cmd.Use)

	var commandNames []string
	for _, subcmd := range cmd.Commands() {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "upload")
	assert.Contains(t, commandNames, "process")
	assert.Contains(t, commandNames, "rows")
	assert.Contains(t, commandNames, "delete")
}

func TestNewLoginCommand(t *testing.T) {
	cmd := NewLoginCommand()
	assert.Equal(t, "login", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("username"))
	assert.NotNil(t, cmd.Flags().Lookup("password"))
	assert.NotNil(t, cmd.RunE)
}

func TestNewLogoutCommand(t *testing.T) {
	cmd := NewLogoutCommand()
	assert.Equal(t, "logout", cmd.Use)
	assert.NotNil(t, cmd.RunE)
}

func TestNewMenuCommand(t *testing.T) {
	cmd := NewMenuCommand()
	assert.Equal(t, "menu", cmd.Use)
	assert.NotNil(t, cmd.RunE)
}

func TestNewVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("1.2.3", "abc123", "2026-01-01")
	assert.Equal(t, "version", cmd.Use)
	assert.NotNil(t, cmd.RunE)
}
