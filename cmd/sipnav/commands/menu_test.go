package commands

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuItemLookup(t *testing.T) {
	t.Parallel()

	menu := NewMenu("Main")
	menu.AddAction("First", "F", func() error { return nil })
	menu.AddAction("Second", "", func() error { return nil })

	t.Run("hotkey is case-insensitive", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "First", menu.ItemByHotkey("f").Label)
		assert.Equal(t, "First", menu.ItemByHotkey("F").Label)
	})

	t.Run("unknown hotkey returns nil", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, menu.ItemByHotkey("x"))
	})

	t.Run("index is 1-based", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "First", menu.ItemByIndex(1).Label)
		assert.Equal(t, "Second", menu.ItemByIndex(2).Label)
	})

	t.Run("out of range index returns nil", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, menu.ItemByIndex(0))
		assert.Nil(t, menu.ItemByIndex(3))
	})
}

func TestMenuRunner(t *testing.T) {
	t.Parallel()

	t.Run("action invoked by number", func(t *testing.T) {
		t.Parallel()

		invoked := 0
		menu := NewMenu("Main")
		menu.AddAction("Do it", "", func() error {
			invoked++

			return nil
		})

		var out bytes.Buffer
		runner := NewMenuRunner(strings.NewReader("1\nq\n"), &out)

		err := runner.Run(menu)
		require.ErrorIs(t, err, ErrQuitRequested)
		assert.Equal(t, 1, invoked)
	})

	t.Run("action invoked by hotkey", func(t *testing.T) {
		t.Parallel()

		invoked := 0
		menu := NewMenu("Main")
		menu.AddAction("Do it", "D", func() error {
			invoked++

			return nil
		})

		var out bytes.Buffer
		runner := NewMenuRunner(strings.NewReader("d\nq\n"), &out)

		err := runner.Run(menu)
		require.ErrorIs(t, err, ErrQuitRequested)
		assert.Equal(t, 1, invoked)
	})

	t.Run("back returns to parent menu", func(t *testing.T) {
		t.Parallel()

		invoked := 0
		sub := NewMenu("Sub")
		sub.AddAction("Nested", "", func() error { return nil })

		menu := NewMenu("Main")
		menu.AddSubmenu("Enter", "E", sub)
		menu.AddAction("After back", "", func() error {
			invoked++

			return nil
		})

		// Enter the submenu, go back, then run the parent action.
		var out bytes.Buffer
		runner := NewMenuRunner(strings.NewReader("e\nb\n2\nq\n"), &out)

		err := runner.Run(menu)
		require.ErrorIs(t, err, ErrQuitRequested)
		assert.Equal(t, 1, invoked)
	})

	t.Run("quit from submenu unwinds the stack", func(t *testing.T) {
		t.Parallel()

		sub := NewMenu("Sub")
		sub.AddAction("Nested", "", func() error { return nil })

		menu := NewMenu("Main")
		menu.AddSubmenu("Enter", "", sub)

		var out bytes.Buffer
		runner := NewMenuRunner(strings.NewReader("1\nq\n"), &out)

		err := runner.Run(menu)
		require.ErrorIs(t, err, ErrQuitRequested)
	})

	t.Run("invalid selection reprompts", func(t *testing.T) {
		t.Parallel()

		menu := NewMenu("Main")
		menu.AddAction("Only", "", func() error { return nil })

		var out bytes.Buffer
		runner := NewMenuRunner(strings.NewReader("zzz\nq\n"), &out)

		err := runner.Run(menu)
		require.ErrorIs(t, err, ErrQuitRequested)
		assert.Contains(t, out.String(), "Invalid selection")
	})

	t.Run("action error is reported, loop continues", func(t *testing.T) {
		t.Parallel()

		menu := NewMenu("Main")
		menu.AddAction("Fails", "", func() error {
			return errors.New("boom")
		})

		var out bytes.Buffer
		runner := NewMenuRunner(strings.NewReader("1\nq\n"), &out)

		err := runner.Run(menu)
		require.ErrorIs(t, err, ErrQuitRequested)
		assert.Contains(t, out.String(), "Error: boom")
	})

	t.Run("exhausted input ends the loop", func(t *testing.T) {
		t.Parallel()

		menu := NewMenu("Main")
		menu.AddAction("Only", "", func() error { return nil })

		var out bytes.Buffer
		runner := NewMenuRunner(strings.NewReader(""), &out)

		err := runner.Run(menu)
		require.NoError(t, err)
	})
}

func TestMenuRunnerPrompt(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	runner := NewMenuRunner(strings.NewReader("  5551234567  \n"), &out)

	value, err := runner.Prompt("Phone number: ")
	require.NoError(t, err)
	assert.Equal(t, "5551234567", value)
	assert.Contains(t, out.String(), "Phone number: ")
}

func TestMenuDisplay(t *testing.T) {
	t.Parallel()

	sub := NewMenu("Sub")
	sub.AddAction("Nested", "", func() error { return nil })

	menu := NewMenu("SIPNAV Main Menu")
	menu.AddAction("List Switch Carriers", "L", func() error { return nil })
	menu.AddSubmenu("More", "M", sub)

	var out bytes.Buffer
	runner := NewMenuRunner(strings.NewReader("q\n"), &out)

	err := runner.Run(menu)
	require.ErrorIs(t, err, ErrQuitRequested)

	rendered := out.String()
	assert.Contains(t, rendered, "=== SIPNAV Main Menu ===")
	assert.Contains(t, rendered, "1. List Switch Carriers [L]")
	assert.Contains(t, rendered, "2. More [M] >")
	assert.Contains(t, rendered, "Q. Quit")
	assert.NotContains(t, rendered, "B. Back")
}
