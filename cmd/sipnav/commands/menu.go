package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// MenuItem is a single entry of a menu: a label plus either an action or a
// submenu, optionally reachable through a hotkey.
type MenuItem struct {
	Label   string
	Hotkey  string
	Action  func() error
	Submenu *Menu
}

// Menu is a titled list of items. Submenus keep a parent pointer so the loop
// can offer "Back".
type Menu struct {
	Title  string
	Items  []*MenuItem
	parent *Menu
}

// NewMenu creates an empty menu.
func NewMenu(title string) *Menu {
	return &Menu{Title: title}
}

// AddAction appends an action item.
func (m *Menu) AddAction(label, hotkey string, action func() error) {
	m.Items = append(m.Items, &MenuItem{Label: label, Hotkey: hotkey, Action: action})
}

// AddSubmenu appends a submenu item and links the submenu back to m.
func (m *Menu) AddSubmenu(label, hotkey string, submenu *Menu) {
	submenu.parent = m
	m.Items = append(m.Items, &MenuItem{Label: label, Hotkey: hotkey, Submenu: submenu})
}

// ItemByHotkey finds an item by its hotkey, case-insensitively.
func (m *Menu) ItemByHotkey(key string) *MenuItem {
	for _, item := range m.Items {
		if item.Hotkey != "" && strings.EqualFold(item.Hotkey, key) {
			return item
		}
	}

	return nil
}

// ItemByIndex returns the item at a 1-based index, or nil.
func (m *Menu) ItemByIndex(index int) *MenuItem {
	if index < 1 || index > len(m.Items) {
		return nil
	}

	return m.Items[index-1]
}

// MenuRunner drives menus over a reader/writer pair, so the loop is
// exercisable without a terminal.
type MenuRunner struct {
	in  *bufio.Reader
	out io.Writer
}

// NewMenuRunner creates a runner reading selections from in and rendering
// menus to out.
func NewMenuRunner(in io.Reader, out io.Writer) *MenuRunner {
	return &MenuRunner{in: bufio.NewReader(in), out: out}
}

// Prompt prints a label and reads one line of input. Actions share the
// runner's reader so buffered bytes are never lost between prompts.
func (r *MenuRunner) Prompt(label string) (string, error) {
	fmt.Fprint(r.out, label)

	line, err := r.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

// Run displays the menu and dispatches selections until the user quits or
// input is exhausted. Returning to the parent menu returns nil; quitting from
// any depth unwinds the whole stack.
func (r *MenuRunner) Run(menu *Menu) error {
	for {
		r.display(menu)

		line, err := r.in.ReadString('\n')
		if err != nil && line == "" {
			return nil
		}

		choice := strings.TrimSpace(line)

		switch {
		case choice == "":
			continue
		case strings.EqualFold(choice, "q"):
			return ErrQuitRequested
		case strings.EqualFold(choice, "b") && menu.parent != nil:
			return nil
		}

		item := r.resolve(menu, choice)
		if item == nil {
			fmt.Fprintln(r.out, "Invalid selection. Please try again.")

			continue
		}

		if item.Submenu != nil {
			if err := r.Run(item.Submenu); errors.Is(err, ErrQuitRequested) {
				return err
			}

			continue
		}

		if err := item.Action(); err != nil {
			fmt.Fprintf(r.out, "Error: %v\n", err)
		}
	}
}

func (r *MenuRunner) resolve(menu *Menu, choice string) *MenuItem {
	if item := menu.ItemByHotkey(choice); item != nil {
		return item
	}

	index, err := strconv.Atoi(choice)
	if err != nil {
		return nil
	}

	return menu.ItemByIndex(index)
}

func (r *MenuRunner) display(menu *Menu) {
	fmt.Fprintf(r.out, "\n=== %s ===\n\n", menu.Title)

	for idx, item := range menu.Items {
		hotkeyHint := ""
		if item.Hotkey != "" {
			hotkeyHint = fmt.Sprintf(" [%s]", item.Hotkey)
		}

		submenuHint := ""
		if item.Submenu != nil {
			submenuHint = " >"
		}

		fmt.Fprintf(r.out, "  %d. %s%s%s\n", idx+1, item.Label, hotkeyHint, submenuHint)
	}

	fmt.Fprintln(r.out)

	if menu.parent != nil {
		fmt.Fprintln(r.out, "  B. Back to previous menu")
	}

	fmt.Fprintln(r.out, "  Q. Quit")
	fmt.Fprint(r.out, "\nSelect an option: ")
}
