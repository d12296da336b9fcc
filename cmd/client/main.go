// Package main runs the terminal menu selector: swipe through a
// restaurant's dishes, optionally sharing a table session with friends.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mpmisha/TindeResturant/cmd/client/ui"
	"github.com/mpmisha/TindeResturant/internal/catalog"
	tableclient "github.com/mpmisha/TindeResturant/internal/client/table"
)

var (
	version   string
	buildDate string
)

func main() {
	var (
		baseURL      string
		restaurantID string
		showVer      bool
	)

	flag.StringVar(&baseURL, "url", "http://localhost:8080", "table service base URL")
	flag.StringVar(&restaurantID, "r", "", "restaurant id (defaults to the first known restaurant)")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("TindeRestaurant Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	// Unknown or empty restaurant ids fall back to the default catalog.
	r, err := catalog.Load(restaurantID)
	if err != nil {
		r, err = catalog.Load(catalog.DefaultID())
		if err != nil {
			fmt.Fprintf(os.Stderr, "no restaurant catalogs available: %v\n", err)
			os.Exit(1)
		}
	}

	app := ui.NewApp(r, tableclient.NewClient(baseURL, nil))
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
