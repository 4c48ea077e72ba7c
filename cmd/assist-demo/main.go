package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	assist "github.com/iw2rmb/flourish-assist"
)

func main() {
	settingsPath := flag.String("settings", "", "TOML settings file")
	showVersion := flag.Bool("version", false, "print the assist release and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("assist-demo", assist.CurrentRelease().Tag())
		return
	}

	var settings assist.Settings
	if *settingsPath != "" {
		s, err := assist.LoadSettings(*settingsPath)
		if err != nil {
			log.Fatalf("settings: %v", err)
		}
		settings = s
	}

	// The terminal belongs to the program; logs go to a file or nowhere.
	if os.Getenv("ASSIST_DEBUG") != "" {
		f, err := tea.LogToFile("assist-debug.log", "assist")
		if err != nil {
			log.Fatalf("debug log: %v", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	p := tea.NewProgram(newModel(settings), tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithReportFocus())
	if _, err := p.Run(); err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
