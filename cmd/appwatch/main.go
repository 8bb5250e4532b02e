package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"appwatch/internal/api"
	"appwatch/internal/config"
	"appwatch/internal/server"
	"appwatch/internal/session"
	"appwatch/internal/store"
	"appwatch/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
)

func main() {
	cfg := config.Load()

	bindPort := flag.Int("port", cfg.SSHPort, "SSH port to serve the dashboard on")
	keysPath := flag.String("keys", cfg.KeysPath, "Path to authorized_keys file")
	apiURL := flag.String("api", cfg.APIBaseURL, "App-Watch backend base URL")
	wsURL := flag.String("ws", cfg.SocketURL, "App-Watch realtime socket URL")
	driver := flag.String("store", cfg.StoreDriver, "Local store driver (sqlite|postgres)")
	dsn := flag.String("dsn", cfg.StoreDSN, "Local store path or connection string")
	logPath := flag.String("log", "appwatch.log", "Log file (the TUI owns the terminal)")
	flag.Parse()

	interactive := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	logger := openLogger(*logPath, interactive)

	st := store.Open(*driver, *dsn)
	if err := st.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "store init failed: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	mgr := session.NewManager(st, logger)
	client := api.New(*apiURL, mgr, logger)
	mgr.AttachAPI(client)
	defer mgr.Close()

	// Instant restore from the cached credential; the dashboard re-validates
	// the token against the backend as soon as it mounts.
	mgr.Restore()

	app := &tui.App{
		API:       client,
		Session:   mgr,
		Store:     st,
		SocketURL: *wsURL,
		Log:       logger,
	}

	if err := server.Start(server.Config{Port: *bindPort, KeysPath: *keysPath}, app); err != nil {
		logger.Error("ssh server failed to start", "err", err)
	}

	if interactive {
		p := tea.NewProgram(tui.InitialModel(app), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
		return
	}

	fmt.Printf("App-Watch dashboard serving over SSH on :%d\n", *bindPort)
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-done
	fmt.Println("Shutting down...")
}

func openLogger(path string, interactive bool) *log.Logger {
	if !interactive {
		return log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return log.NewWithOptions(io.Discard, log.Options{})
	}
	return log.NewWithOptions(f, log.Options{ReportTimestamp: true})
}
