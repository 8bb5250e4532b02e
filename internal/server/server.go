package server

import (
	"fmt"
	"os"

	"appwatch/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	bm "github.com/charmbracelet/wish/bubbletea"
)

// The dashboard can be served over SSH: every connection gets its own tea
// model over the shared app, so sign-out in one connection reaches them all,
// the way one browser tab signs out the others.

type Config struct {
	Port     int
	KeysPath string
}

func Start(cfg Config, app *tui.App) error {
	s, err := wish.NewServer(
		wish.WithAddress(fmt.Sprintf(":%d", cfg.Port)),
		wish.WithHostKeyPath(".ssh/id_ed25519"),

		wish.WithPublicKeyAuth(func(ctx ssh.Context, key ssh.PublicKey) bool {
			data, err := os.ReadFile(cfg.KeysPath)
			if err != nil {
				return false
			}
			return isKeyAllowed(data, key)
		}),

		wish.WithMiddleware(
			bm.Middleware(func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
				m := tui.InitialModel(app)
				// A connection that just drops never runs the quit path.
				go func() {
					<-s.Context().Done()
					m.ReleaseEvents()
				}()
				return m, []tea.ProgramOption{tea.WithAltScreen()}
			}),
		),
	)
	if err != nil {
		return err
	}

	go func() {
		s.ListenAndServe()
	}()
	return nil
}

func isKeyAllowed(authFileData []byte, incomingKey ssh.PublicKey) bool {
	for len(authFileData) > 0 {
		allowedKey, _, _, rest, err := ssh.ParseAuthorizedKey(authFileData)
		if err != nil {
			authFileData = rest
			continue
		}

		if ssh.KeysEqual(allowedKey, incomingKey) {
			return true
		}

		authFileData = rest
	}
	return false
}
