package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"ephemera/internal/app"
	"ephemera/internal/crypto"
	"ephemera/internal/domain"
	"ephemera/internal/image"
	"ephemera/internal/lifecycle"
	"ephemera/internal/session"
)

// runChat binds rawURL, connects, and bridges stdin to the room until EOF
// or disconnect. Messages print as they arrive and vanish notices print as
// they expire.
func runChat(cmd *cobra.Command, rawURL string) error {
	out := cmd.OutOrStdout()

	cfg := app.Config{
		RelayHost: relayHost,
		URL:       rawURL,
		Hooks: session.Hooks{
			OnStatus: func(s session.Status) {
				fmt.Fprintf(out, "-- %s\n", s)
			},
			OnPresence: func(n int) {
				fmt.Fprintf(out, "-- %d connected\n", n)
			},
			OnMessage: func(m *lifecycle.Message) {
				printMessage(out, m)
			},
		},
		OnLifecycle: func(e lifecycle.Event) {
			if e.State == lifecycle.Expired {
				fmt.Fprintf(out, "-- a message vanished\n")
			}
		},
	}

	wire, err := app.NewWire(cfg)
	if err != nil {
		if errors.Is(err, crypto.ErrInvalidKey) {
			return fmt.Errorf("invalid encryption key in URL; chat would be unreadable")
		}
		return err
	}

	fmt.Fprintf(out, "room: %s\n", wire.Binding.Room)
	fmt.Fprintf(out, "you:  %s\n", wire.Identity)
	if wire.Binding.Originator {
		fmt.Fprintf(out, "invite (share the WHOLE link, the part after # is the key):\n  %s\n", wire.Binding.URL)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- wire.Session.Run(ctx) }()

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(os.Stdin)
		sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case err := <-done:
			return err
		case line, ok := <-lines:
			if !ok {
				cancel()
				<-done
				return nil
			}
			if err := handleLine(out, wire, line); err != nil {
				fmt.Fprintf(out, "!! %v\n", err)
			}
		}
	}
}

func handleLine(out io.Writer, wire *app.Wire, line string) error {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return nil
	case strings.HasPrefix(line, "/img "):
		path := strings.TrimSpace(strings.TrimPrefix(line, "/img "))
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("attachment: %w", err)
		}
		defer f.Close()
		encoded, err := image.Compress(f)
		if err != nil {
			// Compression failure aborts only this attachment.
			return fmt.Errorf("attachment: %w", err)
		}
		_, err = wire.Session.Send(domain.ContentImage, encoded)
		return err
	default:
		_, err := wire.Session.Send(domain.ContentText, line)
		return err
	}
}

func printMessage(out io.Writer, m *lifecycle.Message) {
	who := m.Sender
	if m.Mine {
		who = "you"
	}
	switch m.Envelope.Kind {
	case domain.ContentImage:
		fmt.Fprintf(out, "[%s] (image, %d bytes encoded, withheld until revealed)\n", who, len(m.Envelope.Content))
	default:
		fmt.Fprintf(out, "[%s] %s\n", who, m.Envelope.Content)
	}
}
