package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"fitness-app-go/internal/cli"
)

func (a *cliApp) play(ctx context.Context, args []string) error {
	if err := a.home.Refresh(ctx); err != nil {
		return err
	}

	entry, ok := a.home.Today()
	if len(args) > 0 {
		entry, ok = a.home.Day(args[0])
	}
	if !ok {
		return errors.New("nenhum treino para este dia")
	}

	screen := cli.NewPlayerScreen(a.home)
	if err := screen.Open(entry); err != nil {
		return err
	}

	for screen.Active() {
		view, _ := screen.View()
		a.render.Player(view)

		line, err := a.prompt("> ")
		if errors.Is(err, io.EOF) {
			screen.Cancel()
			return nil
		}
		if err != nil {
			return err
		}

		var finished bool
		switch strings.ToLower(line) {
		case "n":
			finished, err = screen.Next(ctx)
		case "p":
			screen.Previous()
		case "t":
			screen.Toggle()
		case "f":
			finished, err = screen.Finish(ctx)
		case "c":
			screen.Cancel()
			fmt.Fprintln(a.out, "Treino cancelado.")
			return nil
		default:
			fmt.Fprintln(a.out, "comando desconhecido")
		}

		if finished {
			a.render.Progress(a.home.Progress())
			if err != nil {
				a.render.Error(err)
			}
			a.waitForBanner(ctx)
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// waitForBanner keeps the process alive while the completion banner is up.
func (a *cliApp) waitForBanner(ctx context.Context) {
	if _, visible := a.banner.Current(); !visible {
		return
	}
	timer := time.NewTimer(cli.BannerDuration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
