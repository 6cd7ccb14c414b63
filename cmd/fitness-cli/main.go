package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/multierr"
	"golang.org/x/term"

	"fitness-app-go/internal/cli"
	"fitness-app-go/internal/cli/store"
	"fitness-app-go/internal/config"
	"fitness-app-go/pkg/client"
	"fitness-app-go/pkg/logger"
)

const usage = `usage: fitness-cli [-config path] [-no-color] <command>

commands:
  login -email <email>       sign in (password is prompted)
  logout                     sign out and forget the stored session
  week                       show the weekly plan
  today                      show today's workout
  play [day]                 run a guided session (today by default)
  profile                    show the profile
  profile set [flags]        edit -name -height -weight -avatar
  password                   change the password
  progress                   show this week's progress
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout))
}

type cliApp struct {
	kv      *store.SQLite
	session *cli.Session
	api     *client.Client
	home    *cli.Home
	banner  *cli.Banner
	render  *cli.Renderer
	in      *bufio.Reader
	out     io.Writer
	log     logger.Logger
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) int {
	flags := flag.NewFlagSet("fitness-cli", flag.ContinueOnError)
	flags.SetOutput(os.Stderr)
	flags.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	configPath := flags.String("config", config.DefaultCLIConfigPath(), "path to the YAML config")
	noColor := flags.Bool("no-color", false, "disable colors")
	if err := flags.Parse(args); err != nil {
		return 2
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return 2
	}

	log := logger.New(os.Stderr, slog.LevelWarn, "text")

	cfg, err := config.LoadCLI(*configPath)
	if err != nil {
		log.Critical("cli: loading config", "err", err)
		return 1
	}

	a, err := newCLIApp(ctx, cfg, *noColor, stdin, stdout, log)
	if err != nil {
		log.Critical("cli: init failed", "err", err)
		return 1
	}

	err = a.dispatch(ctx, flags.Arg(0), flags.Args()[1:])
	if closeErr := a.Close(); closeErr != nil {
		log.Error("cli: close failed", "err", closeErr)
	}
	if err != nil {
		if errors.Is(err, errUsage) {
			flags.Usage()
			return 2
		}
		a.render.Error(err)
		return 1
	}
	return 0
}

var errUsage = errors.New("usage")

func newCLIApp(ctx context.Context, cfg config.CLIConfig, noColor bool, stdin io.Reader, stdout io.Writer, log logger.Logger) (*cliApp, error) {
	kv, err := store.OpenSQLite(cfg.StorePath)
	if err != nil {
		return nil, err
	}

	session := cli.NewSession(kv, log)
	if _, err := session.Load(ctx); err != nil {
		return nil, multierr.Append(err, kv.Close())
	}

	api := client.New(cfg.BaseURL,
		client.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		client.WithUnauthorizedHandler(session.Expire),
	)
	session.Attach(api)

	render := cli.NewRenderer(stdout, cfg.Theme, noColor)
	banner := cli.NewBanner(cli.BannerDuration, func(message string, visible bool) {
		if visible {
			render.Banner(message)
		}
	})

	return &cliApp{
		kv:      kv,
		session: session,
		api:     api,
		home:    cli.NewHome(api, session, banner, log),
		banner:  banner,
		render:  render,
		in:      bufio.NewReader(stdin),
		out:     stdout,
		log:     log,
	}, nil
}

func (a *cliApp) Close() error {
	a.home.Close()
	return a.kv.Close()
}

func (a *cliApp) dispatch(ctx context.Context, command string, args []string) error {
	if command == "login" {
		return a.login(ctx, args)
	}
	if !a.session.SignedIn() {
		return errors.New("não conectado: use fitness-cli login")
	}

	switch command {
	case "logout":
		return a.session.SignOut(ctx)
	case "week":
		if err := a.home.Refresh(ctx); err != nil {
			return err
		}
		a.render.Week(a.home.Catalog(), a.home.Tracker())
	case "today":
		if err := a.home.Refresh(ctx); err != nil {
			return err
		}
		entry, ok := a.home.Today()
		if !ok {
			fmt.Fprintln(a.out, "Hoje é dia de descanso.")
			return nil
		}
		a.render.Workout(entry)
	case "play":
		return a.play(ctx, args)
	case "profile":
		if len(args) > 0 && args[0] == "set" {
			return a.profileSet(ctx, args[1:])
		}
		screen := cli.NewProfileScreen(a.api, a.session, a.log)
		a.render.Profile(screen.Sync(ctx))
	case "password":
		return a.password(ctx)
	case "progress":
		if err := a.home.Refresh(ctx); err != nil {
			return err
		}
		a.render.Progress(a.home.Progress())
	default:
		return errUsage
	}
	return nil
}

func (a *cliApp) login(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("login", flag.ContinueOnError)
	email := flags.String("email", "", "account email")
	if err := flags.Parse(args); err != nil {
		return errUsage
	}
	if *email == "" {
		value, err := a.prompt("E-mail: ")
		if err != nil {
			return err
		}
		*email = value
	}
	password, err := a.promptSecret("Senha: ")
	if err != nil {
		return err
	}

	profile, err := a.session.SignIn(ctx, *email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Bem-vindo, %s!\n", profile.Name)
	return nil
}

func (a *cliApp) profileSet(ctx context.Context, args []string) error {
	current := a.session.User()
	flags := flag.NewFlagSet("profile set", flag.ContinueOnError)
	name := flags.String("name", current.Name, "display name")
	height := flags.String("height", client.FormatMeasure(current.Height), "height in cm")
	weight := flags.String("weight", client.FormatMeasure(current.Weight), "weight in kg")
	avatarPath := flags.String("avatar", "", "path to a jpeg, png or webp image")
	if err := flags.Parse(args); err != nil {
		return errUsage
	}

	update := client.ProfileUpdate{Name: *name, Height: *height, Weight: *weight}
	if *avatarPath != "" {
		file, err := os.Open(*avatarPath)
		if err != nil {
			return fmt.Errorf("opening avatar: %w", err)
		}
		defer file.Close()
		update.Avatar = &client.Avatar{Filename: file.Name(), Body: file}
	}

	screen := cli.NewProfileScreen(a.api, a.session, a.log)
	profile, err := screen.Save(ctx, update)
	if err != nil {
		return err
	}
	a.render.Profile(profile)
	return nil
}

func (a *cliApp) password(ctx context.Context) error {
	var change client.PasswordChange
	var err error
	if change.Current, err = a.promptSecret("Senha atual: "); err != nil {
		return err
	}
	if change.New, err = a.promptSecret("Nova senha: "); err != nil {
		return err
	}
	if change.Confirmation, err = a.promptSecret("Confirme a nova senha: "); err != nil {
		return err
	}

	screen := cli.NewProfileScreen(a.api, a.session, a.log)
	if err := screen.ChangePassword(ctx, change); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Senha alterada.")
	return nil
}

func (a *cliApp) prompt(label string) (string, error) {
	fmt.Fprint(a.out, label)
	line, err := a.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptSecret hides input when stdin is a terminal.
func (a *cliApp) promptSecret(label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return a.prompt(label)
	}
	fmt.Fprint(a.out, label)
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(a.out)
	if err != nil {
		return "", err
	}
	return string(secret), nil
}
