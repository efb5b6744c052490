package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/Carma123/Mental-Health-Support-System/internal"
	"github.com/Carma123/Mental-Health-Support-System/internal/api"
	"github.com/Carma123/Mental-Health-Support-System/internal/config"
	"github.com/Carma123/Mental-Health-Support-System/internal/metrics"
	"github.com/Carma123/Mental-Health-Support-System/internal/service"
	"github.com/Carma123/Mental-Health-Support-System/internal/session"
	"github.com/Carma123/Mental-Health-Support-System/internal/shell"
)

func main() {
	cfg := config.Load()

	logger, err := internal.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	sess := session.New(session.NewFileTokenStore(cfg.TokenFile), logger)

	rec := metrics.NewRecorder()
	if cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", rec.Handler())
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				logger.Errorf("metrics server: %v", err)
			}
		}()
	}

	client, err := api.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout, sess, logger, rec)
	if err != nil {
		logger.Fatalf("failed to init API client: %v", err)
	}

	auth := service.NewAuthenticator(client, sess, logger)
	moods := service.NewMoodList(client, logger)
	bookings := service.NewBookingList(client, logger)
	contacts := service.NewContactList(client, logger)
	directory := service.NewDirectory(client, logger)
	resources := service.NewResourceList(client, logger)
	sos := service.NewSOSDispatcher(client, logger)

	out := os.Stdout
	sh := shell.New(sess, logger, out)
	sh.Handle("home", shell.HomeView(), false)
	sh.Handle("login", shell.LoginView(), false)
	sh.Handle("mood-log", shell.MoodLogView(moods), true)
	sh.Handle("mood-history", shell.MoodHistoryView(moods, nil, nil), true)
	sh.Handle("therapists", shell.TherapistsView(directory), true)
	sh.Handle("bookings", shell.BookingsView(bookings), true)
	sh.Handle("resources", shell.ResourcesView(resources), true)
	sh.Handle("emergency-contacts", shell.ContactsView(contacts), true)
	defer sh.Close()

	in := bufio.NewScanner(os.Stdin)
	confirm := func(prompt string) bool {
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		if !in.Scan() {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(in.Text()))
		return answer == "y" || answer == "yes"
	}
	locator := service.FixedLocator{}

	_ = sh.Navigate("home")
	fmt.Fprintln(out, `Type "help" for commands.`)

	ctx := context.Background()
	for {
		fmt.Fprint(out, "> ")
		if !in.Scan() {
			return
		}
		args := strings.Fields(in.Text())
		if len(args) == 0 {
			continue
		}

		var err error
		switch args[0] {
		case "help":
			printHelp(out, sh)
		case "quit", "exit":
			return

		case "go":
			if len(args) != 2 {
				err = errors.New("usage: go <route>")
				break
			}
			err = sh.Navigate(args[1])

		case "login":
			if len(args) != 3 {
				err = errors.New("usage: login <email> <password>")
				break
			}
			if err = auth.Login(ctx, args[1], args[2]); err != nil {
				fmt.Fprintln(out, auth.Err())
				err = nil
				break
			}
			fmt.Fprintln(out, auth.Message())
			err = sh.Navigate("home")

		case "register":
			if len(args) != 4 {
				err = errors.New("usage: register <username> <email> <password>")
				break
			}
			if err = auth.Register(ctx, args[1], args[2], args[3]); err != nil {
				fmt.Fprintln(out, auth.Err())
				err = nil
				break
			}
			fmt.Fprintln(out, auth.Message())

		case "logout":
			err = sh.Logout()

		case "mood":
			if len(args) < 2 {
				err = errors.New("usage: mood <mood> [note]")
				break
			}
			if !sess.IsAuthenticated() {
				err = errors.New(`log in first: "login <email> <password>"`)
				break
			}
			if err = moods.Log(ctx, args[1], strings.Join(args[2:], " ")); err != nil {
				fmt.Fprintln(out, moods.Err())
				err = nil
				break
			}
			fmt.Fprintln(out, moods.Message())

		case "edit-mood":
			if len(args) < 3 {
				err = errors.New("usage: edit-mood <id> <mood> [note]")
				break
			}
			var id int
			if id, err = strconv.Atoi(args[1]); err != nil {
				break
			}
			if err = moods.Update(ctx, id, args[2], strings.Join(args[3:], " ")); err != nil {
				fmt.Fprintln(out, moods.Err())
				err = nil
				break
			}
			fmt.Fprintln(out, moods.Message())

		case "delete-mood":
			var id int
			if id, err = parseID(args, "usage: delete-mood <id>"); err != nil {
				break
			}
			if err = moods.Delete(ctx, id, confirm); err != nil {
				report(out, err, moods.Err())
				err = nil
			}

		case "select-day":
			if len(args) != 3 {
				err = errors.New("usage: select-day <therapist-id> <day>")
				break
			}
			var id int
			if id, err = strconv.Atoi(args[1]); err != nil {
				break
			}
			directory.SelectDay(id, args[2])
			err = sh.Navigate("therapists")

		case "book":
			if len(args) != 3 {
				err = errors.New("usage: book <therapist-id> <slot>")
				break
			}
			var id int
			if id, err = strconv.Atoi(args[1]); err != nil {
				break
			}
			if err = directory.Book(ctx, id, directory.SelectedDay(id), args[2]); err != nil {
				msg, _ := directory.Notice()
				fmt.Fprintln(out, msg)
				err = nil
				break
			}
			msg, _ := directory.Notice()
			fmt.Fprintln(out, msg)

		case "edit-booking":
			if len(args) != 4 {
				err = errors.New("usage: edit-booking <id> <day> <slot>")
				break
			}
			var id int
			if id, err = strconv.Atoi(args[1]); err != nil {
				break
			}
			bookings.StartEditing(id)
			if err = bookings.Save(ctx, id, args[2], args[3]); err != nil {
				fmt.Fprintln(out, bookings.Err())
				err = nil
				break
			}
			fmt.Fprintln(out, bookings.Message())

		case "cancel-edit":
			bookings.CancelEditing()

		case "cancel-booking":
			var id int
			if id, err = parseID(args, "usage: cancel-booking <id>"); err != nil {
				break
			}
			if err = bookings.Cancel(ctx, id, confirm); err != nil {
				report(out, err, bookings.Err())
				err = nil
				break
			}
			fmt.Fprintln(out, bookings.Message())

		case "add-contact":
			if len(args) < 3 {
				err = errors.New("usage: add-contact <name> <phone> [email] [relationship]")
				break
			}
			req := service.ContactRequest{Name: args[1], Phone: args[2]}
			if len(args) > 3 {
				req.Email = args[3]
			}
			if len(args) > 4 {
				req.Relationship = args[4]
			}
			if err = contacts.Add(ctx, req); err != nil {
				fmt.Fprintln(out, contacts.Err())
				err = nil
				break
			}
			fmt.Fprintln(out, contacts.Message())

		case "delete-contact":
			var id int
			if id, err = parseID(args, "usage: delete-contact <id>"); err != nil {
				break
			}
			if err = contacts.Remove(ctx, id, confirm); err != nil {
				report(out, err, contacts.Err())
				err = nil
				break
			}
			fmt.Fprintln(out, contacts.Message())

		case "sos":
			var msg string
			if msg, err = sos.Send(ctx, locator, confirm); err != nil {
				report(out, err, sos.Err())
				err = nil
				break
			}
			fmt.Fprintln(out, msg)

		default:
			err = fmt.Errorf("unknown command %q", args[0])
		}

		if err != nil {
			fmt.Fprintln(out, err)
		}
	}
}

func parseID(args []string, usage string) (int, error) {
	if len(args) != 2 {
		return 0, errors.New(usage)
	}
	return strconv.Atoi(args[1])
}

func report(out *os.File, err error, msg string) {
	if errors.Is(err, service.ErrCancelled) {
		return
	}
	if msg != "" {
		fmt.Fprintln(out, msg)
	} else {
		fmt.Fprintln(out, err)
	}
}

func printHelp(out *os.File, sh *shell.Shell) {
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  go <route>            open a view; available routes:", strings.Join(sh.Routes(), ", "))
	fmt.Fprintln(out, "  login <email> <pw>    sign in")
	fmt.Fprintln(out, "  register <u> <e> <pw> create an account")
	fmt.Fprintln(out, "  logout")
	fmt.Fprintln(out, "  mood <mood> [note]    log a mood")
	fmt.Fprintln(out, "  edit-mood <id> <mood> [note]")
	fmt.Fprintln(out, "  delete-mood <id>")
	fmt.Fprintln(out, "  select-day <tid> <day>")
	fmt.Fprintln(out, "  book <tid> <slot>")
	fmt.Fprintln(out, "  edit-booking <id> <day> <slot>")
	fmt.Fprintln(out, "  cancel-edit           close an open booking edit")
	fmt.Fprintln(out, "  cancel-booking <id>")
	fmt.Fprintln(out, "  add-contact <name> <phone> [email] [relationship]")
	fmt.Fprintln(out, "  delete-contact <id>")
	fmt.Fprintln(out, "  sos")
	fmt.Fprintln(out, "  quit")
}
