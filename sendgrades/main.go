// Copyright 2026 The gradereport Authors.
//
// SPDX-License-Identifier: Apache-2.0

// Command sendgrades emails each student of an assignment sheet their grade report.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/UNO-SOFT/gradereport"
	"github.com/UNO-SOFT/gradereport/console"
	"github.com/UNO-SOFT/gradereport/mail"
	"github.com/UNO-SOFT/gradereport/pdf"
	"github.com/UNO-SOFT/gradereport/settings"
	"github.com/UNO-SOFT/gradereport/xlsx"
	"github.com/UNO-SOFT/zlog/v2"
	"github.com/google/uuid"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
)

var verbose zlog.VerboseVar
var logger = zlog.NewLogger(zlog.MaybeConsoleHandler(&verbose, os.Stderr)).SLog()

func main() {
	if err := Main(); err != nil {
		if errors.Is(err, gradereport.ErrCancelled) {
			os.Exit(2)
		}
		logger.Error("MAIN", "error", err)
		os.Exit(1)
	}
}

type options struct {
	gradereport.Config
	Columns string

	File, SheetName, Charset string
	SettingsDB, Me           string

	From                   string
	SMTPHost               string
	SMTPPort               int
	SMTPUser, SMTPPassword string
	Outbox                 string
	PDF                    bool
}

func Main() error {
	opts := options{Config: gradereport.DefaultConfig}
	fs := flag.NewFlagSet("sendgrades", flag.ContinueOnError)
	fs.Var(&verbose, "v", "logging verbosity")
	fs.String("config", "", "config file (flag value pairs, one per line)")
	fs.StringVar(&opts.File, "file", "", "gradebook (.xlsx or .csv)")
	fs.StringVar(&opts.SheetName, "sheet", "", "sheet (assignment) name (default: the active sheet)")
	fs.StringVar(&opts.Charset, "charset", gradereport.EncName, "csv charset name")
	fs.StringVar(&opts.Course, "course", "", "course name, the subject is \"<course> - <sheet>\"")
	fs.StringVar(&opts.ReplyTo, "reply-to", "", "professor's address for replies")
	fs.StringVar(&opts.Columns, "columns", columnsString(opts.Config.Columns),
		"column letters of last name,first name,email,grade,comment")
	fs.StringVar(&opts.HeaderColumn, "header-column", opts.HeaderColumn, "column scanned for the header row")
	fs.StringVar(&opts.SubGradeFrom, "subgrade-from", opts.SubGradeFrom, "first sub-grade column")
	fs.IntVar(&opts.StatsRows, "stats-rows", opts.StatsRows, "number of statistics rows at the bottom")
	fs.StringVar(&opts.SettingsDB, "settings-db", settings.DefaultPath(), "settings database")
	fs.StringVar(&opts.Me, "me", defaultMe(), "your email address (default debug address)")
	fs.StringVar(&opts.From, "from", "", "sender address (default: -me)")
	fs.StringVar(&opts.SMTPHost, "smtp-host", "", "SMTP server")
	fs.IntVar(&opts.SMTPPort, "smtp-port", 587, "SMTP port")
	fs.StringVar(&opts.SMTPUser, "smtp-user", "", "SMTP user")
	fs.StringVar(&opts.SMTPPassword, "smtp-password", "", "SMTP password")
	fs.StringVar(&opts.Outbox, "outbox", "", "write the emails into this directory instead of sending")
	fs.BoolVar(&opts.PDF, "pdf", false, "attach the report as PDF, too")

	withController := func(f func(context.Context, *gradereport.Controller, *console.UI) error, answers ...string) func(context.Context, []string) error {
		return func(ctx context.Context, _ []string) error {
			ui := console.New(os.Stdin, os.Stdout, answers...)
			ctrl, closer, err := opts.controller(ctx, ui)
			if err != nil {
				return err
			}
			defer closer.Close()
			return f(ctx, ctrl, ui)
		}
	}

	allFS := flag.NewFlagSet("all", flag.ContinueOnError)
	flagYes := allFS.Bool("yes", false, "do not ask for confirmation")
	allCmd := ffcli.Command{Name: "all", ShortUsage: "sendgrades [flags] all [-yes]",
		ShortHelp: "send grades to all student rows", FlagSet: allFS,
		Exec: func(ctx context.Context, args []string) error {
			var answers []string
			if *flagYes {
				answers = append(answers, "yes")
			}
			return withController(func(ctx context.Context, c *gradereport.Controller, _ *console.UI) error {
				return c.SendAll(ctx)
			}, answers...)(ctx, args)
		},
	}

	oneFS := flag.NewFlagSet("one", flag.ContinueOnError)
	flagRow := oneFS.Int("row", 0, "student row number (default: ask)")
	oneCmd := ffcli.Command{Name: "one", ShortUsage: "sendgrades [flags] one [-row N]",
		ShortHelp: "send grade to individual student by row", FlagSet: oneFS,
		Exec: func(ctx context.Context, args []string) error {
			var answers []string
			if *flagRow != 0 {
				answers = append(answers, strconv.Itoa(*flagRow))
			}
			return withController(func(ctx context.Context, c *gradereport.Controller, _ *console.UI) error {
				return c.SendOne(ctx)
			}, answers...)(ctx, args)
		},
	}

	debugCmd := ffcli.Command{Name: "debug", ShortUsage: "sendgrades [flags] debug on|off|reset",
		ShortHelp: "turn debug mode on or off, or reset the debug defaults",
		Exec: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return flag.ErrHelp
			}
			return withController(func(ctx context.Context, c *gradereport.Controller, _ *console.UI) error {
				switch args[0] {
				case "on":
					return c.SetDebug(ctx, true)
				case "off":
					return c.SetDebug(ctx, false)
				case "reset":
					return c.ResetDebug(ctx)
				}
				return fmt.Errorf("%q: %w", args[0], flag.ErrHelp)
			})(ctx, args)
		},
	}

	debugEmailCmd := ffcli.Command{Name: "debug-email", ShortUsage: "sendgrades [flags] debug-email [address]",
		ShortHelp: "change the debug email",
		Exec: func(ctx context.Context, args []string) error {
			return withController(func(ctx context.Context, c *gradereport.Controller, _ *console.UI) error {
				return c.ChangeDebugEmail(ctx)
			}, args...)(ctx, args)
		},
	}

	statusCmd := ffcli.Command{Name: "status", ShortUsage: "sendgrades [flags] status",
		ShortHelp: "print the settings and the sheet layout",
		Exec: withController(func(ctx context.Context, c *gradereport.Controller, _ *console.UI) error {
			return printStatus(ctx, os.Stdout, c)
		}),
	}

	initFS := flag.NewFlagSet("init", flag.ContinueOnError)
	flagOut := initFS.String("o", "", "output .xlsx file (default: <sheet>.xlsx)")
	flagTitle := initFS.String("title", "", "title in row 1")
	flagRoster := initFS.String("roster", "", "csv of last name,first name,email to fill in")
	flagSubGrades := initFS.String("subgrades", "", "comma separated sub-grade labels")
	initCmd := ffcli.Command{Name: "init", ShortUsage: "sendgrades -sheet NAME init [-o out.xlsx] [-roster roster.csv]",
		ShortHelp: "write an empty gradebook sheet", FlagSet: initFS,
		Exec: func(ctx context.Context, args []string) error {
			gb := gradereport.Gradebook{Sheet: opts.SheetName, Title: *flagTitle}
			if gb.Sheet == "" {
				gb.Sheet = "Assignment"
			}
			if gb.Title == "" {
				gb.Title = strings.TrimSpace(opts.Course + " - " + gb.Sheet)
			}
			if *flagSubGrades != "" {
				gb.SubGrades = strings.Split(*flagSubGrades, ",")
			}
			if *flagRoster != "" {
				var err error
				if gb.Students, err = readRoster(*flagRoster, opts.Charset); err != nil {
					return err
				}
			}
			out := *flagOut
			if out == "" {
				out = gb.Sheet + ".xlsx"
			}
			fh, err := os.Create(out)
			if err != nil {
				return err
			}
			defer fh.Close()
			w := xlsx.NewWriter(fh)
			if err = gradereport.WriteGradebook(w, opts.Config, gb); err != nil {
				return err
			}
			if err = w.Close(); err != nil {
				return err
			}
			logger.Info("gradebook written", "file", out, "students", len(gb.Students))
			return fh.Close()
		},
	}

	app := ffcli.Command{Name: "sendgrades", FlagSet: fs,
		ShortUsage: "sendgrades [flags] <subcommand>",
		Options: []ff.Option{
			ff.WithEnvVarPrefix("GRADEREPORT"),
			ff.WithConfigFileFlag("config"),
			ff.WithConfigFileParser(ff.PlainParser),
			ff.WithAllowMissingConfigFile(true),
		},
		Subcommands: []*ffcli.Command{&allCmd, &oneCmd, &debugCmd, &debugEmailCmd, &statusCmd, &initCmd},
		Exec: withController(func(ctx context.Context, c *gradereport.Controller, ui *console.UI) error {
			return ui.RunMenu(ctx, gradereport.MenuTitle, c.Menu)
		}),
	}

	if err := app.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	var err error
	if opts.Config.Columns, err = parseColumns(opts.Columns); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return app.Run(ctx)
}

// controller opens the sheet, the settings and the mailer.
func (opts *options) controller(ctx context.Context, ui gradereport.UI) (*gradereport.Controller, io.Closer, error) {
	var closers multiCloser
	runLogger := logger.With("run", uuid.NewString())

	if opts.Me == "" {
		return nil, nil, errors.New("-me is required")
	}
	store, err := settings.Open(ctx, opts.SettingsDB, opts.Me)
	if err != nil {
		return nil, nil, err
	}
	closers = append(closers, store)
	st := gradereport.Settings{Store: store, Identity: gradereport.StaticIdentity(opts.Me)}
	if err = st.EnsureDefaults(ctx); err != nil {
		closers.Close()
		return nil, nil, err
	}

	var sheet gradereport.Sheet
	switch ext := strings.ToLower(filepath.Ext(opts.File)); {
	case opts.File == "":
		closers.Close()
		return nil, nil, errors.New("-file is required")
	case ext == ".csv" || ext == ".txt":
		g, err := gradereport.ReadCsv(opts.File, opts.Charset)
		if err != nil {
			closers.Close()
			return nil, nil, err
		}
		sheet = g
	default:
		sh, err := xlsx.Open(opts.File, opts.SheetName)
		if err != nil {
			closers.Close()
			return nil, nil, err
		}
		closers = append(closers, sh)
		sheet = sh
	}

	from := opts.From
	if from == "" {
		from = opts.Me
	}
	var mailer gradereport.Mailer
	switch {
	case opts.Outbox != "":
		mailer = mail.Outbox{Dir: opts.Outbox, From: from}
	case opts.SMTPHost != "":
		mailer = mail.NewSMTP(opts.SMTPHost, opts.SMTPPort, opts.SMTPUser, opts.SMTPPassword, from)
	default:
		mailer = noMailer{}
	}

	ctrl := &gradereport.Controller{
		Config:   opts.Config,
		Sheet:    sheet,
		UI:       ui,
		Mailer:   mailer,
		Settings: st,
		Logger:   runLogger,
	}
	if opts.PDF {
		ctrl.Attacher = pdf.Attacher{}
	}
	runLogger.Debug("controller", "file", opts.File, "sheet", sheet.Name(), "course", opts.Course)
	return ctrl, closers, nil
}

type noMailer struct{}

func (noMailer) Send(context.Context, gradereport.Message) error {
	return errors.New("no mail transport: set -smtp-host or -outbox")
}

type multiCloser []io.Closer

func (mc multiCloser) Close() error {
	var errs []error
	for i := len(mc) - 1; i >= 0; i-- {
		if err := mc[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func printStatus(ctx context.Context, w io.Writer, c *gradereport.Controller) error {
	debug, err := c.Settings.Debug(ctx)
	if err != nil {
		return err
	}
	email, err := c.Settings.DebugEmail(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "debug:\t%t\ndebug email:\t%s\nsubject:\t%s\n", debug, email, c.Subject())
	lay, err := c.Layout(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "header row:\t%d\nstudent rows:\t%s\nsub-grades:\t%s:%s\n",
		lay.Header, lay.Students, lay.SubGrades.From, lay.SubGrades.To)
	return nil
}

func readRoster(fn, charset string) ([]gradereport.Student, error) {
	g, err := gradereport.ReadCsv(fn, charset)
	if err != nil {
		return nil, err
	}
	last, err := g.LastRow()
	if err != nil {
		return nil, err
	}
	var students []gradereport.Student
	for r := 1; r <= last; r++ {
		row, err := g.Range(gradereport.Cell("A", r), gradereport.Cell("C", r))
		if err != nil {
			return nil, err
		}
		if !gradereport.ValidEmail(strings.TrimSpace(row[0][2])) { // header or blank
			continue
		}
		students = append(students, gradereport.Student{
			LastName: row[0][0], FirstName: row[0][1], Email: strings.TrimSpace(row[0][2]),
		})
	}
	return students, nil
}

func columnsString(cm gradereport.ColumnMap) string {
	return strings.Join([]string{cm.LastName, cm.FirstName, cm.Email, cm.Grade, cm.Comment}, ",")
}

func parseColumns(s string) (gradereport.ColumnMap, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 5 {
		return gradereport.ColumnMap{}, fmt.Errorf("%q: need 5 columns", s)
	}
	for i, p := range parts {
		parts[i] = strings.ToUpper(strings.TrimSpace(p))
		if _, err := gradereport.LetterToColumn(parts[i]); err != nil {
			return gradereport.ColumnMap{}, err
		}
	}
	return gradereport.ColumnMap{
		LastName: parts[0], FirstName: parts[1], Email: parts[2], Grade: parts[3], Comment: parts[4],
	}, nil
}

func defaultMe() string {
	name := os.Getenv("USER")
	if u, err := user.Current(); err == nil {
		name = u.Username
	}
	host, _ := os.Hostname()
	if name == "" || host == "" {
		return ""
	}
	return name + "@" + host
}
