package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/quinn/checkrun/checklist"
	"github.com/quinn/checkrun/clipboard"
	"github.com/quinn/checkrun/config"
	"github.com/quinn/checkrun/session"
	"github.com/quinn/checkrun/tui"
	"github.com/quinn/checkrun/tui/shared"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath(), "path to config file")
	resume := flag.Bool("resume", false, "resume the most recent run of this checklist")
	runID := flag.String("run", "", "run id to resume (implies an existing run)")
	outDir := flag.String("out", ".", "directory exported artifacts are written to")
	markdown := flag.Bool("md", false, "print the plan as a markdown checklist and exit")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: checkrun [flags] <plan.json|plan.yaml>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	plan, err := checklist.Load(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "checkrun: %v\n", err)
		os.Exit(1)
	}

	if *markdown {
		fmt.Print(checklist.RenderMarkdown(plan))
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "checkrun: %v\n", err)
		os.Exit(1)
	}

	var store session.Store
	var degraded error
	sqlStore, err := session.OpenSQLite(cfg.ResolvedStorePath())
	if err != nil {
		degraded = err
		store = session.NewMemoryStore()
	} else {
		defer sqlStore.Close()
		store = sqlStore
	}

	sess, err := openSession(plan, sqlStore, store, *resume, *runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "checkrun: %v\n", err)
		os.Exit(1)
	}
	seedSession(sess, plan)

	runtime := session.NewRuntime(sess, store)
	shared.InitStyles(cfg.ResolvedTheme())

	var notice string
	if degraded != nil {
		notice = "session store unavailable, changes will not be persisted: " + degraded.Error()
	}
	app := tui.New(&cfg, plan, runtime, clipboard.System{}, clipboard.System{}, *outDir, notice)
	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "checkrun: %v\n", err)
		os.Exit(1)
	}

	if degraded != nil {
		fmt.Fprintf(os.Stderr, "checkrun: session store was unavailable, nothing was persisted: %v\n", degraded)
	}
}

// openSession finds or creates the session for this invocation. An
// explicit -run id loads that run; -resume picks the latest run of the
// plan's title; otherwise a fresh run starts.
func openSession(plan *checklist.Plan, sqlStore *session.SQLiteStore, store session.Store, resume bool, runID string) (*session.Session, error) {
	switch {
	case runID != "":
		sess, ok, err := store.Load(session.Key(plan.Title, runID))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("no stored run %s for %q", runID, plan.Title)
		}
		return sess, nil

	case resume:
		if sqlStore == nil {
			return nil, fmt.Errorf("cannot resume: session store unavailable")
		}
		id, ok, err := sqlStore.LatestRun(plan.Title)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("no stored runs for %q", plan.Title)
		}
		sess, ok, err := store.Load(session.Key(plan.Title, id))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("run %s for %q disappeared from the store", id, plan.Title)
		}
		return sess, nil

	default:
		return session.New(plan.Title, newRunID()), nil
	}
}

// newRunID is a timestamp plus a short random suffix. Artifact names
// keep the date-hour prefix; the suffix keeps rapid consecutive runs
// distinct.
func newRunID() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05") + "-" + uuid.NewString()[:8]
}

// seedSession copies the plan's environment defaults into a session
// that has not set them yet.
func seedSession(sess *session.Session, plan *checklist.Plan) {
	env := &sess.Meta.Environment
	if env.Platform == "" {
		env.Platform = plan.Environment.Platform
	}
	if env.OSVersion == "" {
		env.OSVersion = plan.Environment.OSVersion
	}
	if env.AppVersion == "" {
		env.AppVersion = plan.Environment.AppVersion
	}
	if env.Revision == "" {
		env.Revision = plan.Environment.Revision
	}
	if len(env.Channels) == 0 {
		env.Channels = append(env.Channels, plan.Environment.Channels...)
	}
	if sess.Meta.Collector == "" {
		sess.Meta.Collector = plan.Collector
	}
}
