package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/holiman/uint256"
	"github.com/sirupsen/logrus"

	"github.com/dojo-trading/cw404/store"
	"github.com/dojo-trading/cw404/token"
)

// commonFlags are shared by every subcommand.
type commonFlags struct {
	db      *string
	events  *string
	verbose *bool
}

func addCommonFlags(fs *flag.FlagSet) commonFlags {
	return commonFlags{
		db:      fs.String("db", "cw404.db", "SQLite database path"),
		events:  fs.String("events", "", "Append emitted events as JSON lines to this file"),
		verbose: fs.Bool("verbose", false, "Debug logging"),
	}
}

// openEngine builds an engine over the SQLite store named by the flags.
// The returned close func releases the store and any event log file.
func openEngine(cf commonFlags) (*token.Engine, func(), error) {
	st, err := store.NewSQLiteStore(*cf.db)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	var sink token.EventSink
	closeEvents := func() {}
	if *cf.events != "" {
		f, err := os.OpenFile(*cf.events, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			st.Close()
			return nil, nil, fmt.Errorf("open event log: %w", err)
		}
		sink = token.NewJSONLSink(f)
		closeEvents = func() { f.Close() }
	}

	log := logrus.New()
	if *cf.verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	eng := token.NewEngine(st, sink)
	eng.SetLogger(log)
	return eng, func() {
		st.Close()
		closeEvents()
	}, nil
}

func parseAmount(raw string) (*uint256.Int, error) {
	v, err := uint256.FromDecimal(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	return v, nil
}

func printEvent(ev *token.Event) {
	if ev == nil {
		return
	}
	fmt.Printf("%s", ev.Action)
	for k, v := range ev.Attrs {
		fmt.Printf(" %s=%s", k, v)
	}
	fmt.Println()
}
