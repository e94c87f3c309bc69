package main

import (
	"flag"
	"fmt"
)

func setLock(args []string) error {
	fs := flag.NewFlagSet("set-lock", flag.ExitOnError)
	cf := addCommonFlags(fs)
	caller := fs.String("caller", "", "Token owner address (required)")
	tokenID := fs.Uint64("token", 0, "Token id (required)")
	unlock := fs.Bool("unlock", false, "Clear the lock instead of setting it")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *caller == "" || *tokenID == 0 {
		fs.Usage()
		return fmt.Errorf("--caller and --token required")
	}

	eng, done, err := openEngine(cf)
	if err != nil {
		return err
	}
	defer done()

	ev, err := eng.SetTokenLock(*caller, *tokenID, !*unlock)
	if err != nil {
		return err
	}
	printEvent(ev)
	return nil
}

func setExemption(args []string) error {
	fs := flag.NewFlagSet("set-exemption", flag.ExitOnError)
	cf := addCommonFlags(fs)
	caller := fs.String("caller", "", "Contract owner address (required)")
	target := fs.String("target", "", "Address to toggle (required)")
	disable := fs.Bool("disable", false, "Remove the exemption instead of granting it")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *caller == "" || *target == "" {
		fs.Usage()
		return fmt.Errorf("--caller and --target required")
	}

	eng, done, err := openEngine(cf)
	if err != nil {
		return err
	}
	defer done()

	ev, err := eng.SetExemption(*caller, *target, !*disable)
	if err != nil {
		return err
	}
	printEvent(ev)
	return nil
}

func setURI(args []string) error {
	fs := flag.NewFlagSet("set-uri", flag.ExitOnError)
	cf := addCommonFlags(fs)
	caller := fs.String("caller", "", "Contract owner address (required)")
	uri := fs.String("uri", "", "Metadata URI prefix (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *caller == "" || *uri == "" {
		fs.Usage()
		return fmt.Errorf("--caller and --uri required")
	}

	eng, done, err := openEngine(cf)
	if err != nil {
		return err
	}
	defer done()

	ev, err := eng.SetBaseTokenURI(*caller, *uri)
	if err != nil {
		return err
	}
	printEvent(ev)
	return nil
}
