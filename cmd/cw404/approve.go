package main

import (
	"flag"
	"fmt"

	"github.com/dojo-trading/cw404/token"
)

func approve(args []string) error {
	fs := flag.NewFlagSet("approve", flag.ExitOnError)
	cf := addCommonFlags(fs)
	caller := fs.String("caller", "", "Granting address (required)")
	spender := fs.String("spender", "", "Spender address (required)")
	amount := fs.String("amount", "", "Fractional allowance, or an existing token id (required)")
	unlimited := fs.Bool("unlimited", false, "Grant an unlimited fractional allowance")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *caller == "" || *spender == "" {
		fs.Usage()
		return fmt.Errorf("--caller and --spender required")
	}

	value := token.UnlimitedAllowance
	if !*unlimited {
		if *amount == "" {
			fs.Usage()
			return fmt.Errorf("--amount or --unlimited required")
		}
		var err error
		value, err = parseAmount(*amount)
		if err != nil {
			return err
		}
	}

	eng, done, err := openEngine(cf)
	if err != nil {
		return err
	}
	defer done()

	ev, err := eng.Approve(*caller, *spender, value)
	if err != nil {
		return err
	}
	printEvent(ev)
	return nil
}

func approveAll(args []string) error {
	return operatorGrant(args, "approve-all", true)
}

func revokeAll(args []string) error {
	return operatorGrant(args, "revoke-all", false)
}

func operatorGrant(args []string, name string, grant bool) error {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	cf := addCommonFlags(fs)
	caller := fs.String("caller", "", "Granting address (required)")
	operator := fs.String("operator", "", "Operator address (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *caller == "" || *operator == "" {
		fs.Usage()
		return fmt.Errorf("--caller and --operator required")
	}

	eng, done, err := openEngine(cf)
	if err != nil {
		return err
	}
	defer done()

	var ev *token.Event
	if grant {
		ev, err = eng.ApproveAll(*caller, *operator)
	} else {
		ev, err = eng.RevokeAll(*caller, *operator)
	}
	if err != nil {
		return err
	}
	printEvent(ev)
	return nil
}
