package main

import (
	"flag"
	"fmt"

	"github.com/dojo-trading/cw404/token"
)

func initLedger(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	cf := addCommonFlags(fs)
	name := fs.String("name", "", "Token name (required)")
	symbol := fs.String("symbol", "", "Token symbol (required)")
	decimals := fs.Uint("decimals", 6, "Fractional decimals per whole unit")
	supply := fs.String("supply", "", "Total native supply in whole units (required)")
	creator := fs.String("creator", "", "Creator address, receives the full supply (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" || *symbol == "" || *supply == "" || *creator == "" {
		fs.Usage()
		return fmt.Errorf("--name, --symbol, --supply, and --creator required")
	}
	if *decimals > 77 {
		return fmt.Errorf("--decimals must be at most 77")
	}
	native, err := parseAmount(*supply)
	if err != nil {
		return err
	}

	eng, done, err := openEngine(cf)
	if err != nil {
		return err
	}
	defer done()

	ev, err := eng.Instantiate(token.InstantiateMsg{
		Name:              *name,
		Symbol:            *symbol,
		Decimals:          uint8(*decimals),
		TotalNativeSupply: native,
		Creator:           *creator,
	})
	if err != nil {
		return err
	}
	printEvent(ev)
	return nil
}
