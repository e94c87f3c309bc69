package main

import (
	"flag"
	"fmt"
	"os"
)

func transfer(args []string) error {
	fs := flag.NewFlagSet("transfer", flag.ExitOnError)
	cf := addCommonFlags(fs)
	from := fs.String("from", "", "Sender address (required)")
	to := fs.String("to", "", "Recipient address (required)")
	amount := fs.String("amount", "", "Fractional amount, or a token id when acting for another account (required)")
	by := fs.String("by", "", "Acting spender; routes through the allowance path")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: cw404 transfer [options]

Move value between addresses. Without --by the caller is the sender and the
amount is fractional. With --by the spender acts on the sender's behalf, and
an amount at or below the minted counter is treated as a token id.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *from == "" || *to == "" || *amount == "" {
		fs.Usage()
		return fmt.Errorf("--from, --to, and --amount required")
	}
	value, err := parseAmount(*amount)
	if err != nil {
		return err
	}

	eng, done, err := openEngine(cf)
	if err != nil {
		return err
	}
	defer done()

	if *by == "" {
		ev, err := eng.Transfer(*from, *to, value)
		if err != nil {
			return err
		}
		printEvent(ev)
		return nil
	}
	ev, err := eng.TransferOrTransferFrom(*by, *from, *to, value)
	if err != nil {
		return err
	}
	printEvent(ev)
	return nil
}

func send(args []string) error {
	fs := flag.NewFlagSet("send", flag.ExitOnError)
	cf := addCommonFlags(fs)
	from := fs.String("from", "", "Sender address (required)")
	contract := fs.String("contract", "", "Receiving contract address (required)")
	amount := fs.String("amount", "", "Fractional amount (required)")
	msg := fs.String("msg", "", "Opaque message forwarded to the receiver")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *from == "" || *contract == "" || *amount == "" {
		fs.Usage()
		return fmt.Errorf("--from, --contract, and --amount required")
	}
	value, err := parseAmount(*amount)
	if err != nil {
		return err
	}

	eng, done, err := openEngine(cf)
	if err != nil {
		return err
	}
	defer done()

	ev, err := eng.Send(*from, *contract, value, []byte(*msg))
	if err != nil {
		return err
	}
	printEvent(ev)
	return nil
}
