package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "init":
		err = initLedger(args)
	case "transfer":
		err = transfer(args)
	case "send":
		err = send(args)
	case "approve":
		err = approve(args)
	case "approve-all":
		err = approveAll(args)
	case "revoke-all":
		err = revokeAll(args)
	case "set-lock":
		err = setLock(args)
	case "set-exemption":
		err = setExemption(args)
	case "set-uri":
		err = setURI(args)
	case "balance":
		err = balance(args)
	case "owner-of":
		err = ownerOf(args)
	case "user-info":
		err = userInfo(args)
	case "tokens":
		err = tokens(args)
	case "all-tokens":
		err = allTokens(args)
	case "info":
		err = info(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`cw404 - hybrid fungible / whole-token ledger

Usage: cw404 <command> [options]

Ledger commands:
  init           Create the ledger with name, symbol, decimals, and supply
  transfer       Move a fractional amount between addresses
  send           Transfer and notify a receiving contract
  approve        Grant a token approval or fractional allowance
  approve-all    Grant an operator blanket authority
  revoke-all     Revoke an operator grant
  set-lock       Lock or unlock a whole token against burning
  set-exemption  Toggle whole-token exemption for an address (owner only)
  set-uri        Set the token metadata URI prefix (owner only)

Query commands:
  balance        Fractional balance of an address
  owner-of       Owner of a whole token
  user-info      Balance and owned token ids of an address
  tokens         Owned token ids of an address, paginated
  all-tokens     All existing token ids, paginated
  info           Ledger metadata and supply

Common options:
  --db <path>      SQLite database path (default cw404.db)
  --events <path>  Append emitted events as JSON lines
  --verbose        Debug logging

Run 'cw404 <command> -h' for command options.`)
}
