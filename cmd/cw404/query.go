package main

import (
	"flag"
	"fmt"
)

func balance(args []string) error {
	fs := flag.NewFlagSet("balance", flag.ExitOnError)
	cf := addCommonFlags(fs)
	addr := fs.String("addr", "", "Address (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *addr == "" {
		fs.Usage()
		return fmt.Errorf("--addr required")
	}

	eng, done, err := openEngine(cf)
	if err != nil {
		return err
	}
	defer done()

	bal, err := eng.Balance(*addr)
	if err != nil {
		return err
	}
	fmt.Println(bal.Dec())
	return nil
}

func ownerOf(args []string) error {
	fs := flag.NewFlagSet("owner-of", flag.ExitOnError)
	cf := addCommonFlags(fs)
	tokenID := fs.Uint64("token", 0, "Token id (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *tokenID == 0 {
		fs.Usage()
		return fmt.Errorf("--token required")
	}

	eng, done, err := openEngine(cf)
	if err != nil {
		return err
	}
	defer done()

	owner, err := eng.OwnerOf(*tokenID)
	if err != nil {
		return err
	}
	if owner == "" {
		return fmt.Errorf("token %d does not exist", *tokenID)
	}
	fmt.Println(owner)
	return nil
}

func userInfo(args []string) error {
	fs := flag.NewFlagSet("user-info", flag.ExitOnError)
	cf := addCommonFlags(fs)
	addr := fs.String("addr", "", "Address (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *addr == "" {
		fs.Usage()
		return fmt.Errorf("--addr required")
	}

	eng, done, err := openEngine(cf)
	if err != nil {
		return err
	}
	defer done()

	info, err := eng.GetUserInfo(*addr)
	if err != nil {
		return err
	}
	fmt.Printf("balance: %s\n", info.Balance.Dec())
	fmt.Printf("owned:   %v\n", info.Owned)
	return nil
}

func tokens(args []string) error {
	fs := flag.NewFlagSet("tokens", flag.ExitOnError)
	cf := addCommonFlags(fs)
	addr := fs.String("addr", "", "Owner address (required)")
	after := fs.Uint64("after", 0, "List ids greater than this cursor")
	limit := fs.Uint("limit", 0, "Page size (default 10, max 1000)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *addr == "" {
		fs.Usage()
		return fmt.Errorf("--addr required")
	}

	eng, done, err := openEngine(cf)
	if err != nil {
		return err
	}
	defer done()

	ids, err := eng.Tokens(*addr, cursorArg(fs, "after", *after), limitArg(fs, *limit))
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Println(id)
	}
	return nil
}

func allTokens(args []string) error {
	fs := flag.NewFlagSet("all-tokens", flag.ExitOnError)
	cf := addCommonFlags(fs)
	after := fs.Uint64("after", 0, "List ids greater than this cursor")
	limit := fs.Uint("limit", 0, "Page size (default 10, max 1000)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	eng, done, err := openEngine(cf)
	if err != nil {
		return err
	}
	defer done()

	ids, err := eng.AllTokens(cursorArg(fs, "after", *after), limitArg(fs, *limit))
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Println(id)
	}
	return nil
}

func info(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	cf := addCommonFlags(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}

	eng, done, err := openEngine(cf)
	if err != nil {
		return err
	}
	defer done()

	ti, err := eng.GetTokenInfo()
	if err != nil {
		return err
	}
	minted, err := eng.NumTokens()
	if err != nil {
		return err
	}
	minter, err := eng.Minter()
	if err != nil {
		return err
	}

	fmt.Printf("name:     %s\n", ti.Name)
	fmt.Printf("symbol:   %s\n", ti.Symbol)
	fmt.Printf("decimals: %d\n", ti.Decimals)
	fmt.Printf("supply:   %s\n", ti.TotalSupply.Dec())
	fmt.Printf("minted:   %d\n", minted)
	fmt.Printf("owner:    %s\n", minter)
	return nil
}

// cursorArg returns a pointer only when the flag was set; a cursor of 0 set
// explicitly still means "start after id 0".
func cursorArg(fs *flag.FlagSet, name string, v uint64) *uint64 {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	if !set {
		return nil
	}
	return &v
}

func limitArg(fs *flag.FlagSet, v uint) *uint32 {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "limit" {
			set = true
		}
	})
	if !set {
		return nil
	}
	n := uint32(v)
	return &n
}
