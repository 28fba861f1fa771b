package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/cmd/escrowd/app"
	"github.com/iov-one/escrowd/commands/server"
	"github.com/iov-one/escrowd/crypto/hashlock"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	flagHome     = "home"
	flagLogLevel = "log_level"
	varHome      *string
	varLogLevel  *string
)

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".escrowd")
	varHome = flag.String(flagHome, defaultHome, "directory to store files under")
	varLogLevel = flag.String(flagLogLevel, "info", "log level: debug, info, error or none")
}

func helpMessage() {
	fmt.Println("escrowd")
	fmt.Println("        Hash time locked escrow ABCI Application")
	fmt.Println("")
	fmt.Println("help    Print this message")
	fmt.Println("init    Initialize app options in genesis file")
	fmt.Println("start   Run the abci server")
	fmt.Println("hash    Print sha256 and keccak256 of a hex encoded value")
	fmt.Println("version Print the app version")
	fmt.Println("")
	flag.PrintDefaults()
}

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	logger, err := newLogger(*varLogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = server.InitCmd(app.GenInitOptions, logger, *varHome, rest)
	case "start":
		err = server.StartCmd(app.GenerateApp, logger, *varHome, rest)
	case "hash":
		err = hashCmd(rest)
	case "version":
		fmt.Println(escrowd.Version())
	default:
		fmt.Printf("Unknown command: %s\n", cmd)
		helpMessage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}

func newLogger(level string) (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "escrowd")
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, err
	}
	return log.NewFilter(logger, opt), nil
}

// hashCmd prints both digests of every hex argument, so a secret can be
// checked against commitments made with either hash.
func hashCmd(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: escrowd hash <hex>...")
	}
	for _, arg := range args {
		raw, err := hex.DecodeString(arg)
		if err != nil {
			return fmt.Errorf("%q is not hex: %s", arg, err)
		}
		fmt.Printf("sha256    %s\n", hashlock.Encode(hashlock.Sha256(raw)))
		fmt.Printf("keccak256 %s\n", hashlock.Encode(hashlock.Keccak256(raw)))
	}
	return nil
}
