package server

import (
	"flag"

	"github.com/iov-one/escrowd/errors"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind  = "bind"
	flagDebug = "debug"
)

// startOptions are the flags of the start command.
type startOptions struct {
	addr  string
	debug bool
}

func parseStartFlags(args []string) (startOptions, error) {
	var opts startOptions
	startFlags := flag.NewFlagSet("start", flag.ContinueOnError)
	startFlags.StringVar(&opts.addr, flagBind, "tcp://localhost:26658", "address server listens on")
	startFlags.BoolVar(&opts.debug, flagDebug, false, "call stack returned on error")
	if err := startFlags.Parse(args); err != nil {
		return opts, errors.Wrap(errors.ErrInput, err.Error())
	}
	return opts, nil
}

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(home string, logger log.Logger, debug bool) (abci.Application, error)

// StartCmd builds the application in home and serves it over the abci
// socket protocol until the process receives a termination signal.
func StartCmd(gen AppGenerator, logger log.Logger, home string, args []string) error {
	opts, err := parseStartFlags(args)
	if err != nil {
		return err
	}

	app, err := gen(home, logger, opts.debug)
	if err != nil {
		return err
	}

	logger.Info("Starting ABCI app", "bind", opts.addr)

	svr, err := server.NewServer(opts.addr, "socket", app)
	if err != nil {
		return errors.Wrapf(errors.ErrHuman, "creating listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrapf(errors.ErrHuman, "starting server: %s", err)
	}

	// Wait forever
	cmn.TrapSignal(logger, func() {
		// Cleanup
		if err := svr.Stop(); err != nil {
			logger.Error("Stopping ABCI server", "err", err)
		}
	})
	select {}
}
