package server

import (
	"encoding/json"
	"flag"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/app"
	"github.com/iov-one/escrowd/errors"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagChainID = "chain_id"
	flagForce   = "f"
)

// GenOptions can parse command-line and flag to
// generate default app_state sections for the genesis file.
// This is application-specific
type GenOptions func(args []string) (escrowd.Options, error)

// GenesisPath is where tendermint keeps the genesis file of a home dir.
func GenesisPath(home string) string {
	return filepath.Join(home, "config", "genesis.json")
}

// InitCmd writes the app_state of the genesis file under home. A missing
// genesis file is created with the chain id given by the -chain_id flag.
// Existing app state sections are only replaced with -f.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	var (
		chainID string
		force   bool
	)
	initFlags := flag.NewFlagSet("init", flag.ContinueOnError)
	initFlags.StringVar(&chainID, flagChainID, "escrow-local", "chain id of a new genesis file")
	initFlags.BoolVar(&force, flagForce, false, "overwrite existing app state")
	if err := initFlags.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	genFile := GenesisPath(home)
	if !fileExists(genFile) {
		if err := writeGenesis(genFile, chainID); err != nil {
			return err
		}
		logger.Info("Generated genesis file", "path", genFile)
	} else {
		logger.Info("Found genesis file", "path", genFile)
	}

	current, err := app.LoadGenesis(genFile)
	if err != nil {
		return err
	}
	if hasAppState(current.AppState) && !force {
		return errors.Wrap(errors.ErrState, "app_state already set, use -f to overwrite")
	}

	options, err := gen(initFlags.Args())
	if err != nil {
		return err
	}
	if err := app.AddAppState(genFile, options); err != nil {
		return err
	}
	logger.Info("App state written", "path", genFile)
	return nil
}

func writeGenesis(path, chainID string) error {
	if !escrowd.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %q", chainID)
	}
	doc := map[string]interface{}{
		"genesis_time": time.Now().UTC().Format(time.RFC3339),
		"chain_id":     chainID,
		"app_state":    map[string]interface{}{},
	}
	bz, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "create config dir: %s", err)
	}
	return ioutil.WriteFile(path, bz, 0600)
}

func fileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return !os.IsNotExist(err)
}

func hasAppState(raw json.RawMessage) bool {
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(raw, &sections); err != nil {
		return len(raw) > 0 && string(raw) != "null"
	}
	return len(sections) > 0
}
