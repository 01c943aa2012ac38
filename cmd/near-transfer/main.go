// Copyright 2021 Optakt Labs OÜ
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package main

import (
	"errors"
	"os"
	"time"

	"github.com/dgraph-io/badger/v2"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/optakt/near-go/account"
	"github.com/optakt/near-go/codec/zbor"
	"github.com/optakt/near-go/failure"
	"github.com/optakt/near-go/keystore"
	"github.com/optakt/near-go/models/near"
	"github.com/optakt/near-go/provider"
	"github.com/optakt/near-go/signer"
)

const (
	success = 0
	failed  = 1
)

func main() {
	os.Exit(run())
}

func run() int {

	// Command line parameter initialization.
	var (
		flagAmount   string
		flagBalance  bool
		flagFrom     string
		flagKey      string
		flagKeystore string
		flagLevel    string
		flagLog      string
		flagNetwork  string
		flagRPC      string
		flagTo       string
	)

	pflag.StringVarP(&flagAmount, "amount", "a", "", "amount to transfer in yoctoNEAR")
	pflag.BoolVarP(&flagBalance, "balance", "b", false, "log the balance of the sender before transferring")
	pflag.StringVarP(&flagFrom, "from", "f", "", "account ID of the sender")
	pflag.StringVarP(&flagKey, "key", "k", "", "secret key of the sender, stored in the key store for later use")
	pflag.StringVarP(&flagKeystore, "keystore", "s", "keystore", "directory of the key store database")
	pflag.StringVarP(&flagLevel, "wait-until", "w", near.DefaultWaitUntil.String(), "execution level to wait for")
	pflag.StringVarP(&flagLog, "level", "l", "info", "log output level")
	pflag.StringVarP(&flagNetwork, "network", "n", "testnet", "network name of the sender key in the key store")
	pflag.StringVarP(&flagRPC, "rpc", "r", "https://rpc.testnet.near.org", "URL of the JSON-RPC node")
	pflag.StringVarP(&flagTo, "to", "t", "", "account ID of the receiver")

	pflag.Parse()

	// Logger initialization.
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	log := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	level, err := zerolog.ParseLevel(flagLog)
	if err != nil {
		log.Error().Str("level", flagLog).Err(err).Msg("could not parse log level")
		return failed
	}
	log = log.Level(level)

	from := near.AccountID(flagFrom)
	to := near.AccountID(flagTo)
	amount, err := near.ParseBalance(flagAmount)
	if err != nil {
		log.Error().Str("amount", flagAmount).Err(err).Msg("invalid amount")
		return failed
	}

	db, err := badger.Open(keystore.DefaultOptions(flagKeystore))
	if err != nil {
		log.Error().Str("keystore", flagKeystore).Err(err).Msg("could not open key store database")
		return failed
	}
	defer db.Close()

	store := keystore.NewBadger(db, zbor.NewCodec())
	if flagKey != "" {
		secret, err := near.ParseSecretKey(flagKey)
		if err != nil {
			log.Error().Err(err).Msg("could not parse sender key")
			return failed
		}
		err = store.SetKey(flagNetwork, from, secret)
		if err != nil {
			log.Error().Err(err).Msg("could not store sender key")
			return failed
		}
	}
	secret, err := store.Key(flagNetwork, from)
	if errors.Is(err, keystore.ErrNotFound) {
		log.Error().Str("network", flagNetwork).Str("account", flagFrom).Msg("no sender key in key store, provide one with --key")
		return failed
	}
	if err != nil {
		log.Error().Err(err).Msg("could not load sender key")
		return failed
	}
	sign, err := signer.FromSecretKey(secret)
	if err != nil {
		log.Error().Err(err).Msg("could not initialize sender signer")
		return failed
	}

	rpc := provider.NewJSONRPC(flagRPC, provider.WithLogger(log))
	acc, err := account.New(from, sign, rpc, account.WithLogger(log))
	if err != nil {
		log.Error().Err(err).Msg("could not initialize sender account")
		return failed
	}

	if flagBalance {
		balance, err := acc.Balance()
		if err != nil {
			log.Error().Err(err).Msg("could not retrieve sender balance")
			return failed
		}
		log.Info().
			Str("total", balance.Total.String()).
			Str("available", balance.Available.String()).
			Str("staked", balance.Staked.String()).
			Msg("sender balance")
	}

	send, err := acc.SendMoney(to, amount)
	if err != nil {
		log.Error().Err(err).Msg("could not create transfer")
		return failed
	}

	log.Info().Str("hash", send.Hash().String()).Str("wait_until", flagLevel).Msg("submitting transfer")
	outcome, err := send.TransactAdvanced(flagLevel)
	var execution failure.ExecutionFailed
	reverted := errors.As(err, &execution)
	switch {
	case reverted:
		log.Error().Str("hash", send.Hash().String()).Str("kind", execution.Kind).Msg("transfer failed on chain")
	case errors.As(err, &failure.TransportError{}):
		log.Error().Str("hash", send.Hash().String()).Err(err).Msg("transfer status unknown, check the transaction before retrying")
		return failed
	case err != nil:
		log.Error().Err(err).Msg("could not submit transfer")
		return failed
	}

	err = json.NewEncoder(os.Stdout).Encode(outcome)
	if err != nil {
		log.Error().Err(err).Msg("could not print outcome")
		return failed
	}
	if reverted {
		return failed
	}

	log.Info().Str("hash", send.Hash().String()).Str("status", outcome.FinalExecutionStatus.String()).Msg("transfer done")

	return success
}
