// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wallet

import (
	"github.com/btcsuite/btclog"

	"github.com/coredeposit/corewallet/txbuild"
	"github.com/coredeposit/corewallet/txcache"
)

// log is a logger that is initialized with no output filters. This means
// the package will not perform any logging by default until the caller
// requests it.
var log btclog.Logger

func init() {
	DisableLog()
}

// DisableLog disables all library log output. Logging output is disabled
// by default until UseLogger is called.
func DisableLog() {
	UseLogger(btclog.Disabled)
}

// UseLogger uses a specified Logger to output package logging info, and
// fans it out to the txcache and txbuild subpackages.
func UseLogger(logger btclog.Logger) {
	log = logger

	txcache.UseLogger(logger)
	txbuild.UseLogger(logger)
}
