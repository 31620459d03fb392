// Copyright (c) 2014 Conformal Systems LLC <info@conformal.com>
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// This file contains hand-rolled fakes for the chainsync collaborator
// interfaces. The stateful ones (the synchroniser, its subscription handle
// and transfers container) need scenario-driven behaviour a call-by-call
// mock can't express cleanly, so they carry their own state, mirroring the
// teacher's mockChainClient. The simple ones (node, currency) use
// testify/mock like the teacher's mockTxStore/mockAddrStore.
package wallet

import (
	"io"
	"sync"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/mock"

	"github.com/coredeposit/corewallet/chainsync"
)

// fakeTransfersContainer is a stateful, in-memory chainsync.TransfersContainer
// a test can seed and mutate directly.
type fakeTransfersContainer struct {
	mu sync.Mutex

	outputs []chainsync.TransactionOutputInformation
	infos   map[chainhash.Hash]containerTxInfo
}

type containerTxInfo struct {
	info      chainsync.TransactionInformation
	amountIn  btcutil.Amount
	amountOut btcutil.Amount
}

func newFakeTransfersContainer() *fakeTransfersContainer {
	return &fakeTransfersContainer{infos: make(map[chainhash.Hash]containerTxInfo)}
}

func (c *fakeTransfersContainer) setOutputs(outs []chainsync.TransactionOutputInformation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.outputs = outs
}

func (c *fakeTransfersContainer) setTransactionInfo(hash chainhash.Hash,
	info chainsync.TransactionInformation, amountIn, amountOut btcutil.Amount) {

	c.mu.Lock()
	defer c.mu.Unlock()
	c.infos[hash] = containerTxInfo{info: info, amountIn: amountIn, amountOut: amountOut}
}

func (c *fakeTransfersContainer) Balance(flags chainsync.OutputFlags) btcutil.Amount {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total btcutil.Amount
	for _, out := range c.outputs {
		if matchesOutputFlags(out, flags) {
			total += out.Amount
		}
	}
	return total
}

func (c *fakeTransfersContainer) Outputs(flags chainsync.OutputFlags) []chainsync.TransactionOutputInformation {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []chainsync.TransactionOutputInformation
	for _, o := range c.outputs {
		if matchesOutputFlags(o, flags) {
			out = append(out, o)
		}
	}
	return out
}

func (c *fakeTransfersContainer) TransactionInformation(hash chainhash.Hash) (
	chainsync.TransactionInformation, btcutil.Amount, btcutil.Amount, bool) {

	c.mu.Lock()
	defer c.mu.Unlock()
	ti, ok := c.infos[hash]
	return ti.info, ti.amountIn, ti.amountOut, ok
}

func (c *fakeTransfersContainer) TransactionOutputs(hash chainhash.Hash,
	flags chainsync.OutputFlags) []chainsync.TransactionOutputInformation {

	c.mu.Lock()
	defer c.mu.Unlock()

	var out []chainsync.TransactionOutputInformation
	for _, o := range c.outputs {
		if o.TransactionHash == hash && matchesOutputFlags(o, flags) {
			out = append(out, o)
		}
	}
	return out
}

func (c *fakeTransfersContainer) TransactionInputs(chainhash.Hash,
	chainsync.OutputFlags) []chainsync.TransactionOutputInformation {
	return nil
}

func matchesOutputFlags(out chainsync.TransactionOutputInformation, flags chainsync.OutputFlags) bool {
	isDeposit := out.Term != 0
	if isDeposit && !flags.Has(chainsync.IncludeTypeDeposit) {
		return false
	}
	if !isDeposit && !flags.Has(chainsync.IncludeTypeKey) {
		return false
	}
	if isDeposit {
		switch {
		case out.Locked && !flags.Has(chainsync.IncludeStateLocked):
			return false
		case out.SoftLocked && !flags.Has(chainsync.IncludeStateSoftLocked):
			return false
		case !out.Locked && !out.SoftLocked && !flags.Has(chainsync.IncludeStateUnlocked):
			return false
		}
		return true
	}
	if out.Locked && !flags.Has(chainsync.IncludeKeyNotUnlocked) {
		return false
	}
	if !out.Locked && !flags.Has(chainsync.IncludeKeyUnlocked) {
		return false
	}
	return true
}

// fakeSubscriptionHandle wraps a fakeTransfersContainer and tracks the
// observers registered against it.
type fakeSubscriptionHandle struct {
	mu        sync.Mutex
	container *fakeTransfersContainer
	observers []chainsync.TransfersObserver
}

func (h *fakeSubscriptionHandle) Container() chainsync.TransfersContainer { return h.container }

func (h *fakeSubscriptionHandle) AddObserver(o chainsync.TransfersObserver) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.observers = append(h.observers, o)
}

func (h *fakeSubscriptionHandle) RemoveObserver(o chainsync.TransfersObserver) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, ob := range h.observers {
		if ob == o {
			h.observers = append(h.observers[:i], h.observers[i+1:]...)
			return
		}
	}
}

func (h *fakeSubscriptionHandle) notifyTransactionUpdated(hash chainhash.Hash) {
	h.mu.Lock()
	obs := append([]chainsync.TransfersObserver{}, h.observers...)
	h.mu.Unlock()
	for _, o := range obs {
		o.OnTransactionUpdated(hash)
	}
}

// fakeSynchroniser is a stateful chainsync.Synchroniser. Save/Load round
// trip a single deterministic marker so tests can verify the opaque
// container blob flows through serialize/deserialize intact.
type fakeSynchroniser struct {
	mu          sync.Mutex
	subscribed  []chainsync.AccountSubscription
	handle      *fakeSubscriptionHandle
	progressObs []chainsync.ProgressObserver
	started     bool
	stopped     bool
	saveMarker  []byte
	loadedBlob  []byte
	addErr      error
	startErr    error
}

func newFakeSynchroniser(container *fakeTransfersContainer) *fakeSynchroniser {
	return &fakeSynchroniser{
		handle:     &fakeSubscriptionHandle{container: container},
		saveMarker: []byte("container-blob"),
	}
}

func (s *fakeSynchroniser) AddSubscription(sub chainsync.AccountSubscription) (chainsync.SubscriptionHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.addErr != nil {
		return nil, s.addErr
	}
	s.subscribed = append(s.subscribed, sub)
	return s.handle, nil
}

func (s *fakeSynchroniser) RemoveSubscription(string) error { return nil }

func (s *fakeSynchroniser) AddObserver(o chainsync.ProgressObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progressObs = append(s.progressObs, o)
}

func (s *fakeSynchroniser) RemoveObserver(o chainsync.ProgressObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, ob := range s.progressObs {
		if ob == o {
			s.progressObs = append(s.progressObs[:i], s.progressObs[i+1:]...)
			return
		}
	}
}

func (s *fakeSynchroniser) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.startErr != nil {
		return s.startErr
	}
	s.started = true
	return nil
}

func (s *fakeSynchroniser) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
}

func (s *fakeSynchroniser) Save(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := w.Write(s.saveMarker)
	return err
}

func (s *fakeSynchroniser) Load(r io.Reader) error {
	blob, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadedBlob = blob
	return nil
}

// fakeNodeClient is a testify/mock-based chainsync.NodeClient, mirroring the
// teacher's mockTxStore style for a collaborator with simple request/response
// semantics.
type fakeNodeClient struct {
	mock.Mock
}

func (m *fakeNodeClient) SendRawTransaction(tx *wire.MsgTx) (chainhash.Hash, error) {
	args := m.Called(tx)
	h, _ := args.Get(0).(chainhash.Hash)
	return h, args.Error(1)
}

func (m *fakeNodeClient) GetBlockCount() (int32, error) {
	args := m.Called()
	h, _ := args.Get(0).(int32)
	return h, args.Error(1)
}

// fakeCurrency is a testify/mock-based chainsync.Currency.
type fakeCurrency struct {
	mock.Mock
}

func (m *fakeCurrency) CalculateInterest(amount btcutil.Amount, term uint32, height int32) btcutil.Amount {
	args := m.Called(amount, term, height)
	v, _ := args.Get(0).(btcutil.Amount)
	return v
}

func (m *fakeCurrency) MempoolTxLiveTime() time.Duration {
	args := m.Called()
	d, _ := args.Get(0).(time.Duration)
	return d
}

func (m *fakeCurrency) GenesisTimestamp() int64 {
	args := m.Called()
	v, _ := args.Get(0).(int64)
	return v
}

var (
	_ chainsync.TransfersContainer = (*fakeTransfersContainer)(nil)
	_ chainsync.SubscriptionHandle = (*fakeSubscriptionHandle)(nil)
	_ chainsync.Synchroniser       = (*fakeSynchroniser)(nil)
	_ chainsync.NodeClient         = (*fakeNodeClient)(nil)
	_ chainsync.Currency           = (*fakeCurrency)(nil)
)
