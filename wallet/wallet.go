// Copyright (c) 2014 Conformal Systems LLC <info@conformal.com>
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wallet implements the single-account wallet core: lifecycle
// state machine, transaction cache, four-axis balance model,
// request/callback chaining engine and encrypted versioned
// serialisation, consuming a blockchain synchroniser, node and currency
// collaborator only through the chainsync interfaces. It plays the role
// the teacher's wallet.Wallet/wallet.Loader pair plays for a UTXO wallet,
// generalised to this engine's richer transaction/transfer/deposit model.
package wallet

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/coredeposit/corewallet/chainsync"
	"github.com/coredeposit/corewallet/txbuild"
	"github.com/coredeposit/corewallet/txcache"
)

// Option configures a Wallet at construction time, mirroring the
// teacher's functional wallet.LoaderOption style.
type Option func(*Wallet)

// WithAddressDeriver overrides how an address is derived from the
// account's keys. The default derives a standard P2PKH address from the
// spend key alone.
func WithAddressDeriver(fn func(spend, view *btcec.PrivateKey) (string, error)) Option {
	return func(w *Wallet) { w.addressFromKeys = fn }
}

// WithChainParams overrides the network parameters used to derive
// addresses. Defaults to chaincfg.MainNetParams.
func WithChainParams(params *chaincfg.Params) Option {
	return func(w *Wallet) { w.chainParams = params }
}

// Wallet is the single-account wallet façade. A single mutex protects the
// cache, state and password, exactly as spec.md §4.1 requires; observers
// are never invoked while it is held.
type Wallet struct {
	mu sync.Mutex

	state      stateHolder
	isStopping boolFlag

	password string
	account  *Account
	cache    *txcache.Cache

	synchroniser chainsync.Synchroniser
	node         chainsync.NodeClient
	currency     chainsync.Currency
	subscription chainsync.SubscriptionHandle

	observers observerRegistry
	async     asyncContextCounter
	notified  lastNotified

	addressFromKeys func(spend, view *btcec.PrivateKey) (string, error)
	chainParams     *chaincfg.Params

	// pendingContainerBlob holds the opaque synchroniser-container blob
	// loaded by initAndLoad, consumed by the following initSyncLocked
	// call via synchroniser.Load before subscribing.
	pendingContainerBlob []byte
}

// New returns a Wallet in StateNotInitialized, bound to the given
// collaborators.
func New(synchroniser chainsync.Synchroniser, node chainsync.NodeClient, currency chainsync.Currency, opts ...Option) *Wallet {
	w := &Wallet{
		cache:        txcache.New(),
		synchroniser: synchroniser,
		node:         node,
		currency:     currency,
		chainParams:  &chaincfg.MainNetParams,
	}
	w.addressFromKeys = w.defaultAddressFromKeys

	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Wallet) defaultAddressFromKeys(spend, _ *btcec.PrivateKey) (string, error) {
	addr, err := btcutil.NewAddressPubKeyHash(
		btcutil.Hash160(spend.PubKey().SerializeCompressed()), w.chainParams)
	if err != nil {
		return "", err
	}
	return addr.EncodeAddress(), nil
}

// AddObserver registers o to receive future notifications.
func (w *Wallet) AddObserver(o Observer) { w.observers.add(o) }

// RemoveObserver unregisters o.
func (w *Wallet) RemoveObserver(o Observer) { w.observers.remove(o) }

func (w *Wallet) drain(events []event) {
	for _, e := range events {
		ev := e
		w.observers.notify(func(o Observer) { ev.dispatch(o) })
	}
}

// InitAndGenerate creates a new account synchronously and transitions the
// wallet to INITIALIZED.
func (w *Wallet) InitAndGenerate(password string) error {
	w.mu.Lock()
	if w.state.load() != StateNotInitialized {
		w.mu.Unlock()
		return ErrWalletAlreadyInitialized
	}

	account, err := generateAccount(w.addressFromKeys, time.Now().Unix())
	if err != nil {
		w.mu.Unlock()
		return err
	}

	w.account = account
	w.password = password
	events, err := w.initSyncLocked()
	w.mu.Unlock()

	w.drain(events)
	if err == nil {
		err = w.startSynchroniser()
	}
	w.drain([]event{initCompletedEvent{err: err}})
	return err
}

// InitWithKeys imports an account from raw key material, synchronously.
func (w *Wallet) InitWithKeys(spendKeyBytes, viewKeyBytes []byte, password string) error {
	w.mu.Lock()
	if w.state.load() != StateNotInitialized {
		w.mu.Unlock()
		return ErrWalletAlreadyInitialized
	}

	account, err := importAccount(spendKeyBytes, viewKeyBytes, w.addressFromKeys)
	if err != nil {
		w.mu.Unlock()
		return err
	}

	w.account = account
	w.password = password
	events, err := w.initSyncLocked()
	w.mu.Unlock()

	w.drain(events)
	if err == nil {
		err = w.startSynchroniser()
	}
	w.drain([]event{initCompletedEvent{err: err}})
	return err
}

// InitAndLoad begins an asynchronous load from r, transitioning through
// LOADING. The synchronous precondition failure (already initialized) is
// reported immediately; decrypt/deserialise failures are reported only via
// the InitCompleted observer callback.
func (w *Wallet) InitAndLoad(r io.Reader, password string) error {
	w.mu.Lock()
	if w.state.load() != StateNotInitialized {
		w.mu.Unlock()
		return ErrWalletAlreadyInitialized
	}
	w.state.store(StateLoading)
	w.mu.Unlock()

	w.async.spawn(func() {
		w.runInitAndLoad(r, password)
	})
	return nil
}

func (w *Wallet) runInitAndLoad(r io.Reader, password string) {
	w.mu.Lock()

	account, detailedBlob, containerBlob, err := w.deserialize(r, password)
	if err != nil {
		w.state.store(StateNotInitialized)
		w.mu.Unlock()
		w.drain([]event{initCompletedEvent{err: err}})
		return
	}

	w.account = account
	w.password = password
	w.pendingContainerBlob = containerBlob

	if len(detailedBlob) > 0 {
		// Cache-load failures are swallowed: the cache is an
		// optimisation, and the wallet simply re-syncs from scratch.
		if err := loadCacheBlob(w.cache, detailedBlob); err != nil {
			log.Warnf("initAndLoad: cache load failed, resyncing: %v", err)
		}
	}

	events, err := w.initSyncLocked()
	w.mu.Unlock()

	w.drain(events)
	if err == nil {
		err = w.startSynchroniser()
	}
	w.drain([]event{initCompletedEvent{err: err}})
}

// initSyncLocked subscribes to the synchroniser, attaches the façade as
// both transfers observer and progress observer, and transitions the
// wallet to INITIALIZED. Must be called with mu held. It never starts or
// stops the synchroniser itself — per spec.md §5 the façade mutex is never
// held across a call into the synchroniser's start/stop, so callers start
// it themselves once they've released mu.
func (w *Wallet) initSyncLocked() ([]event, error) {
	if len(w.pendingContainerBlob) > 0 {
		if err := w.synchroniser.Load(bytes.NewReader(w.pendingContainerBlob)); err != nil {
			log.Warnf("initSync: container load failed, resyncing: %v", err)
		}
		w.pendingContainerBlob = nil
	}

	syncStart := w.account.CreateTime - createTimeAccuracy
	if floor := w.currency.GenesisTimestamp(); syncStart < floor {
		syncStart = floor
	}

	sub := chainsync.AccountSubscription{
		Address:            w.account.Address,
		SyncStartTimestamp: syncStart,
		SyncStartHeight:    0,
	}

	handle, err := w.synchroniser.AddSubscription(sub)
	if err != nil {
		return nil, walletError(ErrInternal, "add subscription", err)
	}
	w.subscription = handle
	handle.AddObserver(w)
	w.synchroniser.AddObserver(w)

	w.state.store(StateInitialized)
	w.notified.reset()

	return nil, nil
}

// startSynchroniser starts the synchroniser outside of w.mu. Must be
// called after initSyncLocked has released the lock.
func (w *Wallet) startSynchroniser() error {
	if err := w.synchroniser.Start(); err != nil {
		return walletError(ErrInternal, "start synchroniser", err)
	}
	return nil
}

// Shutdown tears the wallet down: it sets the stopping flag (Save and the
// synchroniser callbacks then return early), unsubscribes from the
// synchroniser, drains outstanding async contexts, and returns the wallet
// to NOT_INITIALIZED. SendTransaction, Deposit and WithdrawDeposits do not
// check the stopping flag.
func (w *Wallet) Shutdown() error {
	w.mu.Lock()
	if w.state.load() == StateNotInitialized {
		w.mu.Unlock()
		return walletError(ErrInternal, "shutdown reentered", nil)
	}
	w.isStopping.set(true)

	if w.synchroniser != nil {
		w.synchroniser.RemoveObserver(w)
		if w.subscription != nil {
			w.subscription.RemoveObserver(w)
		}
	}
	synchroniser := w.synchroniser
	w.mu.Unlock()

	// Stop is called outside w.mu: per spec.md §5 the façade mutex is
	// never held across a call into the synchroniser's start/stop.
	if synchroniser != nil {
		synchroniser.Stop()
	}

	w.async.wait()

	w.mu.Lock()
	w.state.store(StateNotInitialized)
	w.cache = txcache.New()
	w.account = nil
	w.isStopping.set(false)
	w.notified.reset()
	w.mu.Unlock()

	return nil
}

// Reset saves the wallet to an in-memory buffer, shuts it down, then
// reloads it from that buffer. Failures are logged and swallowed, per
// spec.md §7's best-effort semantics for Reset.
func (w *Wallet) Reset() {
	if w.state.load() != StateInitialized {
		return
	}

	var buf bytes.Buffer
	password := w.currentPassword()

	if err := w.saveSync(&buf, true, true); err != nil {
		log.Errorf("reset: save failed: %v", err)
		return
	}
	if err := w.Shutdown(); err != nil {
		log.Errorf("reset: shutdown failed: %v", err)
		return
	}
	if err := w.InitAndLoad(&buf, password); err != nil {
		log.Errorf("reset: reload failed: %v", err)
	}
}

func (w *Wallet) currentPassword() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.password
}

// Save asynchronously serialises the wallet to out. saveDetailed includes
// the full transaction cache; saveCache includes the transfers
// container's own opaque cache blob.
func (w *Wallet) Save(out io.Writer, saveDetailed, saveCache bool) error {
	w.mu.Lock()
	state := w.state.load()
	if state != StateInitialized {
		w.mu.Unlock()
		return ErrWalletWrongState
	}
	if w.isStopping.get() {
		w.mu.Unlock()
		return ErrWalletOperationCancelled
	}
	w.state.store(StateSaving)
	w.mu.Unlock()

	w.async.spawn(func() {
		err := w.saveSync(out, saveDetailed, saveCache)

		w.mu.Lock()
		w.state.store(StateInitialized)
		w.mu.Unlock()

		w.drain([]event{saveCompletedEvent{err: err}})
	})
	return nil
}

func (w *Wallet) saveSync(out io.Writer, saveDetailed, saveCache bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var cacheBlob []byte
	if saveCache && w.subscription != nil {
		var buf bytes.Buffer
		if err := w.synchroniser.Save(&buf); err == nil {
			cacheBlob = buf.Bytes()
		}
	}

	return serialize(out, w.account, w.password, w.cache, saveDetailed, cacheBlob)
}

// ChangePassword swaps the password protecting the serialised wallet.
func (w *Wallet) ChangePassword(oldPassword, newPassword string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state.load() != StateInitialized {
		return ErrWalletNotInitialized
	}
	if w.password != oldPassword {
		return ErrWalletWrongPassword
	}
	w.password = newPassword
	return nil
}

// GetAddress returns the account's address.
func (w *Wallet) GetAddress() (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state.load() != StateInitialized {
		return "", ErrWalletNotInitialized
	}
	return w.account.Address, nil
}

// GetAccountKeys returns the account's key material. Mirrors the
// original's getAccountKeys, which checks only NOT_INITIALIZED, not
// LOADING — a deliberate asymmetry preserved here.
func (w *Wallet) GetAccountKeys() (AccountKeys, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.account == nil {
		return AccountKeys{}, ErrWalletNotInitialized
	}
	return AccountKeys{SpendKey: w.account.SpendKey, ViewKey: w.account.ViewKey}, nil
}

// ActualBalance returns the confirmed, unlocked balance.
func (w *Wallet) ActualBalance() (btcutil.Amount, error) {
	return w.readBalance(computeActualBalance)
}

// PendingBalance returns the unconfirmed/locked balance.
func (w *Wallet) PendingBalance() (btcutil.Amount, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state.load() != StateInitialized {
		return 0, ErrWalletNotInitialized
	}
	return computePendingBalance(w.subscription.Container(), w.cache, w.currency), nil
}

// ActualDepositBalance returns the unlocked deposit balance, principal
// plus accrued interest.
func (w *Wallet) ActualDepositBalance() (btcutil.Amount, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state.load() != StateInitialized {
		return 0, ErrWalletNotInitialized
	}
	return computeActualDepositBalance(w.subscription.Container(), w.cache, w.currency), nil
}

// PendingDepositBalance returns the locked/soft-locked deposit balance,
// principal plus accrued interest.
func (w *Wallet) PendingDepositBalance() (btcutil.Amount, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state.load() != StateInitialized {
		return 0, ErrWalletNotInitialized
	}
	return computePendingDepositBalance(w.subscription.Container(), w.cache, w.currency), nil
}

func (w *Wallet) readBalance(compute func(chainsync.TransfersContainer, *txcache.Cache) btcutil.Amount) (btcutil.Amount, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state.load() != StateInitialized {
		return 0, ErrWalletNotInitialized
	}
	return compute(w.subscription.Container(), w.cache), nil
}

// emitBalanceEventsLocked recomputes all four balance axes and returns
// events for whichever ones changed since the last emission. Must be
// called with mu held.
func (w *Wallet) emitBalanceEventsLocked() []event {
	if w.subscription == nil {
		return nil
	}
	transfers := w.subscription.Container()

	var events []event

	actual := computeActualBalance(transfers, w.cache)
	if exchangeIfChanged(&w.notified.actual, actual) {
		events = append(events, actualBalanceEvent{v: actual})
	}

	pending := computePendingBalance(transfers, w.cache, w.currency)
	if exchangeIfChanged(&w.notified.pending, pending) {
		events = append(events, pendingBalanceEvent{v: pending})
	}

	actualDeposit := computeActualDepositBalance(transfers, w.cache, w.currency)
	if exchangeIfChanged(&w.notified.actualDeposit, actualDeposit) {
		events = append(events, actualDepositBalanceEvent{v: actualDeposit})
	}

	pendingDeposit := computePendingDepositBalance(transfers, w.cache, w.currency)
	if exchangeIfChanged(&w.notified.pendingDeposit, pendingDeposit) {
		events = append(events, pendingDepositBalanceEvent{v: pendingDeposit})
	}

	return events
}

// SendTransaction drafts and submits a payment, returning the assigned
// TransactionID immediately; submission continues on a background worker.
func (w *Wallet) SendTransaction(transfers []txTransfer, fee btcutil.Amount, extra []byte,
	unlockTime uint32, messages []string, ttl int32) (txcache.TransactionID, error) {

	w.mu.Lock()
	if w.state.load() != StateInitialized {
		w.mu.Unlock()
		return 0, ErrWalletNotInitialized
	}

	outputs := w.subscription.Container().Outputs(chainsync.IncludeTypeKey | chainsync.IncludeKeyUnlocked)
	txID, events, req, err := makeSendRequest(w, outputs, transfers, fee, extra, unlockTime, messages, ttl)
	if err != nil {
		w.mu.Unlock()
		return 0, err
	}
	events = append(events, w.emitBalanceEventsLocked()...)
	w.mu.Unlock()

	w.drain(events)
	w.dispatchChain(req)
	return txID, nil
}

// Deposit creates a term-locked output.
func (w *Wallet) Deposit(term uint32, amount, fee btcutil.Amount) (txcache.TransactionID, error) {
	w.mu.Lock()
	if w.state.load() != StateInitialized {
		w.mu.Unlock()
		return 0, ErrWalletNotInitialized
	}

	outputs := w.subscription.Container().Outputs(chainsync.IncludeTypeKey | chainsync.IncludeKeyUnlocked)
	txID, events, req, err := makeDepositRequest(w, outputs, term, amount, fee)
	if err != nil {
		w.mu.Unlock()
		return 0, err
	}
	events = append(events, w.emitBalanceEventsLocked()...)
	w.mu.Unlock()

	w.drain(events)
	w.dispatchChain(req)
	return txID, nil
}

// WithdrawDeposits spends the listed matured deposits.
func (w *Wallet) WithdrawDeposits(ids []txcache.DepositID, fee btcutil.Amount) (txcache.TransactionID, error) {
	w.mu.Lock()
	if w.state.load() != StateInitialized {
		w.mu.Unlock()
		return 0, ErrWalletNotInitialized
	}

	txID, events, req, err := makeWithdrawDepositRequest(w, ids, fee)
	if err != nil {
		w.mu.Unlock()
		return 0, err
	}
	events = append(events, w.emitBalanceEventsLocked()...)
	w.mu.Unlock()

	w.drain(events)
	w.dispatchChain(req)
	return txID, nil
}

// CancelTransaction always fails: this wallet does not model cancellation
// of an in-flight send, per spec.md §4.1/§7.
func (w *Wallet) CancelTransaction(id txcache.TransactionID) error {
	return ErrWalletTxCancelImpossible
}

// EstimateFee suggests a flat fee for a payment to transfers, computed from
// feeRatePerKb over the account's currently unlocked outputs. Callers still
// choose the actual fee passed to SendTransaction; this just gives them a
// number grounded in the account's own UTXO set.
func (w *Wallet) EstimateFee(transfers []txTransfer, feeRatePerKb btcutil.Amount) (btcutil.Amount, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state.load() != StateInitialized {
		return 0, ErrWalletNotInitialized
	}

	outputs := w.subscription.Container().Outputs(chainsync.IncludeTypeKey | chainsync.IncludeKeyUnlocked)
	txOuts := make([]*wire.TxOut, 0, len(transfers))
	for _, tr := range transfers {
		txOuts = append(txOuts, &wire.TxOut{Value: int64(tr.Amount), PkScript: tr.PkScript})
	}
	changeScript := w.changeScript()

	return txbuild.EstimateFee(outputs, txOuts, len(changeScript), feeRatePerKb), nil
}

// dispatchChain runs req on a background worker, then walks the chain of
// follow-up requests its callback returns, exactly as spec.md §4.4
// describes: acquire mutex, run callback, release, drain, perform next.
func (w *Wallet) dispatchChain(req *Request) {
	if req == nil {
		return
	}
	w.async.spawn(func() {
		for req != nil {
			err := req.run(w.node)

			w.mu.Lock()
			events, next, cbErr := req.callback(w)
			if cbErr == nil {
				events = append(events, w.emitBalanceEventsLocked()...)
			}
			w.mu.Unlock()

			w.drain(events)

			if err != nil || cbErr != nil {
				return
			}
			req = next
		}
	})
}

// TransfersObserver implementation — the façade itself is registered with
// the synchroniser's SubscriptionHandle as the account's observer.

func (w *Wallet) OnTransactionUpdated(hash chainhash.Hash) {
	if w.isStopping.get() {
		return
	}

	w.mu.Lock()
	info, amountIn, amountOut, ok := w.subscription.Container().TransactionInformation(hash)
	if !ok {
		w.mu.Unlock()
		return
	}
	net := amountOut - amountIn

	cacheEvents := w.cache.OnTransactionUpdated(info, net, nil, nil)
	events := cacheEventsToWalletEvents(cacheEvents)
	events = append(events, w.emitBalanceEventsLocked()...)
	w.mu.Unlock()

	w.drain(events)
}

func (w *Wallet) OnTransactionDeleted(hash chainhash.Hash) {
	if w.isStopping.get() {
		return
	}

	w.mu.Lock()
	cacheEvents, ok := w.cache.OnTransactionDeleted(hash)
	if !ok {
		w.mu.Unlock()
		return
	}
	events := cacheEventsToWalletEvents(cacheEvents)
	events = append(events, w.emitBalanceEventsLocked()...)
	w.mu.Unlock()

	w.drain(events)
}

func (w *Wallet) OnTransfersLocked(outs []chainsync.TransactionOutputInformation) {
	if w.isStopping.get() {
		return
	}
	w.mu.Lock()
	ids := w.cache.LockDeposits(outs)
	var events []event
	if len(ids) > 0 {
		events = append(events, depositsUpdatedEvent{ids: ids})
	}
	events = append(events, w.emitBalanceEventsLocked()...)
	w.mu.Unlock()

	w.drain(events)
}

func (w *Wallet) OnTransfersUnlocked(outs []chainsync.TransactionOutputInformation) {
	if w.isStopping.get() {
		return
	}
	w.mu.Lock()
	ids := w.cache.UnlockDeposits(outs)
	var events []event
	if len(ids) > 0 {
		events = append(events, depositsUpdatedEvent{ids: ids})
	}
	events = append(events, w.emitBalanceEventsLocked()...)
	w.mu.Unlock()

	w.drain(events)
}

// ProgressObserver implementation.

func (w *Wallet) SynchronizationProgressUpdated(current, total uint32) {
	if w.isStopping.get() {
		return
	}
	w.drain(w.sweepOutdatedTransactions())
	w.drain([]event{syncProgressEvent{current: current, total: total}})
}

func (w *Wallet) SynchronizationCompleted(err error) {
	if w.isStopping.get() {
		return
	}
	if errors.Is(err, chainsync.ErrInterrupted) {
		return
	}
	w.drain(w.sweepOutdatedTransactions())
	w.drain([]event{syncCompletedEvent{err: err}})
}

// sweepOutdatedTransactions reaps unconfirmed transactions past their TTL
// or mempool live-time window and recomputes balances, mirroring the
// original's deleteOutdatedUnconfirmedTransactions call on every sync
// progress tick and completion. GetBlockCount is called outside w.mu,
// matching the rule that the façade mutex is never held across a call
// into a collaborator.
func (w *Wallet) sweepOutdatedTransactions() []event {
	height, err := w.node.GetBlockCount()
	if err != nil {
		log.Warnf("sweep outdated transactions: get block count: %v", err)
		return nil
	}

	w.mu.Lock()
	if w.state.load() != StateInitialized {
		w.mu.Unlock()
		return nil
	}

	outdated := w.cache.DeleteOutdatedTransactions(height, w.currency)
	events := make([]event, 0, len(outdated)+4)
	for _, id := range outdated {
		events = append(events, transactionUpdatedEvent{id: id})
	}
	events = append(events, w.emitBalanceEventsLocked()...)
	w.mu.Unlock()

	return events
}

// accessor passthroughs onto the cache, restoring operations present in
// the original wallet surface but dropped by the distillation.

func (w *Wallet) GetTransactionCount() int                { return w.cache.GetTransactionCount() }
func (w *Wallet) GetTransferCount() int                   { return w.cache.GetTransferCount() }
func (w *Wallet) GetDepositCount() int                    { return w.cache.GetDepositCount() }
func (w *Wallet) GetTransaction(id txcache.TransactionID) (txcache.Transaction, error) {
	return w.cache.GetTransaction(id)
}
func (w *Wallet) GetTransactionByHash(hash chainhash.Hash) (txcache.Transaction, error) {
	return w.cache.GetTransactionByHash(hash)
}
func (w *Wallet) GetTransfer(id txcache.TransferID) (txcache.Transfer, error) {
	return w.cache.GetTransfer(id)
}
func (w *Wallet) GetDeposit(id txcache.DepositID) (txcache.Deposit, error) {
	return w.cache.GetDeposit(id)
}
func (w *Wallet) FindTransactionByTransferID(id txcache.TransferID) (txcache.Transaction, error) {
	return w.cache.FindTransactionByTransferID(id)
}
func (w *Wallet) GetTransactionsByPaymentIDs(ids []txcache.PaymentID) []txcache.PaymentTransactions {
	return w.cache.GetTransactionsByPaymentIDs(ids)
}
