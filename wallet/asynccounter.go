// Copyright (c) 2014 Conformal Systems LLC <info@conformal.com>
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wallet

import "sync"

// asyncContextCounter tracks outstanding background workers — initAndLoad's
// deserialise goroutine, save's serialise goroutine, and every chained
// Request's perform call — so shutdown can block until all of them have
// returned. It is the Go rendering of the original's
// WalletAsyncContextCounter/ContextCounterHolder pair, built directly on
// sync.WaitGroup the way the teacher's own façade tracks its background
// goroutines.
type asyncContextCounter struct {
	wg sync.WaitGroup
}

// add registers one outstanding async context.
func (c *asyncContextCounter) add() {
	c.wg.Add(1)
}

// done marks one outstanding async context as finished.
func (c *asyncContextCounter) done() {
	c.wg.Done()
}

// wait blocks until every outstanding async context has called done.
func (c *asyncContextCounter) wait() {
	c.wg.Wait()
}

// spawn runs fn on its own goroutine, wrapped with add/done bookkeeping.
func (c *asyncContextCounter) spawn(fn func()) {
	c.add()
	go func() {
		defer c.done()
		fn()
	}()
}
