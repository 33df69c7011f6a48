// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package exc

import "sync"

// Reporter collects the exceptions raised while loading font metrics. A
// single parse stops at its first exception, but a load covers many files
// and the reporter keeps the failure of each one so they can be shown
// together. Codes registered as non-fatal are recorded without aborting the
// caller.
type Reporter interface {
	// Report records the given exception. A non-nil return value means the
	// exception is fatal and the caller must stop.
	Report(Exception) Exception
	// Reported returns every recorded exception in reporting order.
	Reported() []Exception
}

// NewReporter returns a Reporter that is safe for concurrent use.
func NewReporter(nonFatal []string) Reporter {
	nf := make(map[string]bool, len(defaultNonFatal)+len(nonFatal))
	for k := range defaultNonFatal {
		nf[k] = true
	}
	for _, k := range nonFatal {
		nf[k] = true
	}
	return &reporterLock{
		Reporter: &reporter{
			nonFatal: nf,
		},
		lock: &sync.Mutex{},
	}
}

type reporter struct {
	reported []Exception
	nonFatal map[string]bool
}

func (r *reporter) Report(e Exception) Exception {
	r.reported = append(r.reported, e)
	if r.nonFatal[e.Code()] {
		return nil
	}
	return e
}

func (r *reporter) Reported() []Exception {
	out := make([]Exception, len(r.reported))
	copy(out, r.reported)
	return out
}

type reporterLock struct {
	Reporter
	lock sync.Locker
}

func (r *reporterLock) Report(e Exception) Exception {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.Reporter.Report(e)
}

func (r *reporterLock) Reported() []Exception {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.Reporter.Reported()
}

// NewScopedReporter returns a Reporter that records only the exceptions
// reported through it and forwards each one to parent. The parent decides
// whether an exception is fatal.
func NewScopedReporter(parent Reporter) Reporter {
	return &reporterLock{
		Reporter: &scopedReporter{parent: parent},
		lock:     &sync.Mutex{},
	}
}

type scopedReporter struct {
	parent   Reporter
	reported []Exception
}

func (r *scopedReporter) Report(e Exception) Exception {
	r.reported = append(r.reported, e)
	return r.parent.Report(e)
}

func (r *scopedReporter) Reported() []Exception {
	out := make([]Exception, len(r.reported))
	copy(out, r.reported)
	return out
}
