package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/prometheus/client_golang/prometheus"
)

// BadgerEngine is the KVEngine behind a data directory.
type BadgerEngine struct {
	db   *badger.DB
	opts BadgerOptions
	log  *slog.Logger

	gcRuns   atomic.Uint64
	closed   atomic.Bool
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewBadgerEngine opens the database and, for on-disk databases with a
// positive GCInterval, starts value-log collection in the background.
func NewBadgerEngine(opts BadgerOptions, log *slog.Logger) (*BadgerEngine, error) {
	if log == nil {
		log = slog.Default()
	}

	var bopts badger.Options
	switch {
	case opts.InMemory:
		bopts = badger.DefaultOptions("").WithInMemory(true)
	case opts.Dir != "":
		bopts = badger.DefaultOptions(opts.Dir).WithSyncWrites(opts.SyncWrites)
	default:
		return nil, errors.New("storage: badger needs a directory")
	}
	bopts = bopts.WithLogger(badgerLog{log})

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("storage: open badger: %w", err)
	}

	e := &BadgerEngine{
		db:   db,
		opts: opts,
		log:  log,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	if opts.InMemory || opts.GCInterval <= 0 {
		close(e.done)
	} else {
		go e.collect(opts.GCInterval)
	}

	log.Info("badger opened", "dir", opts.Dir, "in_memory", opts.InMemory, "gc_interval", opts.GCInterval)
	return e, nil
}

func (e *BadgerEngine) Get(_ context.Context, key []byte) ([]byte, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}
	var out []byte
	err := e.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrKeyNotFound
		} else if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	return out, err
}

func (e *BadgerEngine) Put(_ context.Context, key, value []byte) error {
	if e.closed.Load() {
		return ErrClosed
	}
	return e.db.Update(func(txn *badger.Txn) error { return txn.Set(key, value) })
}

func (e *BadgerEngine) Delete(_ context.Context, key []byte) error {
	if e.closed.Load() {
		return ErrClosed
	}
	return e.db.Update(func(txn *badger.Txn) error { return txn.Delete(key) })
}

func (e *BadgerEngine) Scan(ctx context.Context, prefix []byte, fn func(key, value []byte) error) error {
	if e.closed.Load() {
		return ErrClosed
	}
	return e.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{PrefetchValues: true, PrefetchSize: 64, Prefix: prefix})
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			err := item.Value(func(v []byte) error {
				return fn(item.KeyCopy(nil), v)
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// CollectGarbage rewrites value-log files until badger finds nothing
// worth rewriting, and returns the number of files rewritten.
func (e *BadgerEngine) CollectGarbage(ctx context.Context) (int, error) {
	if e.closed.Load() {
		return 0, ErrClosed
	}
	rewritten := 0
	for ctx.Err() == nil {
		err := e.db.RunValueLogGC(e.opts.DiscardRatio)
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrGCInMemoryMode) {
			break
		}
		if err != nil {
			return rewritten, fmt.Errorf("storage: value log gc: %w", err)
		}
		rewritten++
	}
	e.gcRuns.Add(1)
	return rewritten, nil
}

func (e *BadgerEngine) collect(every time.Duration) {
	defer close(e.done)

	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-e.stop:
			return
		case <-t.C:
		}
		ctx, cancel := context.WithTimeout(context.Background(), every)
		n, err := e.CollectGarbage(ctx)
		cancel()
		if err != nil {
			e.log.Error("badger gc failed", "error", err)
			continue
		}
		e.log.Debug("badger gc", "rewritten", n)
	}
}

// Close stops collection and closes the database. Repeated calls return nil.
func (e *BadgerEngine) Close() error {
	var err error
	e.stopOnce.Do(func() {
		e.closed.Store(true)
		close(e.stop)
		<-e.done
		err = e.db.Close()
		e.log.Info("badger closed")
	})
	return err
}

var (
	badgerLSMDesc = prometheus.NewDesc("yggauth_badger_lsm_size_bytes",
		"Size of the badger LSM tree.", nil, nil)
	badgerVlogDesc = prometheus.NewDesc("yggauth_badger_value_log_size_bytes",
		"Size of the badger value log.", nil, nil)
	badgerGCDesc = prometheus.NewDesc("yggauth_badger_gc_runs_total",
		"Value-log collection passes since start.", nil, nil)
)

// Collector reports database sizes and collection passes.
func (e *BadgerEngine) Collector() prometheus.Collector { return badgerCollector{e} }

type badgerCollector struct{ e *BadgerEngine }

func (c badgerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- badgerLSMDesc
	ch <- badgerVlogDesc
	ch <- badgerGCDesc
}

func (c badgerCollector) Collect(ch chan<- prometheus.Metric) {
	if c.e.closed.Load() {
		return
	}
	lsm, vlog := c.e.db.Size()
	ch <- prometheus.MustNewConstMetric(badgerLSMDesc, prometheus.GaugeValue, float64(lsm))
	ch <- prometheus.MustNewConstMetric(badgerVlogDesc, prometheus.GaugeValue, float64(vlog))
	ch <- prometheus.MustNewConstMetric(badgerGCDesc, prometheus.CounterValue, float64(c.e.gcRuns.Load()))
}

// badgerLog routes badger's printf logging into slog. Badger is chatty at
// info, so info goes to debug.
type badgerLog struct{ l *slog.Logger }

func (b badgerLog) Errorf(f string, a ...any)   { b.l.Error("badger: " + fmt.Sprintf(f, a...)) }
func (b badgerLog) Warningf(f string, a ...any) { b.l.Warn("badger: " + fmt.Sprintf(f, a...)) }
func (b badgerLog) Infof(f string, a ...any)    { b.l.Debug("badger: " + fmt.Sprintf(f, a...)) }
func (b badgerLog) Debugf(f string, a ...any)   { b.l.Debug("badger: " + fmt.Sprintf(f, a...)) }
