// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package frontend ties loading, allocation and parsing together into parse
// sessions, and caches the sessions of repeated in-memory sources.
package frontend

import (
	"sync/atomic"

	"github.com/ethereum/go-ethereum/log"
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/crypto/sha3"

	"github.com/probechain/cinterp/internal/config"
	"github.com/probechain/cinterp/internal/loader"
	"github.com/probechain/cinterp/lang/arena"
	"github.com/probechain/cinterp/lang/ast"
	"github.com/probechain/cinterp/lang/parser"
)

// Result is one parse session: the source, the arena backing the tree and
// the outcome. Program holds every statement parsed before Err, if any.
type Result struct {
	Path    string
	Source  []byte
	Program *ast.List
	Err     error

	arena *arena.Arena
	file  *loader.File
}

// Used returns the number of arena bytes the parse consumed.
func (r *Result) Used() uint64 { return r.arena.Used() }

// Release frees the arena and unmaps the source. Program and Source must not
// be used afterwards.
func (r *Result) Release() {
	r.arena.Release()
	if r.file != nil {
		if err := r.file.Close(); err != nil {
			log.Warn("Failed to unmap source", "path", r.Path, "err", err)
		}
	}
	r.Program, r.Source = nil, nil
}

// Frontend parses sources under one configuration. It is safe for
// concurrent use; each parse gets its own arena.
type Frontend struct {
	hits, misses uint64 // accessed atomically, kept first for alignment

	limit uint64
	cache *lru.Cache
}

// New creates a frontend whose parses are bounded by cfg.Parser.ArenaLimit
// and whose cache holds cfg.Frontend.CacheSize sources.
func New(cfg config.Config) (*Frontend, error) {
	cache, err := lru.NewWithEvict(cfg.Frontend.CacheSize, func(key, value interface{}) {
		res := value.(*Result)
		log.Trace("Evicting cached parse", "path", res.Path, "used", res.Used())
		res.Release()
	})
	if err != nil {
		return nil, err
	}
	return &Frontend{limit: cfg.Parser.ArenaLimit, cache: cache}, nil
}

// ParseFile loads and parses the file at path. The caller owns the result
// and must Release it. A non-nil error means the file could not be loaded;
// parse failures are reported in Result.Err.
func (f *Frontend) ParseFile(path string) (*Result, error) {
	file, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	res := f.parse(file.Path, file.Contents)
	res.file = file
	return res, nil
}

// ParseSource parses src, reusing the session of an identical earlier
// source when it is still cached. The result belongs to the cache and must
// not be released by the caller; it stays valid until Close or until it is
// evicted.
func (f *Frontend) ParseSource(name string, src []byte) *Result {
	key := sha3.Sum256(src)
	if cached, ok := f.cache.Get(key); ok {
		atomic.AddUint64(&f.hits, 1)
		return cached.(*Result)
	}
	atomic.AddUint64(&f.misses, 1)

	res := f.parse(name, append([]byte(nil), src...))
	f.cache.Add(key, res)
	return res
}

// Stats returns the cache hit and miss counts.
func (f *Frontend) Stats() (hits, misses uint64) {
	return atomic.LoadUint64(&f.hits), atomic.LoadUint64(&f.misses)
}

// Close releases every cached session.
func (f *Frontend) Close() {
	f.cache.Purge()
}

func (f *Frontend) parse(name string, src []byte) *Result {
	a := arena.New(f.limit)
	prog, err := parser.Parse(a, src)
	if err != nil {
		log.Debug("Parse failed", "path", name, "err", err)
	} else {
		log.Debug("Parsed source", "path", name, "statements", prog.Len(), "used", a.Used())
	}
	return &Result{Path: name, Source: src, Program: prog, Err: err, arena: a}
}
