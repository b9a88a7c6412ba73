// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package loader reads source files into memory for parsing.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/ethereum/go-ethereum/log"
)

// Stdin is the path that makes Load read standard input.
const Stdin = "-"

// ErrDirectory is returned when the path names a directory.
var ErrDirectory = errors.New("loader: is a directory")

// File is a loaded source file. Regular files are mapped read-only; the
// mapping stays valid until Close, so Contents (and every view cut from it)
// must not be used afterwards.
type File struct {
	Path     string
	Contents []byte
	Size     int64

	f   *os.File
	mem mmap.MMap
}

// Load maps the file at path. Empty files and standard input are read into
// ordinary memory instead.
func Load(path string) (*File, error) {
	if path == Stdin {
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("loader: reading stdin: %w", err)
		}
		return FromBytes("<stdin>", src), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("loader: %w", err)
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%w: %s", ErrDirectory, path)
	}
	if info.Size() == 0 {
		f.Close()
		return &File{Path: path}, nil
	}

	mem, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("loader: mapping %s: %w", path, err)
	}
	log.Debug("Mapped source file", "path", path, "size", info.Size())
	return &File{
		Path:     path,
		Contents: mem,
		Size:     info.Size(),
		f:        f,
		mem:      mem,
	}, nil
}

// FromBytes wraps an in-memory buffer as a File. Close is a no-op for it.
func FromBytes(path string, src []byte) *File {
	return &File{Path: path, Contents: src, Size: int64(len(src))}
}

// Close unmaps the file. It is safe to call more than once.
func (f *File) Close() error {
	var err error
	if f.mem != nil {
		err = f.mem.Unmap()
		f.mem = nil
	}
	if f.f != nil {
		if cerr := f.f.Close(); err == nil {
			err = cerr
		}
		f.f = nil
	}
	f.Contents = nil
	return err
}
