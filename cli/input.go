package main

import (
	"fmt"
	"io"
	"os"

	"github.com/opal-lang/idfilter/pkgs/errors"
)

// getInputReader handles the 2 modes of input:
// 1. Standard input, when path is "-" (also the default when no file is given)
// 2. File input
func getInputReader(path string, stdin io.Reader) (io.Reader, func() error, error) {
	if path == "-" {
		return stdin, func() error { return nil }, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.NewInputError(path, err)
	}

	closeFunc := func() error {
		return f.Close()
	}

	return f, closeFunc, nil
}

// readInput loads the whole input into memory before scanning starts.
func readInput(path string, stdin io.Reader) ([]byte, error) {
	reader, closeFunc, err := getInputReader(path, stdin)
	if err != nil {
		return nil, err
	}
	defer func() { _ = closeFunc() }()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.NewInputError(path, fmt.Errorf("read failed: %w", err))
	}
	return data, nil
}
