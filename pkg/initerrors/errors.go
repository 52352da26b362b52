package initerrors

import (
	"errors"
	"fmt"
)

var (
	// ErrWrite indicates an error occurred while writing.
	ErrWrite = errors.New("write")

	// ErrWriteFile indicates an error occurred while writing a file.
	ErrWriteFile = fmt.Errorf("file: %w", ErrWrite)

	// ErrReadFile indicates an error occurred while reading a file.
	ErrReadFile = errors.New("read file")

	// ErrBadOption indicates an unrecognized or malformed render option.
	ErrBadOption = errors.New("bad option")

	// ErrFileNotFound indicates a file wasn't found in the specified path.
	ErrFileNotFound = errors.New("file not found")

	// ErrInvalidFormat indicates an unexpected or invalid format was encountered.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrParse indicates source text could not be parsed.
	ErrParse = errors.New("parse")

	// ErrNotAPackage indicates a path does not contain a Python package.
	ErrNotAPackage = errors.New("not a python package")
)
