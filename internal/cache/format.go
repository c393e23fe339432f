package cache

import (
	"encoding/binary"
	"fmt"
	"io"
)

// globalMagic opens every cache entry file, mirroring the \0diss sentinel in
// original_source/src/disson/cache/file.rs. A file that doesn't start with
// this is not one of ours and Clean must never touch it.
var globalMagic = [5]byte{0x00, 'd', 'i', 's', 's'}

// formatVersion is written as a length-prefixed ASCII string after the
// magic. Bumping it invalidates every existing cache entry on next open.
const formatVersion = "1"

// writeHeader writes the magic + version preamble that opens every entry
// file.
func writeHeader(w io.Writer) error {
	if _, err := w.Write(globalMagic[:]); err != nil {
		return err
	}
	if _, err := w.Write([]byte{byte(len(formatVersion))}); err != nil {
		return err
	}
	_, err := io.WriteString(w, formatVersion)
	return err
}

// readHeader validates the magic + version preamble, returning the number
// of header bytes consumed.
func readHeader(r io.Reader) (int64, error) {
	var magic [5]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return 0, fmt.Errorf("cache: reading magic: %w", err)
	}
	if magic != globalMagic {
		return 0, fmt.Errorf("cache: %w", ErrNotACacheFile)
	}
	var vlen [1]byte
	if _, err := io.ReadFull(r, vlen[:]); err != nil {
		return 0, fmt.Errorf("cache: reading version length: %w", err)
	}
	version := make([]byte, vlen[0])
	if _, err := io.ReadFull(r, version); err != nil {
		return 0, fmt.Errorf("cache: reading version: %w", err)
	}
	if string(version) != formatVersion {
		return 0, fmt.Errorf("cache: %w: file has version %q, runtime has %q", ErrVersionMismatch, version, formatVersion)
	}
	return int64(5 + 1 + len(version)), nil
}

// ErrNotACacheFile is returned when a file's magic bytes don't match.
var ErrNotACacheFile = fmt.Errorf("not a cache entry file")

// ErrVersionMismatch is returned when a file's format version doesn't match
// the runtime's. Entries at a stale version are treated as empty rather than
// as corrupt: opening the entry resets the file to a fresh header, and the
// driver recomputes.
var ErrVersionMismatch = fmt.Errorf("cache format version mismatch")

// putUvarint encodes a uint32 using the same variable-width integer scheme
// as encoding/binary's Uvarint, matching the spec's requirement that key
// integers (unlike the fixed-width record stream) use variable-width
// encoding.
func putUvarint(w io.Writer, v uint32) error {
	var buf [binary.MaxVarintLen32]byte
	n := binary.PutUvarint(buf[:], uint64(v))
	_, err := w.Write(buf[:n])
	return err
}

func readUvarint(r io.ByteReader) (uint32, error) {
	v, err := binary.ReadUvarint(r)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

func putUint32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

