// Package kmz reads and writes KMZ archives: zip containers holding a KML
// document, conventionally named doc.kml.
package kmz

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/flate"
)

// DefaultMember is the name of the KML document inside a KMZ archive.
const DefaultMember = "doc.kml"

// Archive-related errors.
var (
	ErrInvalidArchive = errors.New("kmz: invalid or corrupted archive")
	ErrMemberNotFound = errors.New("kmz: member not found")
)

// ReadMember opens the archive at path and returns the contents of the
// member called name. Member names are compared ignoring case.
func ReadMember(path, name string) ([]byte, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}
	defer zr.Close()

	return readMember(&zr.Reader, name)
}

// ReadMemberFrom is ReadMember over an already opened archive.
func ReadMemberFrom(ra io.ReaderAt, size int64, name string) ([]byte, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}
	return readMember(zr, name)
}

func readMember(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if !strings.EqualFold(f.Name, name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrInvalidArchive, f.Name, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrMemberNotFound, name)
}

// Members returns the names of all files in the archive at path.
func Members(path string) ([]string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}
	defer zr.Close()

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names, nil
}

// Write creates (or truncates) the archive at path holding data under name.
// level is a flate compression level (-1 for the default, 0-9 otherwise).
func Write(path, name string, data []byte, level int) error {
	var buf bytes.Buffer
	if err := WriteTo(&buf, name, data, level); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// WriteTo writes a single-member archive to w.
func WriteTo(w io.Writer, name string, data []byte, level int) error {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})

	fw, err := zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: time.Now().UTC(),
	})
	if err != nil {
		zw.Close()
		return fmt.Errorf("creating %s: %w", name, err)
	}
	if _, err := fw.Write(data); err != nil {
		zw.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}

	return zw.Close()
}
