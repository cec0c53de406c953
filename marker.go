package kmlnorm

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tsawler/kmlnorm/xmltree"
)

// DirectoryKey is the entry read by ReadDirectoryMarker.
const DirectoryKey = "job_directory"

// ErrMarkerNotFound is returned by ReadMarker when the file has no entry
// with the requested key.
var ErrMarkerNotFound = errors.New("kmlnorm: marker entry not found")

// ReadDirectoryMarker returns the job_directory entry of a properties file,
// or "" when the file is missing, unreadable or has no such entry.
func ReadDirectoryMarker(path string) string {
	v, _ := ReadMarker(path, DirectoryKey)
	return v
}

// ReadMarker looks up key in an XML properties file of the form
//
//	<properties>
//	  <entry key="job_directory" value="/data/jobs/42"/>
//	</properties>
//
// Element and key names are matched ignoring case. An entry without a value
// attribute yields its text content.
func ReadMarker(path, key string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrIO, err)
	}

	root, err := xmltree.ParseBytes(data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}

	for _, entry := range root.Children() {
		if !entry.Is("entry") || !strings.EqualFold(entry.AttrValue("key"), key) {
			continue
		}
		if v, ok := entry.Attr("value"); ok {
			return v, nil
		}
		return entry.Text(), nil
	}

	return "", fmt.Errorf("%w: %q in %s", ErrMarkerNotFound, key, path)
}
