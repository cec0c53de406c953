package source

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tsawler/kmlnorm/config"
	"github.com/tsawler/kmlnorm/xmltree"
)

func placemarkKML(folder string) string {
	return `<kml xmlns="http://www.opengis.net/kml/2.2"><Document><Folder><name>` + folder +
		`</name><Placemark><name>P</name></Placemark></Folder></Document></kml>`
}

func linkKML(href string) string {
	return `<kml><Document><NetworkLink><Link><href>` + href + `</href></Link></NetworkLink></Document></kml>`
}

// createKMZ writes an archive holding the given members, in order.
func createKMZ(t *testing.T, path string, members [][2]string) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create archive: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, m := range members {
		w, err := zw.Create(m[0])
		if err != nil {
			t.Fatalf("failed to create member %s: %v", m[0], err)
		}
		if _, err := w.Write([]byte(m[1])); err != nil {
			t.Fatalf("failed to write member %s: %v", m[0], err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close archive: %v", err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestOpen_KML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.kml")
	writeFile(t, path, placemarkKML("Tracks"))

	f, err := NewLoader(config.Default(), nil).Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if got := f.Document.Folder.Name; got != "Tracks" {
		t.Errorf("Folder.Name = %q, want %q", got, "Tracks")
	}
}

func TestOpen_KMZ(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		members [][2]string
	}{
		{"default member", "in.kmz", [][2]string{{"doc.kml", placemarkKML("Tracks")}}},
		{"member name case", "in.kmz", [][2]string{{"DOC.KML", placemarkKML("Tracks")}}},
		{"extension case", "IN.KMZ", [][2]string{{"doc.kml", placemarkKML("Tracks")}}},
		{"sniffed archive", "in.dat", [][2]string{{"doc.kml", placemarkKML("Tracks")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			createKMZ(t, path, tt.members)

			f, err := NewLoader(config.Default(), nil).Open(path)
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			if got := f.Document.Folder.Name; got != "Tracks" {
				t.Errorf("Folder.Name = %q, want %q", got, "Tracks")
			}
		})
	}
}

func TestOpen_KMZRedirect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "linked.kmz")
	createKMZ(t, path, [][2]string{
		{"doc.kml", linkKML("files/real.kml")},
		{"files/real.kml", placemarkKML("Real")},
	})

	f, err := NewLoader(config.Default(), nil).Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if f.Document.Link != "" {
		t.Errorf("Link = %q, want empty after redirect", f.Document.Link)
	}
	if got := f.Document.Folder.Name; got != "Real" {
		t.Errorf("Folder.Name = %q, want %q", got, "Real")
	}
	if f.Namespace != "http://www.opengis.net/kml/2.2" {
		t.Errorf("Namespace = %q, want the linked document's", f.Namespace)
	}
}

func TestOpen_KMLRedirect(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "index.kml")
	writeFile(t, path, linkKML("sub/real.kml"))
	writeFile(t, filepath.Join(dir, "sub", "real.kml"), placemarkKML("Sibling"))

	f, err := NewLoader(config.Default(), nil).Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if got := f.Document.Folder.Name; got != "Sibling" {
		t.Errorf("Folder.Name = %q, want %q", got, "Sibling")
	}
}

func TestOpen_RedirectErrors(t *testing.T) {
	t.Run("cycle", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cycle.kmz")
		createKMZ(t, path, [][2]string{
			{"doc.kml", linkKML("a.kml")},
			{"a.kml", linkKML("DOC.kml")},
		})

		_, err := NewLoader(config.Default(), nil).Open(path)
		if !errors.Is(err, ErrMalformedDocument) {
			t.Errorf("Open() error = %v, want ErrMalformedDocument", err)
		}
	})

	t.Run("self link", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "self.kml")
		writeFile(t, path, linkKML("self.kml"))

		_, err := NewLoader(config.Default(), nil).Open(path)
		if !errors.Is(err, ErrMalformedDocument) {
			t.Errorf("Open() error = %v, want ErrMalformedDocument", err)
		}
	})

	t.Run("limit", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "chain.kmz")
		createKMZ(t, path, [][2]string{
			{"doc.kml", linkKML("1.kml")},
			{"1.kml", linkKML("2.kml")},
			{"2.kml", placemarkKML("End")},
		})

		cfg := config.Default()
		cfg.MaxRedirects = 1
		_, err := NewLoader(cfg, nil).Open(path)
		if !errors.Is(err, ErrMalformedDocument) {
			t.Errorf("Open() error = %v, want ErrMalformedDocument", err)
		}

		cfg.MaxRedirects = 2
		if _, err := NewLoader(cfg, nil).Open(path); err != nil {
			t.Errorf("Open() with two hops allowed error = %v", err)
		}
	})

	t.Run("missing target", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "dangling.kmz")
		createKMZ(t, path, [][2]string{{"doc.kml", linkKML("gone.kml")}})

		_, err := NewLoader(config.Default(), nil).Open(path)
		if !errors.Is(err, ErrIO) {
			t.Errorf("Open() error = %v, want ErrIO", err)
		}
	})
}

func TestOpen_Errors(t *testing.T) {
	dir := t.TempDir()

	missingMember := filepath.Join(dir, "nodoc.kmz")
	createKMZ(t, missingMember, [][2]string{{"other.kml", placemarkKML("X")}})

	broken := filepath.Join(dir, "broken.kml")
	writeFile(t, broken, `<kml><Document><Placemark></Document></kml>`)

	corrupt := filepath.Join(dir, "corrupt.kmz")
	writeFile(t, corrupt, "PK\x03\x04 definitely not an archive")

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"missing file", filepath.Join(dir, "nope.kml"), ErrIO},
		{"directory", dir, ErrIO},
		{"missing member", missingMember, ErrIO},
		{"corrupt archive", corrupt, ErrIO},
		{"malformed markup", broken, xmltree.ErrParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader(config.Default(), nil).Open(tt.path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Open() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
