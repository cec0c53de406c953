package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/tsawler/kmlnorm/config"
	"github.com/tsawler/kmlnorm/format"
	"github.com/tsawler/kmlnorm/kmz"
	"github.com/tsawler/kmlnorm/xmltree"
)

// Load errors. Markup errors are reported as xmltree.ErrParse.
var (
	ErrIO                = errors.New("kml: input unavailable")
	ErrMalformedDocument = errors.New("kml: malformed document")
)

// Loader reads KML and KMZ inputs into a File.
type Loader struct {
	cfg    config.Config
	logger *zap.SugaredLogger
}

// NewLoader creates a loader. A nil logger discards output.
func NewLoader(cfg config.Config, logger *zap.SugaredLogger) *Loader {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Loader{cfg: cfg, logger: logger}
}

// Parse builds a File from an in-memory KML document. A document that
// redirects through a NetworkLink is returned as is, with Link set.
func (l *Loader) Parse(data []byte) (*File, error) {
	root, err := xmltree.ParseBytes(data)
	if err != nil {
		return nil, err
	}

	docNode := root.Child("Document")
	if docNode == nil {
		return nil, fmt.Errorf("%w: no Document element under <%s>", ErrMalformedDocument, root.Name())
	}

	return &File{
		Namespace: root.AttrValue("xmlns"),
		Document:  buildDocument(docNode, l.cfg.DefaultFolderName),
	}, nil
}

// Open loads the KML or KMZ file at path.
//
// When the document's only purpose is to point elsewhere through a
// NetworkLink, the link target is loaded instead: for a KMZ it names another
// member of the same archive, for a plain KML a file relative to the input's
// directory. Every hop starts from the original input; visiting the same
// target twice, or exceeding MaxRedirects hops, is an ErrMalformedDocument.
func (l *Loader) Open(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrIO, path)
	}

	kind := detect(path)
	target := path
	if kind == format.KMZ {
		target = l.cfg.InnerDocument
	}

	visited := make(map[string]bool)
	for hops := 0; ; hops++ {
		key := targetKey(kind, target)
		if visited[key] {
			return nil, fmt.Errorf("%w: redirect cycle at %q", ErrMalformedDocument, target)
		}
		visited[key] = true

		data, err := l.read(kind, path, target)
		if err != nil {
			return nil, err
		}

		f, err := l.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", target, err)
		}

		link := f.Document.Link
		if link == "" {
			return f, nil
		}
		if hops >= l.cfg.MaxRedirects {
			return nil, fmt.Errorf("%w: redirect limit (%d) reached at %q", ErrMalformedDocument, l.cfg.MaxRedirects, link)
		}

		next := redirectTarget(kind, path, link)
		l.logger.Debugw("following network link", "input", path, "from", target, "to", next)
		target = next
	}
}

// detect picks the input format from the extension, falling back to the
// file's content for unfamiliar extensions.
func detect(path string) format.Format {
	if f := format.Detect(path); f != format.Unknown {
		return f
	}

	fh, err := os.Open(path)
	if err != nil {
		return format.KML
	}
	defer fh.Close()

	info, err := fh.Stat()
	if err != nil {
		return format.KML
	}
	if f, err := format.DetectFromReader(fh, info.Size()); err == nil && f == format.KMZ {
		return format.KMZ
	}
	return format.KML
}

func (l *Loader) read(kind format.Format, input, target string) ([]byte, error) {
	if kind == format.KMZ {
		data, err := kmz.ReadMember(input, target)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrIO, err)
		}
		l.logger.Debugw("extracted archive member", "archive", input, "member", target, "bytes", len(data))
		return data, nil
	}

	data, err := os.ReadFile(target)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return data, nil
}

func redirectTarget(kind format.Format, input, link string) string {
	if kind == format.KMZ || filepath.IsAbs(link) {
		return link
	}
	return filepath.Join(filepath.Dir(input), filepath.FromSlash(link))
}

// targetKey normalizes a target for cycle detection. Archive members are
// matched ignoring case, the same way they are looked up.
func targetKey(kind format.Format, target string) string {
	if kind == format.KMZ {
		return strings.ToLower(target)
	}
	return filepath.Clean(target)
}
