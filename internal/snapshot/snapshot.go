// Package snapshot reads point-in-time monitoring state from disk into raw
// attribute records.
//
// Three encodings are understood: the Nagios status.dat format written by
// the daemon itself, and a JSON or YAML document of the shape
//
//	hosts:
//	  <host>: {<attr>: <value>, ...}
//	services:
//	  <host>:
//	    <service>: {<attr>: <value>, ...}
//
// Records are returned as the feed delivered them; nothing here validates
// required fields. That is the entity package's job.
package snapshot

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/ncli/internal/entity"
	"github.com/rileyhilliard/ncli/internal/errors"
)

// Kind says whether a record describes a host or a service.
type Kind int

const (
	KindHost Kind = iota
	KindService
)

func (k Kind) String() string {
	if k == KindService {
		return "service"
	}
	return "host"
}

// Record is one raw host or service entry.
type Record struct {
	Kind Kind
	Name string
	// Host is the owning host's name for services, "" for hosts.
	Host       string
	Attributes entity.Attributes
}

// Snapshot is the full set of records read from one source.
type Snapshot struct {
	Source  string
	Records []Record
}

// Format names an on-disk encoding.
type Format string

const (
	FormatAuto      Format = "auto"
	FormatStatusDat Format = "statusdat"
	FormatJSON      Format = "json"
	FormatYAML      Format = "yaml"
)

// Formats lists every accepted format name.
func Formats() []Format {
	return []Format{FormatAuto, FormatStatusDat, FormatJSON, FormatYAML}
}

// ParseFormat validates a format name. An empty name means auto.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatAuto, nil
	}
	for _, f := range Formats() {
		if string(f) == strings.ToLower(name) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown snapshot format %q", name)
}

// DetectFormat picks a format from the file extension; anything that is
// not JSON or YAML is read as status.dat.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatStatusDat
	}
}

// Load reads the snapshot at path.
func Load(ctx context.Context, path string, format Format) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrSnapshot,
				"Status snapshot not found: "+path,
				"Point --status-file at the daemon's status.dat (often /usr/local/nagios/var/status.dat).")
		}
		return nil, errors.WrapWithCode(err, errors.ErrSnapshot,
			"Couldn't open the status snapshot",
			"Check that the file exists and is readable by this user.")
	}
	defer f.Close()

	if format == "" || format == FormatAuto {
		format = DetectFormat(path)
	}

	snap, err := Read(ctx, f, format)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSnapshot,
			fmt.Sprintf("Couldn't parse %s as %s", path, format),
			"Pass --format if the file extension doesn't match its contents.")
	}
	snap.Source = path
	return snap, nil
}

// Read decodes a snapshot from r. format must not be FormatAuto.
func Read(ctx context.Context, r io.Reader, format Format) (*Snapshot, error) {
	var (
		records []Record
		err     error
	)

	switch format {
	case FormatStatusDat:
		records, err = ReadStatusDat(ctx, r)
	case FormatJSON:
		records, err = readJSON(r)
	case FormatYAML:
		records, err = readYAML(r)
	default:
		return nil, fmt.Errorf("cannot read format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return &Snapshot{Records: records}, nil
}

// Count returns the number of host and service records.
func (s *Snapshot) Count() (hosts, services int) {
	for _, rec := range s.Records {
		if rec.Kind == KindHost {
			hosts++
		} else {
			services++
		}
	}
	return hosts, services
}
