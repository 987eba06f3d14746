package snapshot

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rileyhilliard/ncli/internal/entity"
)

const (
	hostStatusBlock    = "hoststatus"
	serviceStatusBlock = "servicestatus"

	// Plugin long output can make single lines very long.
	maxLineBytes = 4 << 20

	ctxCheckEvery = 4096
)

// ReadStatusDat parses the daemon's status.dat. Only hoststatus and
// servicestatus blocks become records; info, programstatus, contactstatus,
// comment and downtime blocks are skipped.
func ReadStatusDat(ctx context.Context, r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var (
		records []Record
		block   string
		attrs   entity.Attributes
		start   int
		lineNo  int
	)

	for scanner.Scan() {
		lineNo++
		if lineNo%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		// Values keep their trailing whitespace; only indentation and a
		// CRLF ending are removed.
		raw := strings.TrimLeft(strings.TrimSuffix(scanner.Text(), "\r"), " \t")
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if block == "" {
			name, ok := strings.CutSuffix(line, "{")
			if !ok {
				return nil, fmt.Errorf("line %d: expected a block header, got %q", lineNo, line)
			}
			block = strings.TrimSpace(name)
			attrs = entity.Attributes{}
			start = lineNo
			continue
		}

		if line == "}" {
			if rec, ok := blockRecord(block, attrs); ok {
				records = append(records, rec)
			}
			block = ""
			attrs = nil
			continue
		}

		key, value, ok := strings.Cut(raw, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: expected key=value inside %s block, got %q", lineNo, block, line)
		}
		attrs[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if block != "" {
		return nil, fmt.Errorf("line %d: %s block is never closed", start, block)
	}

	return records, nil
}

func blockRecord(block string, attrs entity.Attributes) (Record, bool) {
	switch block {
	case hostStatusBlock:
		return Record{Kind: KindHost, Name: attrs["host_name"], Attributes: attrs}, true
	case serviceStatusBlock:
		return Record{
			Kind:       KindService,
			Name:       attrs["service_description"],
			Host:       attrs["host_name"],
			Attributes: attrs,
		}, true
	default:
		return Record{}, false
	}
}
