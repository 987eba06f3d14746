package snapshot

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/rileyhilliard/ncli/internal/entity"
	"gopkg.in/yaml.v3"
)

// document is the JSON/YAML snapshot shape.
type document struct {
	Hosts    map[string]map[string]string            `json:"hosts" yaml:"hosts"`
	Services map[string]map[string]map[string]string `json:"services" yaml:"services"`
}

func readJSON(r io.Reader) ([]Record, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	return doc.records(), nil
}

func readYAML(r io.Reader) ([]Record, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	return doc.records(), nil
}

// records flattens the document with hosts first, each group sorted by
// name so output does not depend on map order.
func (d document) records() []Record {
	var out []Record

	for _, name := range sortedKeys(d.Hosts) {
		out = append(out, Record{Kind: KindHost, Name: name, Attributes: entity.Attributes(d.Hosts[name])})
	}

	for _, host := range sortedKeys(d.Services) {
		services := d.Services[host]
		for _, name := range sortedKeys(services) {
			out = append(out, Record{
				Kind:       KindService,
				Name:       name,
				Host:       host,
				Attributes: entity.Attributes(services[name]),
			})
		}
	}

	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WriteYAML encodes records in the YAML snapshot shape and returns how many
// hosts and services were written. Services without a host are dropped
// since the shape keys them by host, and duplicate names collapse to the
// last record.
func WriteYAML(w io.Writer, records []Record) (hosts, services int, err error) {
	doc := document{
		Hosts:    map[string]map[string]string{},
		Services: map[string]map[string]map[string]string{},
	}
	for _, rec := range records {
		switch rec.Kind {
		case KindHost:
			doc.Hosts[rec.Name] = rec.Attributes
		case KindService:
			if rec.Host == "" {
				continue
			}
			if doc.Services[rec.Host] == nil {
				doc.Services[rec.Host] = map[string]map[string]string{}
			}
			doc.Services[rec.Host][rec.Name] = rec.Attributes
		}
	}

	for _, byName := range doc.Services {
		services += len(byName)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return 0, 0, err
	}
	if err := enc.Close(); err != nil {
		return 0, 0, err
	}
	return len(doc.Hosts), services, nil
}
