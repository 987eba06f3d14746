package snapshot

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rileyhilliard/ncli/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_StatusDat(t *testing.T) {
	snap, err := Load(context.Background(), filepath.Join("testdata", "status.dat"), FormatAuto)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("testdata", "status.dat"), snap.Source)
	require.Len(t, snap.Records, 2)

	host := snap.Records[0]
	assert.Equal(t, KindHost, host.Kind)
	assert.Equal(t, "web01", host.Name)
	assert.Empty(t, host.Host)
	assert.Equal(t, "0", host.Attributes["current_state"])
	assert.Equal(t, "rta=0.520000ms;3000.000000;5000.000000;0.000000 pl=0%;80;100;0", host.Attributes["performance_data"])

	svc := snap.Records[1]
	assert.Equal(t, KindService, svc.Kind)
	assert.Equal(t, "HTTP", svc.Name)
	assert.Equal(t, "web01", svc.Host)
	assert.Equal(t, "1", svc.Attributes["problem_has_been_acknowledged"])

	hosts, services := snap.Count()
	assert.Equal(t, 1, hosts)
	assert.Equal(t, 1, services)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.dat"), FormatAuto)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrSnapshot))
	assert.Contains(t, err.Error(), "not found")
}

func TestReadStatusDat_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "unclosed block",
			input: "hoststatus {\n\thost_name=a\n",
			want:  "never closed",
		},
		{
			name:  "stray line outside block",
			input: "host_name=a\n",
			want:  "expected a block header",
		},
		{
			name:  "line without equals",
			input: "hoststatus {\n\tgarbage\n\t}\n",
			want:  "expected key=value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadStatusDat(context.Background(), strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestReadStatusDat_ValueKeepsEquals(t *testing.T) {
	input := "servicestatus {\n\thost_name=db01\n\tservice_description=Load\n\tperformance_data=load1=0.1;5;10;0\n\t}\n"

	records, err := ReadStatusDat(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "load1=0.1;5;10;0", records[0].Attributes["performance_data"])
}

func TestReadStatusDat_ValueKeepsTrailingWhitespace(t *testing.T) {
	input := "hoststatus {\r\n\thost_name=web01\r\n\tplugin_output=PING OK  \t\r\n\tlong_plugin_output= \r\n\t}\r\n"

	records, err := ReadStatusDat(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "web01", records[0].Name)
	assert.Equal(t, "PING OK  \t", records[0].Attributes["plugin_output"])
	assert.Equal(t, " ", records[0].Attributes["long_plugin_output"])
}

func TestReadStatusDat_Cancelled(t *testing.T) {
	var b strings.Builder
	for i := 0; i < ctxCheckEvery; i++ {
		b.WriteString("# filler\n")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ReadStatusDat(ctx, strings.NewReader(b.String()))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRead_JSON(t *testing.T) {
	input := `{
  "hosts": {"web02": {"current_state": "1"}, "web01": {"current_state": "0"}},
  "services": {"web01": {"SSH": {"current_state": "0"}, "HTTP": {"current_state": "2"}}}
}`

	snap, err := Read(context.Background(), strings.NewReader(input), FormatJSON)
	require.NoError(t, err)
	require.Len(t, snap.Records, 4)

	assert.Equal(t, "web01", snap.Records[0].Name)
	assert.Equal(t, "web02", snap.Records[1].Name)
	assert.Equal(t, Record{Kind: KindService, Name: "HTTP", Host: "web01", Attributes: map[string]string{"current_state": "2"}}, snap.Records[2])
	assert.Equal(t, "SSH", snap.Records[3].Name)
}

func TestRead_YAML(t *testing.T) {
	input := `
hosts:
  web01:
    current_state: "0"
services:
  web01:
    HTTP:
      current_state: "2"
      plugin_output: "HTTP CRITICAL"
`
	snap, err := Read(context.Background(), strings.NewReader(input), FormatYAML)
	require.NoError(t, err)
	require.Len(t, snap.Records, 2)
	assert.Equal(t, "HTTP CRITICAL", snap.Records[1].Attributes["plugin_output"])
}

func TestRead_EmptyYAML(t *testing.T) {
	snap, err := Read(context.Background(), strings.NewReader(""), FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, snap.Records)
}

func TestRead_RejectsAuto(t *testing.T) {
	_, err := Read(context.Background(), strings.NewReader(""), FormatAuto)
	assert.Error(t, err)
}

func TestWriteYAML_RoundTrip(t *testing.T) {
	records := []Record{
		{Kind: KindHost, Name: "web01", Attributes: map[string]string{"current_state": "0"}},
		{Kind: KindService, Name: "HTTP", Host: "web01", Attributes: map[string]string{"current_state": "2"}},
		{Kind: KindService, Name: "orphan", Attributes: map[string]string{"current_state": "0"}},
	}

	var buf bytes.Buffer
	hosts, services, err := WriteYAML(&buf, records)
	require.NoError(t, err)
	assert.Equal(t, 1, hosts)
	assert.Equal(t, 1, services, "the hostless service is not written")

	snap, err := Read(context.Background(), &buf, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, records[:2], snap.Records)
}

func TestWriteYAML_CountsCollapsedDuplicates(t *testing.T) {
	records := []Record{
		{Kind: KindHost, Name: "web01", Attributes: map[string]string{"current_state": "0"}},
		{Kind: KindHost, Name: "web01", Attributes: map[string]string{"current_state": "1"}},
		{Kind: KindService, Name: "HTTP", Host: "web01", Attributes: map[string]string{"current_state": "0"}},
		{Kind: KindService, Name: "HTTP", Host: "web01", Attributes: map[string]string{"current_state": "2"}},
		{Kind: KindService, Name: "SSH", Host: "web01", Attributes: map[string]string{"current_state": "0"}},
	}

	var buf bytes.Buffer
	hosts, services, err := WriteYAML(&buf, records)
	require.NoError(t, err)
	assert.Equal(t, 1, hosts)
	assert.Equal(t, 2, services)
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, DetectFormat("/tmp/snap.JSON"))
	assert.Equal(t, FormatYAML, DetectFormat("fixtures/a.yml"))
	assert.Equal(t, FormatYAML, DetectFormat("a.yaml"))
	assert.Equal(t, FormatStatusDat, DetectFormat("/usr/local/nagios/var/status.dat"))
	assert.Equal(t, FormatStatusDat, DetectFormat("status"))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatAuto, f)

	f, err = ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}
