// Package testutils builds TCX fixtures for tests.
package testutils

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// ActivityExtensionNS mirrors the namespace the scaler matches on.
const ActivityExtensionNS = "http://www.garmin.com/xmlschemas/ActivityExtension/v2"

// TCXOptions configures a generated TCX document.
type TCXOptions struct {
	// Prefix is the namespace prefix bound to the activity extension
	// schema. Empty means the TPX element binds it as its default
	// namespace instead.
	Prefix string

	// Sport is the Activity Sport attribute. Defaults to "Biking".
	Sport string

	// Watts holds one entry per trackpoint, written verbatim as the
	// Watts element text. Non-numeric entries are valid here; that is
	// how tests produce corrupt samples.
	Watts []string

	// BarePoints appends this many trackpoints that carry no power
	// extension at all.
	BarePoints int
}

// 🧪 TCXContent renders a complete TCX document for the given options.
func TCXContent(opts TCXOptions) string {
	if opts.Sport == "" {
		opts.Sport = "Biking"
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<TrainingCenterDatabase xmlns="http://www.garmin.com/xmlschemas/TrainingCenterDatabase/v2"`)
	if opts.Prefix != "" {
		fmt.Fprintf(&b, ` xmlns:%s=%q`, opts.Prefix, ActivityExtensionNS)
	}
	b.WriteString(">\n")
	b.WriteString("  <Activities>\n")
	fmt.Fprintf(&b, "    <Activity Sport=%q>\n", opts.Sport)
	b.WriteString("      <Id>2024-03-01T09:00:00Z</Id>\n")
	b.WriteString(`      <Lap StartTime="2024-03-01T09:00:00Z">` + "\n")
	b.WriteString("        <Track>\n")

	point := 0
	for _, watts := range opts.Watts {
		writeTrackpoint(&b, point, watts, true, opts.Prefix)
		point++
	}
	for i := 0; i < opts.BarePoints; i++ {
		writeTrackpoint(&b, point, "", false, opts.Prefix)
		point++
	}

	b.WriteString("        </Track>\n")
	b.WriteString("      </Lap>\n")
	b.WriteString("    </Activity>\n")
	b.WriteString("  </Activities>\n")
	b.WriteString("</TrainingCenterDatabase>\n")
	return b.String()
}

// 🧪 SimpleTCX renders a document with one ns3-prefixed trackpoint per
// watts value, the shape most recording devices produce.
func SimpleTCX(watts ...string) string {
	return TCXContent(TCXOptions{Prefix: "ns3", Watts: watts})
}

// 🧪 WriteTCX writes content into dir under name and returns the path.
func WriteTCX(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "writing fixture %s", name)
	return path
}

// 🧪 NewTestContext returns a context carrying a zerolog logger that
// writes through t.Log.
func NewTestContext(t *testing.T) context.Context {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func writeTrackpoint(b *strings.Builder, index int, watts string, withWatts bool, prefix string) {
	fmt.Fprintf(b, "          <Trackpoint>\n")
	fmt.Fprintf(b, "            <Time>2024-03-01T09:%02d:%02dZ</Time>\n", index/60, index%60)
	fmt.Fprintf(b, "            <HeartRateBpm><Value>%d</Value></HeartRateBpm>\n", 120+index)
	if withWatts {
		b.WriteString("            <Extensions>\n")
		if prefix != "" {
			fmt.Fprintf(b, "              <%s:TPX>\n", prefix)
			fmt.Fprintf(b, "                <%s:Watts>%s</%s:Watts>\n", prefix, watts, prefix)
			fmt.Fprintf(b, "              </%s:TPX>\n", prefix)
		} else {
			fmt.Fprintf(b, "              <TPX xmlns=%q>\n", ActivityExtensionNS)
			fmt.Fprintf(b, "                <Watts>%s</Watts>\n", watts)
			b.WriteString("              </TPX>\n")
		}
		b.WriteString("            </Extensions>\n")
	}
	b.WriteString("          </Trackpoint>\n")
}
