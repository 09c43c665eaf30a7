package render

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/gndm/ytTranscript/internal/transcript"
)

// Output formats.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatCSV   = "csv"
	FormatTable = "table"
	FormatSRT   = "srt"
)

// Formats lists every supported output format.
var Formats = []string{FormatText, FormatJSON, FormatCSV, FormatTable, FormatSRT}

// Write renders segments to w in the named format.
func Write(w io.Writer, format string, segments []transcript.Segment) error {
	switch format {
	case FormatText, "":
		return Text(w, segments)
	case FormatJSON:
		return JSON(w, segments)
	case FormatCSV:
		return CSV(w, segments)
	case FormatTable:
		_, err := fmt.Fprintln(w, Table(segments))
		return err
	case FormatSRT:
		return SRT(w, segments)
	default:
		return fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

// Text writes one "[start-end] text" line per segment.
func Text(w io.Writer, segments []transcript.Segment) error {
	for _, s := range segments {
		if _, err := fmt.Fprintf(w, "[%.2f-%.2f] %s\n", s.Offset, s.Offset+s.Duration, s.Text); err != nil {
			return err
		}
	}
	return nil
}

// JSON writes the segments as an indented JSON array.
func JSON(w io.Writer, segments []transcript.Segment) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(segments)
}

type csvRow struct {
	Offset   string `csv:"offset"`
	Duration string `csv:"duration"`
	Lang     string `csv:"lang"`
	Text     string `csv:"text"`
}

// CSV writes a header row followed by one row per segment.
func CSV(w io.Writer, segments []transcript.Segment) error {
	rows := make([]*csvRow, 0, len(segments))
	for _, s := range segments {
		rows = append(rows, &csvRow{
			Offset:   formatSeconds(s.Offset),
			Duration: formatSeconds(s.Duration),
			Lang:     s.Lang,
			Text:     s.Text,
		})
	}
	return gocsv.Marshal(&rows, w)
}

// Table renders the segments as a rounded box table.
func Table(segments []transcript.Segment) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Start", "Duration", "Lang", "Text"})
	for i, s := range segments {
		tw.AppendRow(table.Row{i + 1, formatSeconds(s.Offset), formatSeconds(s.Duration), s.Lang, s.Text})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

// SRT writes the segments as SubRip cues.
func SRT(w io.Writer, segments []transcript.Segment) error {
	for i, s := range segments {
		start := s.Offset
		end := s.Offset + s.Duration
		if _, err := fmt.Fprintf(w, "%d\n%s --> %s\n%s\n\n", i+1, srtTimestamp(start), srtTimestamp(end), s.Text); err != nil {
			return err
		}
	}
	return nil
}

func srtTimestamp(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}
	ms := int64(math.Round(seconds * 1000))
	h := ms / 3_600_000
	ms %= 3_600_000
	m := ms / 60_000
	ms %= 60_000
	s := ms / 1000
	ms %= 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
