package records

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/vovakirdan/escape/internal/game"
)

// absentSeconds is written for levels with no record. Parsed times at or
// above it are treated as absent.
const absentSeconds = 99999.0

// ParseLegacy reads a records.txt file: one "<seconds> <holder>" line per
// level starting at level 1. Unreadable lines leave that level without a record.
func ParseLegacy(r io.Reader) (map[int]game.Record, error) {
	out := make(map[int]game.Record)
	sc := bufio.NewScanner(r)
	level := 0
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		level++

		secStr, holder, _ := strings.Cut(line, " ")
		holder = strings.TrimSpace(holder)
		sec, err := strconv.ParseFloat(secStr, 64)
		if err != nil || sec < 0 || sec >= absentSeconds || math.IsNaN(sec) {
			continue
		}
		if ValidHolder(holder) != nil {
			continue
		}
		out[level] = game.Record{Tenths: int(math.Round(sec * 10)), Holder: holder}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("records: cannot read legacy file: %w", err)
	}
	return out, nil
}

// FormatLegacy writes records for levels 1..levelCount in records.txt form.
func FormatLegacy(w io.Writer, recs map[int]game.Record, levelCount int) error {
	bw := bufio.NewWriter(w)
	for id := 1; id <= levelCount; id++ {
		r, ok := recs[id]
		var line string
		if ok {
			line = fmt.Sprintf("%s %s\n", game.FormatTenths(r.Tenths), r.Holder)
		} else {
			line = fmt.Sprintf("%.1f -\n", absentSeconds)
		}
		if _, err := bw.WriteString(line); err != nil {
			return fmt.Errorf("records: cannot write legacy file: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("records: cannot write legacy file: %w", err)
	}
	return nil
}
