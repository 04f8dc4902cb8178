// tuner/data.go
package tuner

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"othello-engine/othello"
)

var ErrMalformedRecord = errors.New("malformed record")

// minRecordLen is the shortest line that can hold board, side and score.
const minRecordLen = 67

// ParseRecord reads one corpus line: 64 board characters, a space, the side
// to move ('0' or '1'), a space and the final score from side '0's point of
// view.
func ParseRecord(line string) (Sample, error) {
	if len(line) < minRecordLen {
		return Sample{}, fmt.Errorf("%w: %d characters", ErrMalformedRecord, len(line))
	}
	if line[64] != ' ' || line[66] != ' ' {
		return Sample{}, fmt.Errorf("%w: missing field separator", ErrMalformedRecord)
	}
	var side int
	switch line[65] {
	case '0':
	case '1':
		side = 1
	default:
		return Sample{}, fmt.Errorf("%w: side %q", ErrMalformedRecord, line[65])
	}
	pos, err := othello.ParseBoard(line[:64], side)
	if err != nil {
		return Sample{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	value, err := strconv.Atoi(strings.TrimSpace(line[minRecordLen:]))
	if err != nil {
		return Sample{}, fmt.Errorf("%w: score: %v", ErrMalformedRecord, err)
	}
	if value < -othello.NumCells || value > othello.NumCells {
		return Sample{}, fmt.Errorf("%w: score %d out of range", ErrMalformedRecord, value)
	}
	if side == 1 {
		value = -value
	}
	return Sample{Pos: pos, Value: value}, nil
}

// ReadCorpus parses records until EOF or a line too short to be a record.
// Malformed records are skipped and counted.
func ReadCorpus(r io.Reader) (samples []Sample, rejected int, err error) {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if len(text) < minRecordLen {
			break
		}
		s, err := ParseRecord(text)
		if err != nil {
			rejected++
			log.Debug().Err(err).Int("line", line).Msg("skipping record")
			continue
		}
		samples = append(samples, s)
	}
	if err := sc.Err(); err != nil {
		return samples, rejected, fmt.Errorf("read error line %d: %w", line, err)
	}
	return samples, rejected, nil
}

// CorpusPaths names the first n numbered corpus files in dir.
func CorpusPaths(dir string, n int) []string {
	paths := make([]string, 0, n)
	for i := 0; i < n; i++ {
		paths = append(paths, filepath.Join(dir, fmt.Sprintf("%07d.txt", i)))
	}
	return paths
}

// LoadCorpus reads every file in paths. Files that cannot be opened are
// logged and skipped.
func LoadCorpus(paths []string) ([]Sample, error) {
	var out []Sample
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("error opening corpus file")
			continue
		}
		samples, rejected, err := ReadCorpus(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		log.Info().Str("file", path).Int("samples", len(samples)).Int("rejected", rejected).Msg("loaded corpus file")
		out = append(out, samples...)
	}
	return out, nil
}
