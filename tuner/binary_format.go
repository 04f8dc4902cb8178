package tuner

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"othello-engine/othello"
)

var ErrBadCache = errors.New("corrupt sample cache")

// BinarySample is the fixed-size disk form of a Sample.
type BinarySample struct {
	Player   uint64
	Opponent uint64
	Value    int8
	_        [7]uint8 // padding to 24 bytes
}

const BinarySampleSize = 24

func (s *Sample) ToBinary() BinarySample {
	return BinarySample{Player: s.Pos.Player, Opponent: s.Pos.Opponent, Value: int8(s.Value)}
}

// ToSample rejects overlapping masks and out-of-range values, which only a
// damaged file can hold.
func (bs *BinarySample) ToSample() (Sample, error) {
	s := Sample{Pos: othello.Position{Player: bs.Player, Opponent: bs.Opponent}, Value: int(bs.Value)}
	if !s.Pos.Valid() || s.Value < -othello.NumCells || s.Value > othello.NumCells {
		return s, ErrBadCache
	}
	return s, nil
}

// WriteSamples writes a sample count header followed by the samples.
func WriteSamples(w io.Writer, samples []Sample) error {
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, uint64(len(samples))); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := range samples {
		bs := samples[i].ToBinary()
		if err := binary.Write(bw, binary.LittleEndian, &bs); err != nil {
			return fmt.Errorf("write sample %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// ReadSamples reads at most maxRows samples written by WriteSamples
// (0 reads them all).
func ReadSamples(r io.Reader, maxRows int) ([]Sample, error) {
	br := bufio.NewReader(r)
	var count uint64
	if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if maxRows > 0 && uint64(maxRows) < count {
		count = uint64(maxRows)
	}
	samples := make([]Sample, 0, min(count, 1<<20))
	for i := uint64(0); i < count; i++ {
		var bs BinarySample
		if err := binary.Read(br, binary.LittleEndian, &bs); err != nil {
			return nil, fmt.Errorf("read sample %d: %w", i, err)
		}
		s, err := bs.ToSample()
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		samples = append(samples, s)
	}
	return samples, nil
}

// ConvertToBinary loads text corpus files and writes them as one binary
// cache at binPath.
func ConvertToBinary(paths []string, binPath string) (int, error) {
	samples, err := LoadCorpus(paths)
	if err != nil {
		return 0, fmt.Errorf("load corpus: %w", err)
	}
	f, err := os.Create(binPath)
	if err != nil {
		return 0, fmt.Errorf("create file: %w", err)
	}
	if err := WriteSamples(f, samples); err != nil {
		f.Close()
		return 0, err
	}
	if err := f.Close(); err != nil {
		return 0, err
	}
	log.Info().Str("file", binPath).Int("samples", len(samples)).
		Float64("mb", float64(8+len(samples)*BinarySampleSize)/(1024*1024)).Msg("wrote sample cache")
	return len(samples), nil
}

// LoadBinaryCorpus loads a cache written by ConvertToBinary.
func LoadBinaryCorpus(path string, maxRows int) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	samples, err := ReadSamples(f, maxRows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return samples, nil
}
