package engine

import (
	"testing"

	"lukechampine.com/frand"

	"othello-engine/othello"
)

func testRNG(seed byte) *frand.RNG {
	key := make([]byte, 32)
	key[0] = seed
	return frand.NewCustom(key, 1024, 12)
}

// randomPositions collects live positions from random games.
func randomPositions(rng *frand.RNG, games int) []othello.Position {
	var out []othello.Position
	for g := 0; g < games; g++ {
		p := othello.Initial()
		for {
			legal := othello.LegalMoves(p)
			if legal == 0 {
				p = p.Pass()
				if othello.LegalMoves(p) == 0 {
					break
				}
				continue
			}
			out = append(out, p)
			cells := othello.Cells(legal)
			c := cells[rng.Intn(len(cells))]
			p = p.Apply(othello.ComputeFlip(p, c))
		}
	}
	return out
}

func mustBoard(t *testing.T, board string, side int) othello.Position {
	t.Helper()
	p, err := othello.ParseBoard(board, side)
	if err != nil {
		t.Fatalf("ParseBoard: %v", err)
	}
	return p
}

func TestRegionMasksPartitionBoard(t *testing.T) {
	var seen uint64
	for i, m := range RegionMasks {
		if seen&m != 0 {
			t.Fatalf("region %d overlaps an earlier region", i)
		}
		seen |= m
	}
	if seen != ^uint64(0) {
		t.Fatalf("regions cover %016x, want the whole board", seen)
	}
}

func TestEvaluateInitialIsZero(t *testing.T) {
	if got := Evaluate(othello.Initial(), &DefaultWeights); got != 0 {
		t.Fatalf("initial evaluation %d, want 0", got)
	}
}

func TestEvaluateBoundedAndAntisymmetric(t *testing.T) {
	huge := Weights{}
	for i := range huge {
		huge[i] = 1 << 20
	}
	for _, p := range randomPositions(testRNG(7), 30) {
		for _, w := range []*Weights{&DefaultWeights, &FlatWeights, &huge} {
			v := Evaluate(p, w)
			if v < -ScoreMax || v > ScoreMax {
				t.Fatalf("evaluation %d out of bounds\n%v", v, p)
			}
			if back := Evaluate(p.Pass(), w); back != -v {
				t.Fatalf("evaluation %d but %d for the other side\n%v", v, back, p)
			}
		}
	}
}

func TestEvaluateFlatWeightsCountsDiscs(t *testing.T) {
	for _, p := range randomPositions(testRNG(8), 5) {
		mover, other := p.DiscCount()
		if got := Evaluate(p, &FlatWeights); got != mover-other {
			t.Fatalf("flat evaluation %d, want %d", got, mover-other)
		}
	}
}

func TestRoundDiv(t *testing.T) {
	cases := []struct{ v, want int }{
		{0, 0}, {127, 0}, {128, 1}, {-127, 0}, {-128, -1}, {383, 1}, {384, 2}, {-640, -3},
	}
	for _, tc := range cases {
		if got := roundDiv(tc.v, WeightScale); got != tc.want {
			t.Fatalf("roundDiv(%d) = %d, want %d", tc.v, got, tc.want)
		}
	}
}

func TestFinalScore(t *testing.T) {
	rows := func(r ...string) string {
		var s string
		for _, x := range r {
			s += x
		}
		return s
	}
	full := rows("00000000", "00000000", "00000000", "00000000",
		"00000000", "11111111", "11111111", "11111111")
	cases := []struct {
		name  string
		board string
		want  int
	}{
		{"full board win", full, 40 - 24},
		{"empties go to the leader", rows("000.....", "11......", "........", "........",
			"........", "........", "........", "........"), 3 - 2 + 59},
		{"empties go to the leader when behind", rows("0.......", "11......", "........", "........",
			"........", "........", "........", "........"), 1 - 2 - 61},
		{"draw", rows("01......", "........", "........", "........",
			"........", "........", "........", "........"), 0},
	}
	for _, tc := range cases {
		p := mustBoard(t, tc.board, 0)
		if got := FinalScore(p); got != tc.want {
			t.Fatalf("%s: got %d want %d", tc.name, got, tc.want)
		}
		if got := FinalScore(p.Pass()); got != -tc.want {
			t.Fatalf("%s (other side): got %d want %d", tc.name, got, -tc.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if Clamp(70, -64, 64) != 64 || Clamp(-70, -64, 64) != -64 || Clamp(int8(3), -1, 5) != 3 {
		t.Fatal("Clamp")
	}
}

func BenchmarkEvaluate(b *testing.B) {
	positions := randomPositions(testRNG(9), 4)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Evaluate(positions[i%len(positions)], &DefaultWeights)
	}
}
