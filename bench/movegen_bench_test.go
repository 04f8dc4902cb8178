package bench

import (
	"testing"

	"lukechampine.com/frand"

	"othello-engine/othello"
)

// midgame plays a seeded random game for the given number of plies.
func midgame(b *testing.B, plies int) othello.Position {
	key := make([]byte, 32)
	rng := frand.NewCustom(key, 1024, 12)
	g := othello.NewGame()
	for i := 0; i < plies && !g.Over; i++ {
		cells := othello.Cells(othello.LegalMoves(g.Pos))
		if err := g.Play(cells[rng.Intn(len(cells))]); err != nil {
			b.Fatalf("random playout: %v", err)
		}
	}
	return g.Pos
}

func benchLegalMoves(b *testing.B, p othello.Position) {
	var sink uint64
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sink ^= othello.LegalMoves(p)
	}
	_ = sink
}

func BenchmarkLegalMoves_Initial(b *testing.B) {
	benchLegalMoves(b, othello.Initial())
}

func BenchmarkLegalMoves_Midgame(b *testing.B) {
	benchLegalMoves(b, midgame(b, 24))
}

func BenchmarkComputeFlip_AllMoves_Midgame(b *testing.B) {
	p := midgame(b, 24)
	cells := othello.Cells(othello.LegalMoves(p))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, c := range cells {
			_ = othello.ComputeFlip(p, c)
		}
	}
}

func BenchmarkApplyUndo_AllMoves_Midgame(b *testing.B) {
	p := midgame(b, 24)
	var flips []othello.Flip
	for _, c := range othello.Cells(othello.LegalMoves(p)) {
		flips = append(flips, othello.ComputeFlip(p, c))
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, f := range flips {
			if p.Apply(f).Undo(f) != p {
				b.Fatalf("undo mismatch at %s", f.Cell)
			}
		}
	}
}
