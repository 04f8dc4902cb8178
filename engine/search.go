package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"othello-engine/othello"
)

// MaxDepth caps the requested search depth: there are never more than 60
// moves left in a game.
const MaxDepth = 60

var (
	ErrNoLegalMoves = errors.New("no legal move")
	ErrInvalidDepth = errors.New("invalid search depth")
	ErrCancelled    = errors.New("search cancelled")
)

// Result is the move chosen at the root and its score for the side to move.
type Result struct {
	Cell  othello.Cell
	Score int
	Nodes uint64
}

func (r Result) String() string {
	return fmt.Sprintf("%s %d", r.Cell, r.Score)
}

// Searcher runs fixed-depth negamax searches with alpha-beta pruning.
// A Searcher is not safe for concurrent use; run one per goroutine.
type Searcher struct {
	Weights *Weights
	Stop    *Token
	Nodes   uint64
	Cuts    CutStatistics
}

// NewSearcher returns a searcher using w, or DefaultWeights when w is nil.
// A nil stop gets a private token.
func NewSearcher(w *Weights, stop *Token) *Searcher {
	if w == nil {
		w = &DefaultWeights
	}
	if stop == nil {
		stop = &Token{}
	}
	return &Searcher{Weights: w, Stop: stop}
}

// BestMove searches every root move depth plies deep and returns the best.
// Ties keep the first move in ascending cell order.
func (s *Searcher) BestMove(p othello.Position, depth int) (Result, error) {
	res := Result{Cell: othello.NoCell, Score: -Infinity}
	if depth < 1 || depth > MaxDepth {
		return res, fmt.Errorf("%w: %d", ErrInvalidDepth, depth)
	}
	legal := othello.LegalMoves(p)
	if legal == 0 {
		return res, ErrNoLegalMoves
	}
	s.Nodes = 0
	s.Cuts = CutStatistics{}
	for legal != 0 {
		c := othello.PopCell(&legal)
		child := p.Apply(othello.ComputeFlip(p, c))
		v := -s.negaAlpha(child, depth-1, -Infinity, -res.Score, false)
		if s.Stop.Cancelled() {
			return Result{Cell: othello.NoCell, Nodes: s.Nodes}, ErrCancelled
		}
		log.Debug().Str("move", c.String()).Int("score", v).Uint64("nodes", s.Nodes).Msg("root-move")
		if res.Score < v {
			res.Cell = c
			res.Score = v
		}
	}
	res.Nodes = s.Nodes
	return res, nil
}

// negaAlpha returns the score of p for the side to move within
// [alpha, beta]. passed is set when the previous ply was a pass.
func (s *Searcher) negaAlpha(p othello.Position, depth, alpha, beta int, passed bool) int {
	s.Nodes++
	if s.Stop.Cancelled() {
		return -Infinity
	}
	if depth == 0 {
		if p.IsFull() {
			s.Cuts.ExactLeaves++
			return FinalScore(p)
		}
		s.Cuts.EvalLeaves++
		return Evaluate(p, s.Weights)
	}
	legal := othello.LegalMoves(p)
	if legal == 0 {
		if passed {
			s.Cuts.ExactLeaves++
			return FinalScore(p)
		}
		s.Cuts.Passes++
		return -s.negaAlpha(p.Pass(), depth, -beta, -alpha, true)
	}
	for legal != 0 {
		c := othello.PopCell(&legal)
		child := p.Apply(othello.ComputeFlip(p, c))
		alpha = max(alpha, -s.negaAlpha(child, depth-1, -beta, -alpha, false))
		if beta <= alpha {
			s.Cuts.BetaCutoffs++
			break
		}
	}
	return alpha
}

// BestMove searches p with a private searcher.
func BestMove(p othello.Position, depth int, w *Weights) (Result, error) {
	return NewSearcher(w, nil).BestMove(p, depth)
}

// BestMoveContext is BestMove that gives up when ctx is done.
func BestMoveContext(ctx context.Context, p othello.Position, depth int, w *Weights) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{Cell: othello.NoCell}, fmt.Errorf("%w: %v", ErrCancelled, err)
	}
	s := NewSearcher(w, nil)
	release := s.Stop.watch(ctx)
	defer release()
	res, err := s.BestMove(p, depth)
	if errors.Is(err, ErrCancelled) {
		return res, fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
	}
	return res, err
}
