package engine

import (
	"errors"
	"testing"
	"time"

	"othello-engine/othello"
)

// deepDepth keeps an unordered search busy for far longer than the tests wait.
const deepDepth = 16

func TestTaskStopUnwindsPromptly(t *testing.T) {
	root := othello.Initial()
	snapshot := root
	var tok Token
	task := StartTask(root, deepDepth, nil, &tok)
	time.Sleep(20 * time.Millisecond)
	if task.Done() {
		t.Fatal("deep search finished too early to test cancellation")
	}

	stopped := make(chan error, 1)
	go func() {
		_, err := task.Stop()
		stopped <- err
	}()
	select {
	case err := <-stopped:
		if !errors.Is(err, ErrCancelled) {
			t.Fatalf("got %v, want ErrCancelled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("search did not unwind after Stop")
	}
	if tok.Cancelled() {
		t.Fatal("token still set after Stop")
	}
	if root != snapshot {
		t.Fatal("search changed the caller's position")
	}
}

func TestTaskWait(t *testing.T) {
	task := StartTask(othello.Initial(), 3, nil, nil)
	res, err := task.Wait()
	if err != nil {
		t.Fatal(err)
	}
	if !task.Done() {
		t.Fatal("Done false after Wait")
	}
	want, _ := BestMove(othello.Initial(), 3, nil)
	if res.Cell != want.Cell || res.Score != want.Score {
		t.Fatalf("task result %+v, direct %+v", res, want)
	}
}

func TestTaskCopiesWeights(t *testing.T) {
	w := FlatWeights
	task := StartTask(othello.Initial(), 2, &w, nil)
	w[0] = -1 << 20
	res, err := task.Wait()
	if err != nil {
		t.Fatal(err)
	}
	want, _ := BestMove(othello.Initial(), 2, &FlatWeights)
	if res.Score != want.Score {
		t.Fatalf("score %d, want %d", res.Score, want.Score)
	}
}

func TestRunnerOneSearchAtATime(t *testing.T) {
	var r Runner
	if _, _, err := r.Poll(); !errors.Is(err, ErrNoSearch) {
		t.Fatalf("poll with no search: %v", err)
	}
	if _, err := r.Start(othello.Initial(), deepDepth); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Start(othello.Initial(), 1); !errors.Is(err, ErrSearchInProgress) {
		t.Fatalf("second start: got %v, want ErrSearchInProgress", err)
	}
	if _, ready, err := r.Poll(); ready || err != nil {
		t.Fatalf("poll on a deep search: ready=%v err=%v", ready, err)
	}
	r.Stop()
	if r.Busy() {
		t.Fatal("runner busy after Stop")
	}

	// The token is re-armed: the next search runs to completion.
	if _, err := r.Start(othello.Initial(), 2); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(5 * time.Second)
	for {
		res, ready, err := r.Poll()
		if err != nil {
			t.Fatal(err)
		}
		if ready {
			if res.Cell == othello.NoCell {
				t.Fatal("no move after a completed search")
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("depth 2 search never finished")
		}
		time.Sleep(time.Millisecond)
	}
	if r.Busy() {
		t.Fatal("runner busy after collecting the result")
	}
}

func TestRunnerWait(t *testing.T) {
	r := Runner{Weights: &FlatWeights}
	if _, err := r.Wait(); !errors.Is(err, ErrNoSearch) {
		t.Fatalf("wait with no search: %v", err)
	}
	if _, err := r.Start(othello.Initial(), 3); err != nil {
		t.Fatal(err)
	}
	res, err := r.Wait()
	if err != nil {
		t.Fatal(err)
	}
	want, _ := BestMove(othello.Initial(), 3, &FlatWeights)
	if res.Cell != want.Cell || res.Score != want.Score {
		t.Fatalf("runner %+v, direct %+v", res, want)
	}
}

func TestRunnerCollectAfterStop(t *testing.T) {
	var r Runner
	stale, err := r.Start(othello.Initial(), deepDepth)
	if err != nil {
		t.Fatal(err)
	}
	r.Stop()
	fresh, err := r.Start(othello.Initial(), 1)
	if err != nil {
		t.Fatal(err)
	}

	// The stopped handle reports its own cancellation and does not free
	// the runner from the search that replaced it.
	if _, err := r.Collect(stale); !errors.Is(err, ErrCancelled) {
		t.Fatalf("stale handle: got %v, want ErrCancelled", err)
	}
	if !r.Busy() {
		t.Fatal("collecting a stopped handle released the next search")
	}
	res, err := r.Collect(fresh)
	if err != nil {
		t.Fatal(err)
	}
	if res.Cell.String() != "e6" || res.Score != 0 {
		t.Fatalf("got %s score %d, want e6 score 0", res.Cell, res.Score)
	}
	if r.Busy() {
		t.Fatal("runner busy after collecting the live search")
	}
}
