package matchmaking

import (
	"testing"
	"time"

	"github.com/gameofy/backend/internal/domain"
)

func TestQueuePairsTwoWaitingPlayers(t *testing.T) {
	q := NewMatchmakingQueue()

	q.AddPlayerToQueue(1, "alice_h")
	if q.WaitingCount() != 1 {
		t.Fatalf("waiting count = %d, want 1", q.WaitingCount())
	}

	q.AddPlayerToQueue(2, "bob_h")

	select {
	case match := <-q.MatchChannel:
		if match.Player1ID != 1 || match.Player2ID == nil || *match.Player2ID != 2 {
			t.Errorf("unexpected pairing: %+v", match)
		}
		if match.BotDifficulty != "" {
			t.Errorf("human match carries bot difficulty %q", match.BotDifficulty)
		}
	case <-time.After(time.Second):
		t.Fatal("no match produced for two waiting players")
	}

	if q.WaitingCount() != 0 {
		t.Errorf("queue not drained after match, %d still waiting", q.WaitingCount())
	}
}

func TestQueueDuplicateJoinIsIgnored(t *testing.T) {
	q := NewMatchmakingQueue()

	q.AddPlayerToQueue(7, "solo")
	q.AddPlayerToQueue(7, "solo")

	if q.WaitingCount() != 1 {
		t.Errorf("waiting count = %d, want 1", q.WaitingCount())
	}
	select {
	case match := <-q.MatchChannel:
		t.Errorf("player matched against themselves: %+v", match)
	default:
	}
}

func TestQueueRemovePlayerCancelsFallback(t *testing.T) {
	q := NewMatchmakingQueue()

	q.AddPlayerToQueue(3, "leaver")
	q.RemovePlayer(3)

	if q.WaitingCount() != 0 {
		t.Errorf("waiting count = %d, want 0", q.WaitingCount())
	}
}

func TestEnqueueBotMatchUsesRequestedDifficulty(t *testing.T) {
	q := NewMatchmakingQueue()

	q.EnqueueBotMatch(4, "challenger", "hard")

	match := <-q.MatchChannel
	if match.Player2ID != nil {
		t.Error("bot match should have nil Player2ID")
	}
	if match.BotDifficulty != "hard" {
		t.Errorf("difficulty = %q, want hard", match.BotDifficulty)
	}
	if match.Player2Username != domain.GetBotName("hard") {
		t.Errorf("bot username = %q, want %q", match.Player2Username, domain.GetBotName("hard"))
	}
}

func TestEnqueueBotMatchRejectsUnknownDifficulty(t *testing.T) {
	q := NewMatchmakingQueue()

	q.EnqueueBotMatch(5, "challenger", "nightmare")

	match := <-q.MatchChannel
	if match.BotDifficulty != "medium" {
		t.Errorf("difficulty = %q, want medium fallback", match.BotDifficulty)
	}
}
