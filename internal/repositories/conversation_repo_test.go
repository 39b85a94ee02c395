package repositories

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestNormalizePairOrders(t *testing.T) {
	a, b := NormalizePair(8, 3)
	if a != 3 || b != 8 {
		t.Fatalf("NormalizePair(8,3) = (%d,%d), want (3,8)", a, b)
	}

	a, b = NormalizePair(3, 8)
	if a != 3 || b != 8 {
		t.Fatalf("NormalizePair(3,8) = (%d,%d), want (3,8)", a, b)
	}
}

func TestGetOrCreateUsesNormalizedPairBothWays(t *testing.T) {
	now := time.Now()

	for name, pair := range map[string][2]int64{
		"forward":  {3, 8},
		"reversed": {8, 3},
	} {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("%s: sqlmock init error: %v", name, err)
		}

		mock.ExpectExec("INSERT INTO conversations").
			WithArgs(int64(3), int64(8)).
			WillReturnResult(sqlmock.NewResult(0, 0)) // conflict path: no row inserted
		mock.ExpectQuery("SELECT id, participant_1, participant_2").
			WithArgs(int64(3), int64(8)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "participant_1", "participant_2", "last_message_at", "created_at"}).
				AddRow(int64(9), int64(3), int64(8), now, now))

		repo := ConversationRepo{DB: db}
		conv, err := repo.GetOrCreate(db, pair[0], pair[1])
		if err != nil {
			t.Fatalf("%s: get-or-create error: %v", name, err)
		}
		if conv.ID != 9 {
			t.Fatalf("%s: conversation id = %d, want 9", name, conv.ID)
		}

		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("%s: unmet expectations: %v", name, err)
		}
		db.Close()
	}
}

func TestGetOrCreateRejectsSelfPair(t *testing.T) {
	repo := ConversationRepo{}
	if _, err := repo.GetOrCreate(nil, 5, 5); err == nil {
		t.Fatal("self-conversation must be rejected")
	}
}
