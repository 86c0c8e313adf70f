package services

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/gorm"

	"github.com/velora-live/velora/internal/idgen"
)

func TestRegisterEmailTaken(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewUserService(gdb, testLogger())

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WithArgs("john@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := svc.Register(CreateUserInput{
		Name:     "John",
		Email:    "John@Example.com",
		Password: "Password123",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("Register() err = %v, want ErrEmailTaken", err)
	}
	expectationsMet(t, mock)
}

func TestRegisterCreatesUserAndProfile(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewUserService(gdb, testLogger())

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "profiles"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	user, err := svc.Register(CreateUserInput{
		Name:     "John",
		Email:    "John@Example.com",
		Password: "Password123",
	})
	if err != nil {
		t.Fatalf("Register() err = %v", err)
	}
	if user.Email != "john@example.com" {
		t.Fatalf("email = %q, want lowercased", user.Email)
	}
	if len(user.PublicID) != idgen.Length || idgen.HasDigitRun(user.PublicID) {
		t.Fatalf("public id %q violates format rules", user.PublicID)
	}
	if user.PasswordHash == "" || user.PasswordHash == "Password123" {
		t.Fatalf("password was not hashed")
	}
	expectationsMet(t, mock)
}

func TestRegisterConcurrentEmailConflict(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewUserService(gdb, testLogger())

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	// Another signup with the same email commits between the pre-check and
	// the insert.
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnError(gorm.ErrDuplicatedKey)
	mock.ExpectRollback()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := svc.Register(CreateUserInput{
		Name:     "John",
		Email:    "john@example.com",
		Password: "Password123",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("Register() err = %v, want ErrEmailTaken", err)
	}
	expectationsMet(t, mock)
}

func TestManageCreditsInsufficient(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewUserService(gdb, testLogger())

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "credits"}).AddRow(1, 5))
	mock.ExpectExec(`UPDATE "users" SET "credits"=credits - `).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := svc.ManageCredits(1, "deduct", 10, nil)
	if !errors.Is(err, ErrInsufficientCredits) {
		t.Fatalf("ManageCredits() err = %v, want ErrInsufficientCredits", err)
	}
	expectationsMet(t, mock)
}

func TestManageCreditsAddAppendsHistory(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewUserService(gdb, testLogger())

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "credits"}).AddRow(1, 5))
	mock.ExpectExec(`UPDATE "users" SET "credits"=credits \+ `).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "credits_histories"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "credits"}).AddRow(1, 15))
	mock.ExpectCommit()

	user, err := svc.ManageCredits(1, "add", 10, nil)
	if err != nil {
		t.Fatalf("ManageCredits() err = %v", err)
	}
	if user.Credits != 15 {
		t.Fatalf("credits = %d, want 15", user.Credits)
	}
	expectationsMet(t, mock)
}

func TestManageCreditsUnknownKind(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewUserService(gdb, testLogger())

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "credits"}).AddRow(1, 5))
	mock.ExpectRollback()

	_, err := svc.ManageCredits(1, "steal", 10, nil)
	if !errors.Is(err, ErrInvalidCreditsKind) {
		t.Fatalf("ManageCredits() err = %v, want ErrInvalidCreditsKind", err)
	}
	expectationsMet(t, mock)
}

func TestFollowIdempotent(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewUserService(gdb, testLogger())

	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "public_id"}).AddRow(2, "1234567890"))
	// Existing edge: ON CONFLICT DO NOTHING returns no rows, which is not
	// an error.
	mock.ExpectQuery(`INSERT INTO "relations"(.+)ON CONFLICT DO NOTHING`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if err := svc.Follow(1, "1234567890"); err != nil {
		t.Fatalf("Follow() err = %v", err)
	}
	expectationsMet(t, mock)
}

func TestUnfollowMissingEdgeIsNoop(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewUserService(gdb, testLogger())

	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "public_id"}).AddRow(2, "1234567890"))
	mock.ExpectExec(`DELETE FROM "relations"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := svc.Unfollow(1, "1234567890"); err != nil {
		t.Fatalf("Unfollow() err = %v", err)
	}
	expectationsMet(t, mock)
}

func TestFollowUnknownTarget(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewUserService(gdb, testLogger())

	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := svc.Follow(1, "0000000000")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("Follow() err = %v, want ErrUserNotFound", err)
	}
	expectationsMet(t, mock)
}

// Following resolves edges the user created, so the join lands on the edge
// target and the filter on the edge source.
func TestFollowingJoinsOutgoingEdges(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewUserService(gdb, testLogger())

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE public_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "public_id"}).AddRow(1, "1234567890"))
	mock.ExpectQuery(`FROM "users" JOIN relations ON relations\.target_id = users\.id WHERE \(?relations\.user_id = \$1 AND relations\.kind = \$2`).
		WithArgs(1, "follow").
		WillReturnRows(sqlmock.NewRows([]string{"id", "public_id", "name"}).
			AddRow(2, "2345678901", "Jane"))

	users, err := svc.Following("1234567890")
	if err != nil {
		t.Fatalf("Following() err = %v", err)
	}
	if len(users) != 1 || users[0].PublicID != "2345678901" {
		t.Fatalf("users = %+v, want the followed user", users)
	}
	expectationsMet(t, mock)
}

// Followers is the mirror query: join on the edge source, filter on the
// target.
func TestFollowersJoinsIncomingEdges(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewUserService(gdb, testLogger())

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE public_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "public_id"}).AddRow(2, "2345678901"))
	mock.ExpectQuery(`FROM "users" JOIN relations ON relations\.user_id = users\.id WHERE \(?relations\.target_id = \$1 AND relations\.kind = \$2`).
		WithArgs(2, "follow").
		WillReturnRows(sqlmock.NewRows([]string{"id", "public_id", "name"}).
			AddRow(1, "1234567890", "John"))

	users, err := svc.Followers("2345678901")
	if err != nil {
		t.Fatalf("Followers() err = %v", err)
	}
	if len(users) != 1 || users[0].PublicID != "1234567890" {
		t.Fatalf("users = %+v, want the follower", users)
	}
	expectationsMet(t, mock)
}

func TestFollowingEmptyWithoutEdges(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewUserService(gdb, testLogger())

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE public_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "public_id"}).AddRow(1, "1234567890"))
	mock.ExpectQuery(`FROM "users" JOIN relations ON relations\.target_id = users\.id`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	users, err := svc.Following("1234567890")
	if err != nil {
		t.Fatalf("Following() err = %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("users = %+v, want empty", users)
	}
	expectationsMet(t, mock)
}

func TestBlockedFiltersByKind(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewUserService(gdb, testLogger())

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE public_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "public_id"}).AddRow(1, "1234567890"))
	mock.ExpectQuery(`FROM "users" JOIN relations ON relations\.target_id = users\.id WHERE \(?relations\.user_id = \$1 AND relations\.kind = \$2`).
		WithArgs(1, "block").
		WillReturnRows(sqlmock.NewRows([]string{"id", "public_id"}).AddRow(3, "3456789012"))

	users, err := svc.Blocked("1234567890")
	if err != nil {
		t.Fatalf("Blocked() err = %v", err)
	}
	if len(users) != 1 || users[0].PublicID != "3456789012" {
		t.Fatalf("users = %+v, want the blocked user", users)
	}
	expectationsMet(t, mock)
}

func TestSearchRequiresQuery(t *testing.T) {
	gdb, _ := newMockDB(t)
	svc := NewUserService(gdb, testLogger())

	if _, err := svc.Search("", 1, 10); !errors.Is(err, ErrSearchQueryRequired) {
		t.Fatalf("Search() err = %v, want ErrSearchQueryRequired", err)
	}
}

func TestSearchMatchesPublicID(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewUserService(gdb, testLogger())

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE \(name ILIKE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "public_id"}).
			AddRow(3, "Unrelated Name", "5551234567"))

	result, err := svc.Search("5551234567", 0, 0)
	if err != nil {
		t.Fatalf("Search() err = %v", err)
	}
	if len(result.Users) != 1 || result.Users[0].PublicID != "5551234567" {
		t.Fatalf("result = %+v, want the exact public id match", result)
	}
	if result.TotalResults != 1 || result.CurrentPage != 1 || result.TotalPages != 1 {
		t.Fatalf("pagination = %+v", result)
	}
	expectationsMet(t, mock)
}
