package kafka_test

import (
	"context"
	"strings"
	"testing"

	"go-attendance/internal/events"
	"go-attendance/internal/messaging/kafka"
	"go-attendance/internal/shared/testdb"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewOutboxEvent(t *testing.T) {
	id := uuid.NewString()
	ev, err := kafka.NewOutboxEvent("REQ-1", "employee", id, events.EmployeeCreated, events.EmployeeLifecycleTopic,
		events.EmployeeLifecycleEvent{EventType: events.EmployeeCreated, ID: id})

	assert.NoError(t, err)
	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, kafka.OutboxStatusPending, ev.Status)
	assert.Equal(t, "REQ-1", ev.RequestID)
	assert.Contains(t, string(ev.Payload), `"event_type":"employee_created"`)
	assert.NoError(t, kafka.ValidateOutboxEvent(ev))
}

func TestValidateOutboxEvent(t *testing.T) {
	valid := kafka.OutboxEvent{ID: "1", Topic: "t", Payload: []byte(`{}`), Status: kafka.OutboxStatusPending}

	cases := map[string]func(e *kafka.OutboxEvent){
		"missing id":      func(e *kafka.OutboxEvent) { e.ID = "" },
		"missing topic":   func(e *kafka.OutboxEvent) { e.Topic = "" },
		"missing payload": func(e *kafka.OutboxEvent) { e.Payload = nil },
		"bad status":      func(e *kafka.OutboxEvent) { e.Status = "queued" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			e := valid
			mutate(&e)
			assert.Error(t, kafka.ValidateOutboxEvent(e))
		})
	}
}

func TestOutboxRepository_Create(t *testing.T) {
	db, mock, _ := testdb.New(t)
	repo := kafka.NewOutboxRepository(db)

	ev, _ := kafka.NewOutboxEvent("", "attendance", uuid.NewString(), events.AttendanceMarked, events.AttendanceRecordsTopic, map[string]string{"k": "v"})

	mock.ExpectExec(`INSERT INTO "outbox_events"`).WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, repo.Create(context.Background(), ev))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_Create_RejectsInvalid(t *testing.T) {
	db, mock, _ := testdb.New(t)
	repo := kafka.NewOutboxRepository(db)

	err := repo.Create(context.Background(), kafka.OutboxEvent{ID: "x"})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock, _ := testdb.New(t)
	repo := kafka.NewOutboxRepository(db)

	rows := sqlmock.NewRows([]string{"id", "topic", "event_type", "status", "payload"}).
		AddRow(uuid.NewString(), events.AttendanceRecordsTopic, events.AttendanceMarked, kafka.OutboxStatusPending, []byte(`{}`))
	mock.ExpectQuery(`SELECT \* FROM "outbox_events" WHERE status IN`).WillReturnRows(rows)

	got, err := repo.ListPending(context.Background(), 50)

	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, events.AttendanceMarked, got[0].EventType)
}

func TestOutboxRepository_MarkSentAndFailed(t *testing.T) {
	db, mock, _ := testdb.New(t)
	repo := kafka.NewOutboxRepository(db)
	id := uuid.NewString()

	mock.ExpectExec(`UPDATE "outbox_events" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "outbox_events" SET`).WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.MarkSent(context.Background(), id))
	assert.NoError(t, repo.MarkFailed(context.Background(), id, strings.Repeat("x", 900)))
	assert.NoError(t, mock.ExpectationsWereMet())
}
