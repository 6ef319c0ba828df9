package db

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestHasTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("information_schema\\.tables").WithArgs("viaje").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("viaje"))
	mock.ExpectQuery("information_schema\\.tables").WithArgs("viaje").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))
	mock.ExpectQuery("information_schema\\.tables").WithArgs("viaje").
		WillReturnError(errors.New("connection refused"))

	ok, err := HasTable(context.Background(), db, "viaje")
	if err != nil || !ok {
		t.Fatalf("expected table present, got %v %v", ok, err)
	}
	ok, err = HasTable(context.Background(), db, "viaje")
	if err != nil || ok {
		t.Fatalf("expected table missing, got %v %v", ok, err)
	}
	if _, err = HasTable(context.Background(), db, "viaje"); err == nil {
		t.Fatalf("expected connection error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
