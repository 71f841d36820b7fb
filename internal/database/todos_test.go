package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/saltyorg/todo-api/internal/database"
	"github.com/saltyorg/todo-api/internal/database/dbtest"
)

func TestListTodos_EmptyIsNotNil(t *testing.T) {
	db := dbtest.New(t)

	todos, err := db.ListTodos(context.Background())
	if err != nil {
		t.Fatalf("ListTodos returned error: %v", err)
	}
	if todos == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(todos) != 0 {
		t.Fatalf("expected 0 todos, got %d", len(todos))
	}
}

func TestCreateTodo_ThenListNewestFirst(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	titles := []string{"buy milk", "walk dog", "file taxes"}
	for i, title := range titles {
		todo, err := db.CreateTodo(ctx, title)
		if err != nil {
			t.Fatalf("CreateTodo(%q) returned error: %v", title, err)
		}
		if todo.ID != int64(i+1) {
			t.Errorf("expected id %d, got %d", i+1, todo.ID)
		}
		if todo.Title != title {
			t.Errorf("expected title %q, got %q", title, todo.Title)
		}
		if todo.Completed {
			t.Errorf("expected new todo to be incomplete")
		}
	}

	todos, err := db.ListTodos(ctx)
	if err != nil {
		t.Fatalf("ListTodos returned error: %v", err)
	}
	if len(todos) != len(titles) {
		t.Fatalf("expected %d todos, got %d", len(titles), len(todos))
	}
	for i, todo := range todos {
		want := titles[len(titles)-1-i]
		if todo.Title != want {
			t.Errorf("position %d: expected %q, got %q", i, want, todo.Title)
		}
		if i > 0 && todo.ID >= todos[i-1].ID {
			t.Errorf("expected descending ids, got %d after %d", todo.ID, todos[i-1].ID)
		}
	}
}

func TestSetTodoCompleted_OnlyChangesCompleted(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	created, err := db.CreateTodo(ctx, "buy milk")
	if err != nil {
		t.Fatalf("CreateTodo returned error: %v", err)
	}

	updated, err := db.SetTodoCompleted(ctx, created.ID, true)
	if err != nil {
		t.Fatalf("SetTodoCompleted returned error: %v", err)
	}
	if updated.ID != created.ID || updated.Title != created.Title {
		t.Fatalf("expected id/title unchanged, got %+v", updated)
	}
	if !updated.Completed {
		t.Fatal("expected completed to be true")
	}

	reverted, err := db.SetTodoCompleted(ctx, created.ID, false)
	if err != nil {
		t.Fatalf("SetTodoCompleted returned error: %v", err)
	}
	if reverted.Completed {
		t.Fatal("expected completed to be false")
	}
}

func TestSetTodoCompleted_NotFound(t *testing.T) {
	db := dbtest.New(t)

	todo, err := db.SetTodoCompleted(context.Background(), 99, true)
	if !errors.Is(err, database.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if todo != nil {
		t.Fatalf("expected nil todo, got %+v", todo)
	}
}

func TestDeleteTodo_Idempotent(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	keep, err := db.CreateTodo(ctx, "keep me")
	if err != nil {
		t.Fatalf("CreateTodo returned error: %v", err)
	}
	drop, err := db.CreateTodo(ctx, "drop me")
	if err != nil {
		t.Fatalf("CreateTodo returned error: %v", err)
	}

	n, err := db.DeleteTodo(ctx, drop.ID)
	if err != nil {
		t.Fatalf("DeleteTodo returned error: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row deleted, got %d", n)
	}

	n, err = db.DeleteTodo(ctx, drop.ID)
	if err != nil {
		t.Fatalf("second DeleteTodo returned error: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 rows deleted on repeat, got %d", n)
	}

	todos, err := db.ListTodos(ctx)
	if err != nil {
		t.Fatalf("ListTodos returned error: %v", err)
	}
	if len(todos) != 1 || todos[0].ID != keep.ID {
		t.Fatalf("expected only %d to remain, got %+v", keep.ID, todos)
	}
}

func TestClosedPool_ReturnsStorageError(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	if err := db.Ping(ctx); err != nil {
		t.Fatalf("Ping returned error on open pool: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	checks := map[string]error{}
	checks["ping"] = db.Ping(ctx)
	_, checks["list"] = db.ListTodos(ctx)
	_, checks["create"] = db.CreateTodo(ctx, "x")
	_, checks["update"] = db.SetTodoCompleted(ctx, 1, true)
	_, checks["delete"] = db.DeleteTodo(ctx, 1)

	for name, err := range checks {
		var storageErr *database.Error
		if !errors.As(err, &storageErr) {
			t.Errorf("%s: expected *database.Error, got %T (%v)", name, err, err)
			continue
		}
		if storageErr.Error() == "" {
			t.Errorf("%s: expected a message", name)
		}
	}
}
