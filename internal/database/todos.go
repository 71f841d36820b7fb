package database

import (
	"context"
	"database/sql"
	"errors"
)

// Todo is a single todo item
type Todo struct {
	ID        int64  `db:"id" json:"id"`
	Title     string `db:"title" json:"title"`
	Completed bool   `db:"completed" json:"completed"`
}

const (
	pingQuery     = `SELECT 1`
	listQuery     = `SELECT id, title, completed FROM todos ORDER BY id DESC`
	insertQuery   = `INSERT INTO todos (title, completed) VALUES (?, ?) RETURNING id, title, completed`
	completeQuery = `UPDATE todos SET completed = ? WHERE id = ? RETURNING id, title, completed`
	deleteQuery   = `DELETE FROM todos WHERE id = ?`
)

// Ping runs a trivial statement through the pool to check connectivity
func (db *DB) Ping(ctx context.Context) error {
	var one int
	return wrapErr("ping database", db.get(ctx, &one, pingQuery))
}

// ListTodos returns all todos, newest first. The result is never nil.
func (db *DB) ListTodos(ctx context.Context) ([]Todo, error) {
	todos := []Todo{}
	if err := db.selectAll(ctx, &todos, listQuery); err != nil {
		return nil, wrapErr("list todos", err)
	}
	return todos, nil
}

// CreateTodo inserts a new incomplete todo and returns the stored row
func (db *DB) CreateTodo(ctx context.Context, title string) (*Todo, error) {
	todo := &Todo{}
	if err := db.get(ctx, todo, insertQuery, title, false); err != nil {
		return nil, wrapErr("create todo", err)
	}
	return todo, nil
}

// SetTodoCompleted updates the completed flag of a todo and returns the stored row.
// Returns ErrNotFound if no todo has the given id.
func (db *DB) SetTodoCompleted(ctx context.Context, id int64, completed bool) (*Todo, error) {
	todo := &Todo{}
	err := db.get(ctx, todo, completeQuery, completed, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrapErr("update todo", err)
	}
	return todo, nil
}

// DeleteTodo removes a todo and returns the number of rows deleted.
// Deleting a missing id is not an error.
func (db *DB) DeleteTodo(ctx context.Context, id int64) (int64, error) {
	result, err := db.exec(ctx, deleteQuery, id)
	if err != nil {
		return 0, wrapErr("delete todo", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, wrapErr("delete todo", err)
	}
	return n, nil
}
