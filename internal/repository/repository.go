package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	// ErrInsufficientPending is returned when a release or debit would take a
	// wallet's pending balance below zero.
	ErrInsufficientPending = errors.New("insufficient pending balance")
	// ErrInsufficientBalance is returned when a debit would take a wallet's
	// available balance below zero.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrSlotTaken is returned when a commit-time re-check finds the requested
	// mentor/date/slot already held by a non-terminal booking.
	ErrSlotTaken = errors.New("slot already booked")
	// ErrUserDayTaken is returned when the user already holds a non-terminal
	// booking on the requested date.
	ErrUserDayTaken = errors.New("user already has a booking on this date")
)
