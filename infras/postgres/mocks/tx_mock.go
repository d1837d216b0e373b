package mocks

import (
	"context"
	"lodge/infras/postgres"

	"github.com/jmoiron/sqlx"
)

type txRunnerImpl struct {
}

// InSerializableTx implements postgres.TxRunner. The closure receives a nil
// handle; repository mocks in unit tests never dereference it.
func (t *txRunnerImpl) InSerializableTx(_ context.Context, fn func(tx *sqlx.Tx) error) error {
	return fn(nil)
}

func NewTxRunner() postgres.TxRunner {
	return &txRunnerImpl{}
}
