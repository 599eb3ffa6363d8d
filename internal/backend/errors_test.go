package backend

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "deadline exceeded is timeout",
			err:  context.DeadlineExceeded,
			want: ErrTimeout,
		},
		{
			name: "cancellation is timeout",
			err:  context.Canceled,
			want: ErrTimeout,
		},
		{
			name: "wrapped deadline is timeout",
			err:  fmt.Errorf("query failed: %w", context.DeadlineExceeded),
			want: ErrTimeout,
		},
		{
			name: "connection refused is unavailable",
			err:  &net.OpError{Op: "dial", Err: errors.New("connection refused")},
			want: ErrUnavailable,
		},
		{
			name: "anything else is a query error",
			err:  errors.New("index_not_found_exception"),
			want: ErrQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify("es-bench", tt.err)
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestClassify_Nil(t *testing.T) {
	assert.NoError(t, Classify("pg-bench", nil))
}

func TestClassify_AlreadyClassifiedPassesThrough(t *testing.T) {
	original := Unavailable("minio-bench", errors.New("no route to host"))
	got := Classify("minio-bench", fmt.Errorf("setup: %w", original))

	assert.ErrorIs(t, got, ErrUnavailable)
	assert.NotErrorIs(t, got, ErrQuery)
}

func TestError_CarriesBackendName(t *testing.T) {
	err := QueryError("pg-bench", errors.New("relation does not exist"))

	var be *Error
	assert.ErrorAs(t, err, &be)
	assert.Equal(t, "pg-bench", be.Backend)
}
