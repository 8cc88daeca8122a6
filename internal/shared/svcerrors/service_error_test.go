package svcerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsServiceError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr *ServiceError
		wantOk  bool
	}{
		{
			name:    "nil input",
			err:     nil,
			wantErr: nil,
			wantOk:  false,
		},
		{
			name:    "regular error",
			err:     errors.New("x"),
			wantErr: nil,
			wantOk:  false,
		},
		{
			name:    "direct ServiceError",
			err:     NewInvalidArgumentError("AGG_1000", "invalid filter", nil),
			wantErr: NewInvalidArgumentError("AGG_1000", "invalid filter", nil),
			wantOk:  true,
		},
		{
			name:    "wrapped ServiceError",
			err:     fmt.Errorf("wrap: %w", NewInternalError("RPT_9000", nil)),
			wantErr: NewInternalError("RPT_9000", nil),
			wantOk:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotErr, gotOk := AsServiceError(tt.err)

			assert.Equal(t, tt.wantOk, gotOk, "AsServiceError() ok value mismatch")

			if tt.wantErr == nil {
				assert.Nil(t, gotErr, "AsServiceError() should return nil error")
			} else {
				require.NotNil(t, gotErr, "AsServiceError() should return non-nil error")
				assert.Equal(t, tt.wantErr.Category, gotErr.Category, "Category mismatch")
				assert.Equal(t, tt.wantErr.Code, gotErr.Code, "Code mismatch")
				assert.Equal(t, tt.wantErr.Message, gotErr.Message, "Message mismatch")
			}
		})
	}
}

func TestCategories(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 404, NewNotFoundError("AGG_1001", "unknown client key", nil).HttpStatusCode)
	assert.True(t, NewNotFoundError("AGG_1001", "unknown client key", nil).IsNotFound())
	assert.Equal(t, 400, NewUnsupportedError("RPT_1000", "unsupported format", nil).HttpStatusCode)
	assert.True(t, NewInternalErrorPanic(errors.New("boom")).IsInternalError())
	assert.False(t, NewInvalidArgumentError("QRY_1000", "bad", nil).IsInternalError())
}
