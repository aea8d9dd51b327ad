package iofs

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/retroshelf/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestErrors_Structure verifies error structure of all
// file system errors.
func TestErrors_Structure(t *testing.T) {
	originalErr := errors.New("permission denied")

	tests := []struct {
		name string
		err  error
		code gn.ErrorCode
	}{
		{"create dir", CreateDirError("/test/dir", originalErr), errcode.CreateDirError},
		{"copy file", CopyFileError("/test/file", originalErr), errcode.CopyFileError},
		{"read file", ReadFileError("/test/file", originalErr), errcode.ReadFileError},
		{"write file", WriteFileError("/test/file", originalErr), errcode.WriteFileError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gnErr, ok := tt.err.(*gn.Error)
			require.True(t, ok, "Error should be of type *gn.Error")

			assert.Equal(t, tt.code, gnErr.Code)
			assert.NotEmpty(t, gnErr.Msg)
			require.Len(t, gnErr.Vars, 1)
			assert.ErrorIs(t, gnErr.Err, originalErr,
				"Should wrap original error")
		})
	}
}
