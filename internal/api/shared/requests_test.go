package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type limitParams struct {
	Limit int `validate:"gte=-1"`
}

type selfValidating struct{}

var errSelf = errors.New("self validation failed")

func (selfValidating) Validate() error { return errSelf }

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateRequest(limitParams{Limit: -1}))
	assert.NoError(t, ValidateRequest(limitParams{Limit: 20}))
	assert.Error(t, ValidateRequest(limitParams{Limit: -2}))
	assert.ErrorIs(t, ValidateRequest(selfValidating{}), errSelf)
}

func TestQueryInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		url     string
		want    int
		wantErr bool
	}{
		{name: "absent", url: "/due", want: -1},
		{name: "empty", url: "/due?limit=", want: -1},
		{name: "positive", url: "/due?limit=25", want: 25},
		{name: "zero", url: "/due?limit=0", want: 0},
		{name: "not a number", url: "/due?limit=lots", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.url, nil)
			got, err := QueryInt(req, "limit", -1)
			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "limit")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
