package ssm

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSSM struct {
	GetParameterFunc func(ctx context.Context, params *ssm.GetParameterInput) (*ssm.GetParameterOutput, error)
}

func (m *mockSSM) GetParameter(ctx context.Context, params *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	return m.GetParameterFunc(ctx, params)
}

func TestParameterStore_APIKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		out     *ssm.GetParameterOutput
		err     error
		want    string
		wantErr error
	}{
		{
			name: "success",
			out:  &ssm.GetParameterOutput{Parameter: &types.Parameter{Value: aws.String("ABCDEF123456")}},
			want: "ABCDEF123456",
		},
		{
			name:    "missing value",
			out:     &ssm.GetParameterOutput{Parameter: &types.Parameter{}},
			wantErr: ErrEmptyParameter,
		},
		{
			name:    "missing parameter",
			out:     &ssm.GetParameterOutput{},
			wantErr: ErrEmptyParameter,
		},
		{
			name:    "client error",
			err:     errors.New("access denied"),
			wantErr: errors.New("access denied"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := &mockSSM{GetParameterFunc: func(ctx context.Context, params *ssm.GetParameterInput) (*ssm.GetParameterOutput, error) {
				assert.Equal(t, "/quotes/alphavantage/api_key", aws.ToString(params.Name))
				assert.True(t, aws.ToBool(params.WithDecryption))
				_, hasDeadline := ctx.Deadline()
				assert.True(t, hasDeadline)
				return tt.out, tt.err
			}}

			got, err := NewParameterStore(client, "/quotes/alphavantage/api_key").APIKey(context.Background())
			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, ErrEmptyParameter) {
					assert.ErrorIs(t, err, ErrEmptyParameter)
				} else {
					assert.Contains(t, err.Error(), tt.wantErr.Error())
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
