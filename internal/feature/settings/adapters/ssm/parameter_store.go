// Package ssm reads the provider API key from AWS Systems Manager Parameter Store.
package ssm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"

	"quote_backend/internal/feature/settings/usecase"
)

// DefaultTimeout bounds a single parameter lookup.
const DefaultTimeout = 5 * time.Second

// ErrEmptyParameter is returned when the parameter exists but has no value.
var ErrEmptyParameter = errors.New("ssm parameter has no value")

// API is the subset of the SSM client used here.
type API interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// ParameterStore fetches one SecureString parameter.
type ParameterStore struct {
	client  API
	name    string
	timeout time.Duration
}

var _ usecase.SecretFetcher = (*ParameterStore)(nil)

// NewParameterStore creates a ParameterStore reading name through client.
func NewParameterStore(client API, name string) *ParameterStore {
	return &ParameterStore{client: client, name: name, timeout: DefaultTimeout}
}

// NewFromDefaultConfig builds the SSM client from the default AWS credential chain.
func NewFromDefaultConfig(ctx context.Context, region, name string) (*ParameterStore, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewParameterStore(ssm.NewFromConfig(cfg), name), nil
}

// APIKey returns the decrypted parameter value.
func (p *ParameterStore) APIKey(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	out, err := p.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(p.name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("get parameter %s: %w", p.name, err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("%w: %s", ErrEmptyParameter, p.name)
	}
	return aws.ToString(out.Parameter.Value), nil
}
